package bip21

import (
	"braces.dev/errtrace"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/ghettovoice/bip21/address"
)

// Address is the identifier in the path position of the URI.
// Any btcutil.Address implements it.
type Address interface {
	EncodeAddress() string
}

// AddressDecoder decodes the address segment of the URI.
type AddressDecoder interface {
	DecodeAddress(s string) (Address, error)
}

// AddressDecoderFunc is an adapter to use an ordinary function as [AddressDecoder].
type AddressDecoderFunc func(s string) (Address, error)

// DecodeAddress calls fn(s).
func (fn AddressDecoderFunc) DecodeAddress(s string) (Address, error) {
	return errtrace.Wrap2(fn(s))
}

// NetworkAddresses returns a decoder of Bitcoin addresses of the network net.
// Addresses of other networks are rejected with address.ErrWrongNetwork.
func NetworkAddresses(net *chaincfg.Params) AddressDecoder {
	decode := address.ForNetwork(net)
	return AddressDecoderFunc(func(s string) (Address, error) {
		addr, err := decode(s)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return addr, nil
	})
}

// UncheckedAddresses is a decoder of Bitcoin addresses of any known network.
var UncheckedAddresses AddressDecoder = AddressDecoderFunc(func(s string) (Address, error) {
	addr, err := address.DecodeUnchecked(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return addr, nil
})

// OpaqueAddresses is a decoder that accepts any address text as is.
var OpaqueAddresses AddressDecoder = AddressDecoderFunc(func(s string) (Address, error) {
	addr, err := address.DecodeOpaque(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return addr, nil
})

// DefaultAddresses decodes Bitcoin mainnet addresses.
var DefaultAddresses = NetworkAddresses(&chaincfg.MainNetParams)
