// Package address adapts Bitcoin addresses to the payment URI codec.
//
// Decoding and encoding is delegated to btcutil. [Decode] additionally checks that the
// address belongs to the expected network. [Opaque] is an identifier that is taken verbatim
// from the URI, for schemes whose address format is not known to this package.
package address

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/util"
)

type Error = errorutil.Error

const (
	ErrInvalidAddress Error = "invalid address"
	ErrWrongNetwork   Error = "address belongs to another network"
)

// Networks lists the networks tried by [DecodeUnchecked], in order.
var Networks = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.RegressionNetParams,
	&chaincfg.SigNetParams,
}

// Decode decodes a Bitcoin address and checks that it is valid for the network net.
// Upper case bech32 addresses are accepted.
func Decode(s string, net *chaincfg.Params) (btcutil.Address, error) {
	s = normalize(s)
	addr, err := btcutil.DecodeAddress(s, net)
	if err == nil && addr.IsForNet(net) {
		return addr, nil
	}
	if other, ok := decodeAnyNet(s); ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			ErrWrongNetwork,
			"%s is a %s address, want %s",
			s, networkOf(other), net.Name,
		))
	}
	if err == nil {
		err = errorutil.Errorf("%s is not valid for %s", s, net.Name)
	}
	return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, err))
}

// DecodeUnchecked decodes a Bitcoin address of any of [Networks].
func DecodeUnchecked(s string) (btcutil.Address, error) {
	if addr, ok := decodeAnyNet(s); ok {
		return addr, nil
	}
	return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, "%q", s))
}

func decodeAnyNet(s string) (btcutil.Address, bool) {
	s = normalize(s)
	for _, net := range Networks {
		if addr, err := btcutil.DecodeAddress(s, net); err == nil && addr.IsForNet(net) {
			return addr, true
		}
	}
	return nil, false
}

func networkOf(addr btcutil.Address) string {
	for _, net := range Networks {
		if addr.IsForNet(net) {
			return net.Name
		}
	}
	return "unknown"
}

func normalize(s string) string {
	if IsBech32(s) {
		return util.LCase(s)
	}
	return s
}

// ForNetwork returns a decoder function bound to the network net.
func ForNetwork(net *chaincfg.Params) func(string) (btcutil.Address, error) {
	return func(s string) (btcutil.Address, error) {
		return errtrace.Wrap2(Decode(s, net))
	}
}

// IsBech32 reports whether s looks like a segwit address: a registered human readable part,
// the separator and a single-case data part.
func IsBech32(s string) bool {
	i := strings.LastIndexByte(s, '1')
	if i < 1 {
		return false
	}
	if s != util.LCase(s) && s != util.UCase(s) {
		return false
	}
	return chaincfg.IsBech32SegwitPrefix(util.LCase(s[:i+1]))
}

// QRString returns s in the form best suited for QR codes:
// bech32 addresses are upper-cased to fit the alphanumeric mode, others are returned as is.
func QRString(s string) string {
	if IsBech32(s) {
		return util.UCase(s)
	}
	return s
}

// Opaque is an identifier used verbatim, without any validation.
type Opaque string

// DecodeOpaque returns s as an [Opaque] identifier. It never fails.
func DecodeOpaque(s string) (Opaque, error) { return Opaque(s), nil }

// EncodeAddress returns the identifier text.
func (a Opaque) EncodeAddress() string { return string(a) }

func (a Opaque) String() string { return string(a) }
