package address_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/ghettovoice/bip21/address"
)

const (
	mainP2PKH  = "1andreas3batLhQa2FawWjeyjCqyBzypd"
	mainP2SH   = "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"
	mainP2WPKH = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	testP2WPKH = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"
	testP2PKH  = "mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		net     *chaincfg.Params
		wantErr error
	}{
		{"mainnet p2pkh", mainP2PKH, &chaincfg.MainNetParams, nil},
		{"mainnet p2sh", mainP2SH, &chaincfg.MainNetParams, nil},
		{"mainnet p2wpkh", mainP2WPKH, &chaincfg.MainNetParams, nil},
		{"testnet p2wpkh", testP2WPKH, &chaincfg.TestNet3Params, nil},
		{"mainnet p2wpkh upper case", strings.ToUpper(mainP2WPKH), &chaincfg.MainNetParams, nil},
		{"testnet p2pkh", testP2PKH, &chaincfg.TestNet3Params, nil},
		{"testnet bech32 on mainnet", testP2WPKH, &chaincfg.MainNetParams, address.ErrWrongNetwork},
		{"mainnet base58 on testnet", mainP2PKH, &chaincfg.TestNet3Params, address.ErrWrongNetwork},
		{"bad checksum", "1andreas3batLhQa2FawWjeyjCqyBzypX", &chaincfg.MainNetParams, address.ErrInvalidAddress},
		{"empty", "", &chaincfg.MainNetParams, address.ErrInvalidAddress},
		{"garbage", "ID123", &chaincfg.MainNetParams, address.ErrInvalidAddress},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := address.Decode(c.input, c.net)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("address.Decode(%q, %s) error = %v, want %v", c.input, c.net.Name, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("address.Decode(%q, %s) error = %v, want nil", c.input, c.net.Name, err)
			}
			want := c.input
			if address.IsBech32(want) {
				want = strings.ToLower(want)
			}
			if enc := got.EncodeAddress(); enc != want {
				t.Errorf("address.Decode(%q).EncodeAddress() = %q, want %q", c.input, enc, want)
			}
		})
	}
}

func TestDecodeUnchecked(t *testing.T) {
	t.Parallel()

	for _, s := range []string{mainP2PKH, mainP2WPKH, testP2WPKH, testP2PKH} {
		got, err := address.DecodeUnchecked(s)
		if err != nil {
			t.Errorf("address.DecodeUnchecked(%q) error = %v, want nil", s, err)
			continue
		}
		if enc := got.EncodeAddress(); enc != s {
			t.Errorf("address.DecodeUnchecked(%q).EncodeAddress() = %q", s, enc)
		}
	}
	if _, err := address.DecodeUnchecked("nope"); !errors.Is(err, address.ErrInvalidAddress) {
		t.Errorf("address.DecodeUnchecked(nope) error = %v, want %v", err, address.ErrInvalidAddress)
	}
}

func TestForNetwork(t *testing.T) {
	t.Parallel()

	decode := address.ForNetwork(&chaincfg.TestNet3Params)
	if _, err := decode(testP2WPKH); err != nil {
		t.Errorf("decode(%q) error = %v, want nil", testP2WPKH, err)
	}
	if _, err := decode(mainP2WPKH); !errors.Is(err, address.ErrWrongNetwork) {
		t.Errorf("decode(%q) error = %v, want %v", mainP2WPKH, err, address.ErrWrongNetwork)
	}
}

func TestQRString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{mainP2WPKH, "BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4"},
		{"BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4", "BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4"},
		{mainP2PKH, mainP2PKH},
		{"ID123", "ID123"},
		{"bc1Mixed", "bc1Mixed"},
	}
	for _, c := range cases {
		if got := address.QRString(c.in); got != c.want {
			t.Errorf("address.QRString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOpaque(t *testing.T) {
	t.Parallel()

	a, err := address.DecodeOpaque("ID123")
	if err != nil {
		t.Fatalf("address.DecodeOpaque() error = %v, want nil", err)
	}
	if got := a.EncodeAddress(); got != "ID123" {
		t.Errorf("a.EncodeAddress() = %q, want %q", got, "ID123")
	}
}
