package bip21

import (
	"bytes"
	"log/slog"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/amount"
	"github.com/ghettovoice/bip21/internal/constraints"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/grammar"
)

// Param is a parameter value decoded on demand.
//
// A parsed Param holds the percent-encoded substring of the input and decodes it on every
// accessor call; store the decoded result if it is needed more than once.
// A Param built with [NewParam] or [NewBytesParam] holds the plain value and is percent-encoded
// only when the URI is rendered.
type Param struct {
	val        string
	encoded    bool
	allowBytes bool
}

// NewParam returns a Param holding the plain value v.
// A byte slice is copied.
func NewParam[T constraints.Byteseq](v T) Param {
	return Param{val: string(v)}
}

// NewBytesParam returns a Param holding arbitrary bytes that are not required to be valid UTF-8.
// Such a value is readable only with [Param.Bytes].
func NewBytesParam(b []byte) Param {
	return Param{val: string(b), allowBytes: true}
}

func newEncodedParam(raw string, allowBytes bool) Param {
	return Param{val: raw, encoded: true, allowBytes: allowBytes}
}

// IsZero reports whether p is the zero Param.
func (p Param) IsZero() bool { return p == Param{} }

func newNotUTF8Err() error {
	return errorutil.NewWrapperError(ErrInvalidEncoding, "value is not valid UTF-8") //errtrace:skip
}

// Text returns the decoded value.
// It fails with [ErrInvalidEncoding] if the value has a malformed escape or is not valid UTF-8.
func (p Param) Text() (string, error) {
	if !p.encoded {
		if !utf8.ValidString(p.val) {
			return "", errtrace.Wrap(newNotUTF8Err())
		}
		return p.val, nil
	}
	return errtrace.Wrap2(grammar.PercentDecodeText(p.val))
}

// Bytes returns the decoded value as bytes.
//
// Bytes that are not valid UTF-8 are returned only when the Param was parsed with
// [ParseOptions.NonCompliantBytes] or built with [NewBytesParam].
// Otherwise such a value fails with [ErrInvalidEncoding], exactly as [Param.Text] does.
func (p Param) Bytes() ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if p.encoded {
		b, err = grammar.PercentDecode(p.val)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	} else {
		b = []byte(p.val)
	}
	if !p.allowBytes && !utf8.Valid(b) {
		return nil, errtrace.Wrap(newNotUTF8Err())
	}
	return b, nil
}

// Amount decodes the value and parses it as a BTC amount.
func (p Param) Amount() (amount.Amount, error) {
	s, err := p.Text()
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(amount.Parse(s))
}

// Encoded returns the percent-encoded form of the value.
// For a parsed Param this is the substring of the input.
func (p Param) Encoded() string {
	if p.encoded {
		return p.val
	}
	return grammar.PercentEncode(p.val)
}

// String returns the decoded text, or the encoded form if the value can not be decoded.
func (p Param) String() string {
	if s, err := p.Text(); err == nil {
		return s
	}
	return p.Encoded()
}

// Equal reports whether val is a Param with the same decoded value.
func (p Param) Equal(val any) bool {
	var other Param
	switch v := val.(type) {
	case Param:
		other = v
	case *Param:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	b1, err1 := p.raw()
	b2, err2 := other.raw()
	if err1 != nil || err2 != nil {
		return p.Encoded() == other.Encoded()
	}
	return bytes.Equal(b1, b2)
}

func (p Param) raw() ([]byte, error) {
	if p.encoded {
		return errtrace.Wrap2(grammar.PercentDecode(p.val))
	}
	return []byte(p.val), nil
}

// MarshalText implements [encoding.TextMarshaler], it returns the decoded text.
func (p Param) MarshalText() ([]byte, error) {
	s, err := p.Text()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(s), nil
}

// LogValue implements [slog.LogValuer].
func (p Param) LogValue() slog.Value { return slog.StringValue(p.Encoded()) }
