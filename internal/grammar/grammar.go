// Package grammar implements the lexical rules of payment URIs:
// percent-encoding of query values and the ABNF of parameter keys.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/bip21/internal/errorutil"
)

func init() {
	abnf.EnableNodeCache(1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput      Error = "empty input"
	ErrMalformedInput  Error = "malformed input"
	ErrInvalidEncoding Error = "invalid percent-encoding"
)

func newInvalidEncodingErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidEncoding, args...) //errtrace:skip
}

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}
