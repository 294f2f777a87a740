package bip21

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/grammar"
)

// Error is a sentinel error of the codec.
type Error = errorutil.Error

const (
	// ErrMalformedURI is returned when the URI text does not follow the grammar:
	// missing scheme or a malformed parameter key.
	ErrMalformedURI Error = "malformed URI"
	// ErrUnknownRequiredParam is matched by [RequiredParamError].
	ErrUnknownRequiredParam Error = "unknown required parameter"
	// ErrInvalidAddress wraps the error of the [AddressDecoder] or of the address text encoding.
	ErrInvalidAddress Error = "invalid address"
	// ErrExtras wraps an error returned by an [ExtrasConsumer] or [ExtrasFinalizer].
	ErrExtras Error = "extras rejected parameters"
	// ErrInvalidKey is returned on rendering of an extra parameter with a key
	// that can not be written literally.
	ErrInvalidKey Error = "invalid parameter key"
)

// ErrInvalidEncoding is returned when a parameter value can not be percent-decoded,
// or, unless non-compliant bytes are allowed, when it does not decode to valid UTF-8.
const ErrInvalidEncoding = grammar.ErrInvalidEncoding

// RequiredParamError reports a "req-" parameter that no consumer recognized.
type RequiredParamError struct {
	Key Key
}

func (e *RequiredParamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s", ErrUnknownRequiredParam, strconv.Quote(string(e.Key)))
}

// Is reports whether target is [ErrUnknownRequiredParam].
func (e *RequiredParamError) Is(target error) bool { return target == ErrUnknownRequiredParam } //nolint:errorlint

// ParamError reports a parameter whose value was rejected.
type ParamError struct {
	Key Key
	Err error
}

func (e *ParamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parameter %s: %v", strconv.Quote(string(e.Key)), e.Err)
}

func (e *ParamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
