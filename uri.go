package bip21

import (
	"log/slog"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/amount"
	"github.com/ghettovoice/bip21/internal/constraints"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/log"
)

// URI is a parsed payment request.
type URI struct {
	// Scheme is the URI scheme, empty means [DefaultScheme].
	Scheme  string
	Address Address
	Amount  *amount.Amount
	Label   *Param
	Message *Param
	// Extras are rendered after the standard parameters, in order.
	// [Parse] leaves them empty, extra parameters are delivered to [ParseOptions.Extras].
	Extras []Field
}

// ParseOptions configures [Parse]. A nil *ParseOptions means defaults.
type ParseOptions struct {
	// Scheme is the expected URI scheme, [DefaultScheme] if empty.
	Scheme string
	// Addresses decodes the address segment, [DefaultAddresses] if nil.
	Addresses AddressDecoder
	// Extras receive every parameter in input order.
	Extras []ExtrasConsumer
	// NonCompliantBytes lets [Param.Bytes] return values that are not valid UTF-8.
	NonCompliantBytes bool
	// Logger receives debug records about ignored parameters.
	Logger *slog.Logger
}

func (o *ParseOptions) scheme() string {
	if o == nil || o.Scheme == "" {
		return DefaultScheme
	}
	return o.Scheme
}

func (o *ParseOptions) addresses() AddressDecoder {
	if o == nil || o.Addresses == nil {
		return DefaultAddresses
	}
	return o.Addresses
}

func (o *ParseOptions) extras() []ExtrasConsumer {
	if o == nil {
		return nil
	}
	return o.Extras
}

func (o *ParseOptions) nonCompliantBytes() bool { return o != nil && o.NonCompliantBytes }

func (o *ParseOptions) logger() *slog.Logger {
	if o == nil {
		return log.Noop
	}
	return log.Or(o.Logger)
}

// Parse parses a payment request URI.
//
// The address segment is decoded with [ParseOptions.Addresses], then every parameter is offered
// to the standard consumer and to each of [ParseOptions.Extras].
// The first failure is returned:
//   - [ErrMalformedURI] when the scheme is missing or a key is malformed;
//   - [ErrInvalidAddress] when the address decoder fails;
//   - *[ParamError] when the amount is malformed or an extras consumer fails;
//   - *[RequiredParamError] when a "req-" parameter is not recognized;
//   - [ErrExtras] when an extras finalizer fails.
func Parse[T constraints.Byteseq](s T, opts *ParseOptions) (*URI, error) {
	raw, err := Scan(s, opts.scheme())
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	addr, err := opts.addresses().DecodeAddress(raw.Address)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, err))
	}
	if addr == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, "no address decoded from %q", raw.Address))
	}

	var std stdParams
	ex := &extractor{
		consumers:  opts.extras(),
		allowBytes: opts.nonCompliantBytes(),
		log:        opts.logger(),
	}
	if err := ex.run(raw.Pairs, &std); err != nil {
		return nil, errtrace.Wrap(err)
	}

	return &URI{
		Scheme:  opts.scheme(),
		Address: addr,
		Amount:  std.amount,
		Label:   std.label,
		Message: std.message,
	}, nil
}

// Clone returns a copy of the URI that shares nothing mutable with u.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	if u.Amount != nil {
		u2.Amount = amount.Ptr(*u.Amount)
	}
	if u.Label != nil {
		l := *u.Label
		u2.Label = &l
	}
	if u.Message != nil {
		m := *u.Message
		u2.Message = &m
	}
	u2.Extras = slices.Clone(u.Extras)
	return &u2
}

func (u *URI) scheme() string {
	if u.Scheme == "" {
		return DefaultScheme
	}
	return u.Scheme
}

// Equal reports whether val is a URI with the same scheme, address, and parameters.
// The scheme is compared case-insensitively, parameter values after decoding.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return strings.EqualFold(u.scheme(), other.scheme()) &&
		equalAddress(u.Address, other.Address) &&
		equalAmount(u.Amount, other.Amount) &&
		equalParam(u.Label, other.Label) &&
		equalParam(u.Message, other.Message) &&
		slices.EqualFunc(u.Extras, other.Extras, func(f1, f2 Field) bool { return f1.Equal(f2) })
}

func equalAddress(a1, a2 Address) bool {
	if a1 == nil || a2 == nil {
		return a1 == nil && a2 == nil
	}
	return a1.EncodeAddress() == a2.EncodeAddress()
}

func equalAmount(a1, a2 *amount.Amount) bool {
	if a1 == nil || a2 == nil {
		return a1 == a2
	}
	return *a1 == *a2
}

func equalParam(p1, p2 *Param) bool {
	if p1 == nil || p2 == nil {
		return p1 == p2
	}
	return p1.Equal(*p2)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	s, err := u.Render(nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The text is parsed with default options, so the address must be a Bitcoin mainnet address.
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text, nil)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
