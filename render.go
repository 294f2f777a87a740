package bip21

import (
	"encoding"
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/address"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/grammar"
	"github.com/ghettovoice/bip21/internal/ioutil"
	"github.com/ghettovoice/bip21/internal/util"
)

// RenderOptions configures rendering of a URI. A nil *RenderOptions means defaults.
type RenderOptions struct {
	// QR upper-cases the scheme and bech32 addresses,
	// so that the URI fits the alphanumeric mode of a QR code.
	QR bool
}

func (o *RenderOptions) qr() bool { return o != nil && o.QR }

// RenderTo writes the URI to w.
//
// Parameters are written in order amount, label, message, then the extras.
// Nothing is written if the address can not be encoded ([ErrInvalidAddress])
// or a name of an extra parameter is not a valid key ([ErrInvalidKey]).
// Extra names must not carry the "req-" prefix, it is set by [Field.Required],
// and must not shadow the amount, label or message parameters.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	addr, err := u.addressText()
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	for _, f := range u.Extras {
		if err := validateExtraName(f.Name); err != nil {
			return 0, errtrace.Wrap(err)
		}
	}

	scheme := u.scheme()
	if opts.qr() {
		scheme = util.UCase(scheme)
		addr = address.QRString(addr)
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Print(scheme, ":", addr).Call(u.renderParams)
	return errtrace.Wrap2(cw.Result())
}

func (u *URI) renderParams(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	sep := "?"
	param := func(k Key, v string) {
		cw.Print(sep, string(k), "=", v)
		sep = "&"
	}
	if u.Amount != nil {
		param(KeyAmount, u.Amount.String())
	}
	if u.Label != nil {
		param(KeyLabel, u.Label.Encoded())
	}
	if u.Message != nil {
		param(KeyMessage, u.Message.Encoded())
	}
	for _, f := range u.Extras {
		param(f.Key(), f.Value.Encoded())
	}
	return errtrace.Wrap2(cw.Result())
}

func validateExtraName(name string) error {
	if err := grammar.ParamKey(name); err != nil {
		return errtrace.Wrap(fmt.Errorf("%w %q: %w", ErrInvalidKey, name, err))
	}
	if Key(name).IsRequired() {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKey, "extra name %q has the req- prefix", name))
	}
	if k := Key(name); k == KeyAmount || k == KeyLabel || k == KeyMessage {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKey, "extra name %q shadows a standard parameter", name))
	}
	return nil
}

func (u *URI) addressText() (string, error) {
	switch addr := u.Address.(type) {
	case nil:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, "no address"))
	case encoding.TextMarshaler:
		b, err := addr.MarshalText()
		if err != nil {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAddress, err))
		}
		return string(b), nil
	default:
		return addr.EncodeAddress(), nil
	}
}

// Render returns the URI text.
func (u *URI) Render(opts *RenderOptions) (string, error) {
	if u == nil {
		return "", nil
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := u.RenderTo(sb, opts); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

// String returns the URI text, or an empty string if the URI can not be rendered.
func (u *URI) String() string {
	s, _ := u.Render(nil)
	return s
}

// Format implements [fmt.Formatter].
// The verb 's' writes the URI text, the '+' flag selects the QR form; 'q' writes it quoted.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		u.RenderTo(f, &RenderOptions{QR: f.Flag('+')}) //nolint:errcheck
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}
