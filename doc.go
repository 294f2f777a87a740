// Package bip21 parses and renders Bitcoin payment request URIs as defined in BIP 21.
//
// # Overview
//
// A payment request URI carries an address in the path position and an ordered list of
// query-style parameters:
//
//	bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?amount=20.3&label=Luke-Jr
//
// [Parse] turns such text into a [URI], [URI.RenderTo] and [URI.Render] do the inverse.
// The scheme and the address format are configurable, so the package serves other
// schemes that follow the same grammar:
//
//	u, err := bip21.Parse("scheme:ID123?amount=0.5&label=Test", &bip21.ParseOptions{
//	    Scheme:    "scheme",
//	    Addresses: bip21.OpaqueAddresses,
//	})
//
// # Parameters
//
// Parameter values are kept percent-encoded and decoded by the accessors of [Param]
// on every call: [Param.Text], [Param.Bytes] and [Param.Amount].
// Values must decode to valid UTF-8 unless [ParseOptions.NonCompliantBytes] is set.
//
// The standard parameters amount, label and message are stored in the [URI] fields.
// When a standard key repeats, the first occurrence wins.
//
// # Extra Parameters
//
// Every parameter, standard ones included, is also offered to the [ExtrasConsumer] values
// of [ParseOptions.Extras] in input order. A key prefixed with "req-" must be recognized
// by some consumer, otherwise parsing fails with *[RequiredParamError].
// Unknown optional parameters are ignored.
// [ParamCollector] is a ready-made consumer for a fixed set of names.
//
// Extra parameters are rendered from [URI.Extras]:
//
//	u.Extras = append(u.Extras, bip21.Field{Name: "pj", Value: bip21.NewParam(endpoint), Required: true})
//
// # Errors
//
// Errors match the sentinels of this package with [errors.Is]: [ErrMalformedURI],
// [ErrInvalidAddress], [ErrInvalidEncoding], [ErrUnknownRequiredParam], [ErrExtras] and [ErrInvalidKey].
// Amount errors are the sentinels of the amount package.
//
// # Thread Safety
//
// Parsing and rendering keep no shared state. A [URI] is not safe for concurrent modification.
package bip21

//go:generate go tool errtrace -w .
