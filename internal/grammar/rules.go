package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
)

// BIP 21:
//
//	otherparam = qchar *qchar [ "=" *qchar ]
//	reqparam   = "req-" qchar *qchar [ "=" *qchar ]
//	qchar      = unreserved / pct-encoded / sub-delims-without-&= / ":" / "@"
//
// Keys are matched literally, so a pct-encoded triplet is kept as is.
var (
	alpha = abnf.AltFirst(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	hexdig = abnf.AltFirst(
		"HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)
	pctEncoded = abnf.Concat(
		"pct-encoded",
		abnf.Literal("%", []byte("%")),
		hexdig,
		hexdig,
	)
	qchar = abnf.AltFirst(
		"qchar",
		alpha,
		digit,
		charset("unreserved", "-._~"),
		pctEncoded,
		charset("sub-delims", "!$'()*+,;"),
		charset("qchar-extra", ":@"),
	)
	paramKey = abnf.Repeat1Inf("param-key", qchar)
)

// charset matches any single byte of chars, which must not be empty.
func charset(key, chars string) abnf.Operator {
	ops := make([]abnf.Operator, 0, len(chars))
	for i := range len(chars) {
		ops = append(ops, abnf.Literal(chars[i:i+1], []byte{chars[i]}))
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// ParamKey validates s against the parameter key rule.
func ParamKey[T ~string | ~[]byte](s T) error {
	if len(s) == 0 {
		return errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := paramKey([]byte(s), 0, ns); err != nil {
		return errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return errtrace.Wrap(newMalformedInputErr("unexpected char %q at %d", s[nl], nl))
	}
	return nil
}

// IsParamKey reports whether s is a valid parameter key.
func IsParamKey[T ~string | ~[]byte](s T) bool { return ParamKey(s) == nil }
