package grammar

import (
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/internal/constraints"
)

// PercentDecode decodes every "% HEXDIG HEXDIG" triplet of s into the byte it encodes.
// Other bytes are copied as is. A '%' that does not start a valid triplet is an error.
// The result is not checked to be valid UTF-8, see [PercentDecodeText].
func PercentDecode[T constraints.Byteseq](s T) ([]byte, error) {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b = append(b, s[i])
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			return nil, errtrace.Wrap(newInvalidEncodingErr("malformed escape at %d", i))
		}
		b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
		i += 2
	}
	return b, nil
}

// PercentDecodeText decodes s like [PercentDecode] and requires the result to be valid UTF-8.
func PercentDecodeText[T constraints.Byteseq](s T) (string, error) {
	b, err := PercentDecode(s)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if !utf8.Valid(b) {
		return "", errtrace.Wrap(newInvalidEncodingErr("decoded value is not valid UTF-8"))
	}
	return string(b), nil
}

// PercentEncode escapes every byte of s that may not appear literally in a query value.
func PercentEncode[T constraints.Byteseq](s T) T {
	n := 0
	for i := 0; i < len(s); i++ {
		if !IsQueryValueCharUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	b := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		if c := s[i]; IsQueryValueCharUnreserved(c) {
			b = append(b, c)
		} else {
			b = append(b, '%', upperhex[c>>4], upperhex[c&15])
		}
	}
	return T(b)
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

var unreservedChars = map[byte]bool{
	'-': true,
	'.': true,
	'_': true,
	'~': true,
}

// IsCharUnreserved checks on RFC 3986 unreserved rule.
func IsCharUnreserved(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

// Sub-delims '&', '=' and '+' are always escaped in values, as are '?' and '#'.
var queryValueUnreservedChars = map[byte]bool{
	'!':  true,
	'$':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	',':  true,
	';':  true,
	':':  true,
	'@':  true,
	'/':  true,
}

// IsQueryValueCharUnreserved reports whether c may appear unescaped in a query value.
func IsQueryValueCharUnreserved(c byte) bool {
	return queryValueUnreservedChars[c] || IsCharUnreserved(c)
}
