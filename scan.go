package bip21

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/internal/constraints"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/grammar"
	"github.com/ghettovoice/bip21/internal/util"
)

// DefaultScheme is the URI scheme used when none is configured.
const DefaultScheme = "bitcoin"

// Pair is a raw parameter as written in the URI.
// Value is not percent-decoded.
type Pair struct {
	Key   Key
	Value string
}

// RawURI is the result of the first pass over the URI text.
type RawURI struct {
	// Scheme is the scheme as written in the input.
	Scheme string
	// Address is the text between the scheme and the query, possibly empty.
	Address string
	// Pairs are the query parameters in input order, duplicates included.
	Pairs []Pair
}

// Scan splits s into the address segment and the raw query parameters.
//
// The scheme is matched case-insensitively; an empty scheme means [DefaultScheme].
// Empty query segments are skipped and a segment without "=" is a key with an empty value.
// Values are not decoded.
func Scan[T constraints.Byteseq](s T, scheme string) (*RawURI, error) {
	if scheme == "" {
		scheme = DefaultScheme
	}

	str := string(s)
	if !util.HasPrefixFold(str, scheme) || len(str) == len(scheme) || str[len(scheme)] != ':' {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "missing scheme %q", scheme))
	}

	raw := &RawURI{Scheme: str[:len(scheme)]}
	rest := str[len(scheme)+1:]
	addr, query, hasQuery := strings.Cut(rest, "?")
	raw.Address = addr
	if !hasQuery {
		return raw, nil
	}

	raw.Pairs = make([]Pair, 0, strings.Count(query, "&")+1)
	for seg := range strings.SplitSeq(query, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		if err := grammar.ParamKey(k); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: parameter key %q: %w", ErrMalformedURI, k, err))
		}
		raw.Pairs = append(raw.Pairs, Pair{Key: Key(k), Value: v})
	}
	return raw, nil
}
