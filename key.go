package bip21

import (
	"strconv"
	"strings"
)

// RequiredPrefix marks a parameter that must be understood by the parser.
const RequiredPrefix = "req-"

// Key is a parameter key exactly as written in the URI, including the [RequiredPrefix].
type Key string

// IsRequired reports whether the key carries the [RequiredPrefix].
func (k Key) IsRequired() bool { return strings.HasPrefix(string(k), RequiredPrefix) }

// Name returns the key without the [RequiredPrefix].
func (k Key) Name() string { return strings.TrimPrefix(string(k), RequiredPrefix) }

func (k Key) String() string { return string(k) }

// RequiredKey returns the key of the required parameter name.
func RequiredKey(name string) Key { return Key(RequiredPrefix + name) }

// ParamKind tells whether a consumer recognized a parameter.
type ParamKind uint8

const (
	// ParamUnknown means that the consumer does not know the key.
	ParamUnknown ParamKind = iota
	// ParamKnown means that the consumer recognized the key and used its value.
	ParamKnown
)

func (k ParamKind) String() string {
	switch k {
	case ParamUnknown:
		return "unknown"
	case ParamKnown:
		return "known"
	default:
		return "ParamKind(" + strconv.Itoa(int(k)) + ")"
	}
}
