package bip21

//go:generate go tool mockgen -destination=internal/testutil/extrasmock/extrasmock.go -package=extrasmock . ExtrasConsumer,ExtrasFinalizer

import (
	"slices"

	"braces.dev/errtrace"
)

// ExtrasConsumer receives every parameter of the URI, left to right, after the standard
// parameters (amount, label, message) were handled.
//
// The key is passed as written, including the [RequiredPrefix].
// A consumer returns [ParamKnown] for a key it recognizes; a "req-" key that no consumer
// recognizes fails the parse. A non-nil error aborts the parse.
type ExtrasConsumer interface {
	ConsumeParam(key Key, value Param) (ParamKind, error)
}

// ExtrasConsumerFunc is an adapter to use an ordinary function as [ExtrasConsumer].
type ExtrasConsumerFunc func(key Key, value Param) (ParamKind, error)

// ConsumeParam calls fn(key, value).
func (fn ExtrasConsumerFunc) ConsumeParam(key Key, value Param) (ParamKind, error) {
	return errtrace.Wrap2(fn(key, value))
}

// ExtrasFinalizer is optionally implemented by an [ExtrasConsumer].
// FinalizeParams is called once all parameters were consumed and the required parameters
// were checked, for example to verify that a mandatory parameter was present.
type ExtrasFinalizer interface {
	FinalizeParams() error
}

// Field is an extra parameter of a URI to render.
type Field struct {
	// Name is the key without the [RequiredPrefix].
	Name  string
	Value Param
	// Required marks the field with the [RequiredPrefix].
	Required bool
}

// Key returns the key of the field as written in the URI.
func (f Field) Key() Key {
	if f.Required {
		return RequiredKey(f.Name)
	}
	return Key(f.Name)
}

// Equal reports whether val is a Field with the same key and value.
func (f Field) Equal(val any) bool {
	var other Field
	switch v := val.(type) {
	case Field:
		other = v
	case *Field:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return f.Name == other.Name && f.Required == other.Required && f.Value.Equal(other.Value)
}

// ParamCollector is an [ExtrasConsumer] that recognizes a fixed set of parameter names
// and collects their values in input order.
// A name matches both the optional and the "req-" form of the key.
type ParamCollector struct {
	names  []string
	fields []Field
}

// NewParamCollector returns a collector recognizing the given names.
func NewParamCollector(names ...string) *ParamCollector {
	return &ParamCollector{names: slices.Clone(names)}
}

// ConsumeParam implements [ExtrasConsumer].
func (c *ParamCollector) ConsumeParam(key Key, value Param) (ParamKind, error) {
	if !slices.Contains(c.names, key.Name()) {
		return ParamUnknown, nil
	}
	c.fields = append(c.fields, Field{Name: key.Name(), Value: value, Required: key.IsRequired()})
	return ParamKnown, nil
}

// Fields returns the collected parameters in input order.
func (c *ParamCollector) Fields() []Field { return slices.Clone(c.fields) }

// Get returns the value of the first collected parameter with the given name.
func (c *ParamCollector) Get(name string) (Param, bool) {
	i := slices.IndexFunc(c.fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return Param{}, false
	}
	return c.fields[i].Value, true
}

// Reset forgets the collected parameters, so the collector can be used for another parse.
func (c *ParamCollector) Reset() { c.fields = c.fields[:0] }
