package bip21

import (
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/bip21/amount"
	"github.com/ghettovoice/bip21/internal/errorutil"
)

// Standard parameter keys.
const (
	KeyAmount  Key = "amount"
	KeyLabel   Key = "label"
	KeyMessage Key = "message"
)

// stdParams consumes the standard parameters.
// The first occurrence of a key wins; every amount is still validated.
type stdParams struct {
	amount  *amount.Amount
	label   *Param
	message *Param
}

func (sp *stdParams) ConsumeParam(key Key, value Param) (ParamKind, error) {
	switch key {
	case KeyAmount:
		amt, err := value.Amount()
		if err != nil {
			return ParamUnknown, errtrace.Wrap(err)
		}
		if sp.amount == nil {
			sp.amount = &amt
		}
	case KeyLabel:
		if sp.label == nil {
			sp.label = &value
		}
	case KeyMessage:
		if sp.message == nil {
			sp.message = &value
		}
	default:
		return ParamUnknown, nil
	}
	return ParamKnown, nil
}

// extractor classifies the parameters of a single parse call.
type extractor struct {
	consumers  []ExtrasConsumer
	allowBytes bool
	log        *slog.Logger

	known map[Key]bool
	order []Key
}

func (e *extractor) run(pairs []Pair, std *stdParams) error {
	e.known = make(map[Key]bool, len(pairs))
	e.order = make([]Key, 0, len(pairs))

	for _, p := range pairs {
		if err := e.offer(p, std); err != nil {
			return errtrace.Wrap(err)
		}
	}

	for _, k := range e.order {
		if e.known[k] {
			continue
		}
		if k.IsRequired() {
			return errtrace.Wrap(&RequiredParamError{Key: k})
		}
		e.log.Debug("ignore unknown parameter", slog.String("key", string(k)))
	}

	for _, c := range e.consumers {
		f, ok := c.(ExtrasFinalizer)
		if !ok {
			continue
		}
		if err := f.FinalizeParams(); err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrExtras, err))
		}
	}
	return nil
}

func (e *extractor) offer(p Pair, std *stdParams) error {
	if _, ok := e.known[p.Key]; !ok {
		e.known[p.Key] = false
		e.order = append(e.order, p.Key)
	}

	val := newEncodedParam(p.Value, e.allowBytes)
	kind, err := std.ConsumeParam(p.Key, val)
	if err != nil {
		return errtrace.Wrap(&ParamError{Key: p.Key, Err: err})
	}
	e.mark(p.Key, kind)

	for _, c := range e.consumers {
		kind, err := c.ConsumeParam(p.Key, val)
		if err != nil {
			return errtrace.Wrap(&ParamError{Key: p.Key, Err: errorutil.NewWrapperError(ErrExtras, err)})
		}
		e.mark(p.Key, kind)
	}
	return nil
}

func (e *extractor) mark(k Key, kind ParamKind) {
	if kind == ParamKnown {
		e.known[k] = true
	}
}
