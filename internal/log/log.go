// Package log provides the slog loggers used by the codec and its front ends.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/miekg/dns"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(rr dns.RR) slog.Value {
		h := rr.Header()
		return slog.GroupValue(
			slog.String("name", h.Name),
			slog.String("type", dns.TypeToString[h.Rrtype]),
			slog.Any("ttl", h.Ttl),
			slog.String("rr", rr.String()),
		)
	}),
	slogformatter.FormatByType(func(m *dns.Msg) slog.Value {
		return slog.GroupValue(
			slog.Int("id", int(m.Id)),
			slog.String("rcode", dns.RcodeToString[m.Rcode]),
			slog.Bool("authenticated", m.AuthenticatedData),
			slog.Int("answers", len(m.Answer)),
		)
	}),
)

// NewConsole returns a logger writing human readable lines to w.
func NewConsole(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// NewDev returns a logger with colored, sorted output for development.
func NewDev(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a default logger.
var Def = NewConsole(os.Stderr, slog.LevelInfo)

// Dev is a developer logger.
var Dev = NewDev(os.Stderr, slog.LevelDebug)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// Or returns l, or [Noop] when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Noop
	}
	return l
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }
