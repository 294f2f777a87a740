package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/bip21"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := newApp(&buf)
	app.ErrWriter = io.Discard
	err := app.Run(t.Context(), append([]string{"bip21"}, args...))
	return buf.String(), err
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			"standard",
			[]string{"build", "--address", "1andreas3batLhQa2FawWjeyjCqyBzypd", "--amount", "20.30", "--label", "Luke-Jr"},
			"bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?amount=20.3&label=Luke-Jr\n",
		},
		{
			"custom scheme with extras",
			[]string{"--scheme", "scheme", "build", "--address", "ID123", "--amount", "0.5", "--label", "Test", "--param", "req-ext=5"},
			"scheme:ID123?amount=0.5&label=Test&req-ext=5\n",
		},
		{
			"qr",
			[]string{"build", "--address", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", "--message", "a b", "--qr"},
			"BITCOIN:BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4?message=a%20b\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, c.args...)
			if err != nil {
				t.Fatalf("run(%q) error = %v, want nil", c.args, err)
			}
			if got != c.want {
				t.Errorf("run(%q) = %q, want %q", c.args, got, c.want)
			}
		})
	}
}

func TestBuild_InvalidAmount(t *testing.T) {
	t.Parallel()

	if _, err := run(t, "build", "--address", "a", "--amount", "1,5"); err == nil {
		t.Error("run(build --amount 1,5) error = nil, want error")
	}
}

func TestBuild_ParamShadowsStandard(t *testing.T) {
	t.Parallel()

	_, err := run(t, "build", "--address", "a", "--amount", "1", "--param", "amount=5")
	if !errors.Is(err, bip21.ErrInvalidKey) {
		t.Errorf("run(build --param amount=5) error = %v, want %v", err, bip21.ErrInvalidKey)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	out, err := run(t,
		"parse", "--extra", "pj",
		"bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?amount=50&label=Luke-Jr&message=Donation%20for%20project%20xyz",
		"bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?req-pj=https://example.com/pj",
		"bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?req-unknown=1",
	)
	var ec cli.ExitCoder
	if !errors.As(err, &ec) || ec.ExitCode() != 1 {
		t.Fatalf("run(parse) error = %v, want exit code 1", err)
	}

	var got []map[string]any
	dec := json.NewDecoder(bytes.NewBufferString(out))
	for dec.More() {
		var v map[string]any
		if err := dec.Decode(&v); err != nil {
			t.Fatalf("decode output %q: %v", out, err)
		}
		got = append(got, v)
	}

	want := []map[string]any{
		{
			"input":   "bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?amount=50&label=Luke-Jr&message=Donation%20for%20project%20xyz",
			"address": "1andreas3batLhQa2FawWjeyjCqyBzypd",
			"amount":  "50",
			"label":   "Luke-Jr",
			"message": "Donation for project xyz",
		},
		{
			"input":   "bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?req-pj=https://example.com/pj",
			"address": "1andreas3batLhQa2FawWjeyjCqyBzypd",
			"extras":  []any{map[string]any{"key": "req-pj", "value": "https://example.com/pj"}},
		},
		{
			"input": "bitcoin:1andreas3batLhQa2FawWjeyjCqyBzypd?req-unknown=1",
			"error": `unknown required parameter "req-unknown"`,
		},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("run(parse) output mismatch\ndiff (-got +want):\n%v", diff)
	}
}

func TestParse_UnknownNetwork(t *testing.T) {
	t.Parallel()

	if _, err := run(t, "parse", "--network", "moon", "bitcoin:x"); err == nil {
		t.Error("run(parse --network moon) error = nil, want error")
	}
}
