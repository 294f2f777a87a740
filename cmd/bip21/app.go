package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ghettovoice/bip21"
	"github.com/ghettovoice/bip21/address"
	"github.com/ghettovoice/bip21/amount"
	"github.com/ghettovoice/bip21/dns"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/log"
)

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "bip21",
		Usage:  "parse, build and resolve Bitcoin payment request URIs",
		Writer: w,
		// exit codes are handled by main
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug records to stderr"},
			&cli.StringFlag{Name: "scheme", Value: bip21.DefaultScheme, Usage: "URI scheme"},
		},
		Commands: []*cli.Command{
			parseCommand(),
			buildCommand(),
			resolveCommand(),
		},
	}
}

func logger(cmd *cli.Command) *slog.Logger {
	if cmd.Bool("verbose") {
		return log.Dev
	}
	return log.Def
}

func parseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "network",
			Value: "mainnet",
			Usage: "address network: mainnet, testnet, regtest, signet, any or opaque",
		},
		&cli.StringSliceFlag{Name: "extra", Usage: "extra parameter name to accept, also as req-<name>"},
		&cli.BoolFlag{Name: "bytes", Usage: "accept parameter values that are not valid UTF-8"},
	}
}

func addressDecoder(network string) (bip21.AddressDecoder, error) {
	switch network {
	case "any":
		return bip21.UncheckedAddresses, nil
	case "opaque":
		return bip21.OpaqueAddresses, nil
	}
	for _, net := range address.Networks {
		if net.Name == network || network == "testnet" && net == &chaincfg.TestNet3Params {
			return bip21.NetworkAddresses(net), nil
		}
	}
	return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown network %q", network))
}

type parser struct {
	opts  bip21.ParseOptions
	extra []string
}

func newParser(cmd *cli.Command) (*parser, error) {
	addrs, err := addressDecoder(cmd.String("network"))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &parser{
		opts: bip21.ParseOptions{
			Scheme:            cmd.String("scheme"),
			Addresses:         addrs,
			NonCompliantBytes: cmd.Bool("bytes"),
			Logger:            logger(cmd),
		},
		extra: cmd.StringSlice("extra"),
	}, nil
}

// options returns a copy of the parse options with a fresh collector of the extra parameters.
func (p *parser) options() (*bip21.ParseOptions, *bip21.ParamCollector) {
	ext := bip21.NewParamCollector(p.extra...)
	opts := p.opts
	opts.Extras = []bip21.ExtrasConsumer{ext}
	return &opts, ext
}

type field struct {
	Key   bip21.Key `json:"key"`
	Value string    `json:"value"`
}

type result struct {
	Input   string         `json:"input"`
	Address string         `json:"address,omitempty"`
	Amount  *amount.Amount `json:"amount,omitempty"`
	Label   *string        `json:"label,omitempty"`
	Message *string        `json:"message,omitempty"`
	Extras  []field        `json:"extras,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func text(p *bip21.Param) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

func newResult(in string, u *bip21.URI, fields []bip21.Field, err error) result {
	res := result{Input: in}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Address = u.Address.EncodeAddress()
	res.Amount = u.Amount
	res.Label = text(u.Label)
	res.Message = text(u.Message)
	for _, f := range fields {
		res.Extras = append(res.Extras, field{Key: f.Key(), Value: f.Value.String()})
	}
	return res
}

func writeResults(w io.Writer, results []result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return errtrace.Wrap(err)
		}
	}
	for _, res := range results {
		if res.Error != "" {
			return errtrace.Wrap(cli.Exit("", 1))
		}
	}
	return nil
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse URIs and print them as JSON",
		ArgsUsage: "URI...",
		Flags: append(parseFlags(),
			&cli.IntFlag{Name: "jobs", Value: 4, Usage: "number of URIs parsed concurrently"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errtrace.Wrap(cli.Exit("no URI given", 2))
			}

			p, err := newParser(cmd)
			if err != nil {
				return errtrace.Wrap(err)
			}

			results := make([]result, len(args))
			g, ctx := errgroup.WithContext(ctx)
			g.SetLimit(max(1, int(cmd.Int("jobs"))))
			for i, in := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return errtrace.Wrap(err)
					}
					opts, ext := p.options()
					u, err := bip21.Parse(in, opts)
					if err == nil {
						opts.Logger.DebugContext(ctx, "URI parsed", slog.Any("uri", log.FmtValue(u, false)))
					}
					results[i] = newResult(in, u, ext.Fields(), err)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(writeResults(cmd.Root().Writer, results))
		},
	}
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a URI from its parts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Required: true, Usage: "address, written as is"},
			&cli.StringFlag{Name: "amount", Usage: "amount in BTC"},
			&cli.StringFlag{Name: "label", Usage: "label of the recipient"},
			&cli.StringFlag{Name: "message", Usage: "message to the payer"},
			&cli.StringSliceFlag{Name: "param", Usage: "extra parameter key=value, a key may start with req-"},
			&cli.BoolFlag{Name: "qr", Usage: "render in the QR code friendly form"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			u := &bip21.URI{
				Scheme:  cmd.String("scheme"),
				Address: address.Opaque(cmd.String("address")),
			}
			if s := cmd.String("amount"); s != "" {
				amt, err := amount.Parse(s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				u.Amount = &amt
			}
			if cmd.IsSet("label") {
				label := bip21.NewParam(cmd.String("label"))
				u.Label = &label
			}
			if cmd.IsSet("message") {
				msg := bip21.NewParam(cmd.String("message"))
				u.Message = &msg
			}
			for _, kv := range cmd.StringSlice("param") {
				k, v, _ := strings.Cut(kv, "=")
				key := bip21.Key(k)
				u.Extras = append(u.Extras, bip21.Field{
					Name:     key.Name(),
					Value:    bip21.NewParam(v),
					Required: key.IsRequired(),
				})
			}

			s, err := u.Render(&bip21.RenderOptions{QR: cmd.Bool("qr")})
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, s)
			return errtrace.Wrap(err)
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve BIP 353 payment names and print the published URIs as JSON",
		ArgsUsage: "₿user@domain...",
		Flags: append(parseFlags(),
			&cli.StringFlag{Name: "nameserver", Usage: "DNS server address, /etc/resolv.conf if empty"},
			&cli.DurationFlag{Name: "timeout", Usage: "DNS query timeout"},
			&cli.BoolFlag{Name: "dnssec", Usage: "require DNSSEC authenticated answers"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errtrace.Wrap(cli.Exit("no name given", 2))
			}

			p, err := newParser(cmd)
			if err != nil {
				return errtrace.Wrap(err)
			}

			r := &dns.Resolver{
				NameServer:    cmd.String("nameserver"),
				Timeout:       cmd.Duration("timeout"),
				RequireDNSSEC: cmd.Bool("dnssec"),
				Logger:        logger(cmd),
			}
			results := make([]result, len(args))
			for i, name := range args {
				opts, ext := p.options()
				u, err := r.Resolve(ctx, name, opts)
				results[i] = newResult(name, u, ext.Fields(), err)
			}
			return errtrace.Wrap(writeResults(cmd.Root().Writer, results))
		},
	}
}
