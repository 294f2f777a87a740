// Command bip21 parses, builds and resolves Bitcoin payment request URIs.
//
// Usage:
//
//	bip21 parse [--network=mainnet] [--extra=pj] URI...
//	bip21 build --address=ADDR [--amount=0.5] [--label=TEXT] [--param=key=value] [--qr]
//	bip21 resolve [--nameserver=1.1.1.1] [--dnssec] ₿user@domain...
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		code := 1
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "bip21:", msg)
		}
		stop()
		os.Exit(code)
	}
}
