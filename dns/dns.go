// Package dns resolves BIP 353 human-readable payment names like ₿alice@example.com
// into payment request URIs published in DNS TXT records.
package dns

//go:generate go tool errtrace -w .

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/bip21"
	"github.com/ghettovoice/bip21/internal/errorutil"
	"github.com/ghettovoice/bip21/internal/log"
	"github.com/ghettovoice/bip21/internal/util"
)

type Error = errorutil.Error

const (
	ErrInvalidName      Error = "invalid payment name"
	ErrNoPaymentRecord  Error = "no payment record"
	ErrMultipleRecords  Error = "multiple payment records"
	ErrNotAuthenticated Error = "payment record is not DNSSEC authenticated"
)

// NamePrefix is the currency symbol that may precede a human-readable name.
const NamePrefix = "₿"

// ParseHumanName splits a name of the form [₿]user@domain.
func ParseHumanName(s string) (user, domain string, err error) {
	s = strings.TrimPrefix(s, NamePrefix)
	user, domain, ok := strings.Cut(s, "@")
	if !ok || user == "" || domain == "" || strings.ContainsAny(user, "@ ") || strings.Contains(domain, "@") {
		return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidName, "%q", s))
	}
	return user, strings.TrimSuffix(domain, "."), nil
}

// PaymentName returns the fully qualified DNS name holding the payment record of user at domain.
func PaymentName(user, domain string) string {
	return dns.Fqdn(user + ".user._bitcoin-payment." + domain)
}

// Resolver looks up payment records.
type Resolver struct {
	// NameServer specifies the DNS server address (e.g., "8.8.8.8:53").
	// If empty, the first server of /etc/resolv.conf is used.
	NameServer string
	// Timeout specifies the timeout for DNS queries.
	// If zero, defaults to 5 seconds.
	Timeout time.Duration
	// RequireDNSSEC rejects answers without the Authenticated Data bit set
	// by a validating resolver.
	RequireDNSSEC bool
	Logger        *slog.Logger
}

// TXT is a TXT record with its character strings joined.
type TXT struct {
	Text string
	// Authenticated reports whether the answer carried the Authenticated Data bit.
	Authenticated bool
}

// LookupTXT queries TXT records of name.
func (r *Resolver) LookupTXT(ctx context.Context, name string) ([]TXT, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeTXT)
	m.RecursionDesired = true
	m.AuthenticatedData = true
	m.SetEdns0(4096, true)

	nameserver, err := r.nameserver()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	logger := log.Or(r.Logger).With(slog.String("nameserver", nameserver))
	logger.DebugContext(ctx, "send DNS query", slog.Any("query", m))

	client := &dns.Client{Timeout: r.timeout()}
	resp, rtt, err := client.ExchangeContext(ctx, m, nameserver)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	logger.DebugContext(ctx, "DNS response received", slog.Any("response", resp), slog.Duration("rtt", rtt))

	if resp.Rcode != dns.RcodeSuccess {
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        dns.RcodeToString[resp.Rcode],
			Name:       name,
			Server:     nameserver,
			IsNotFound: resp.Rcode == dns.RcodeNameError,
		})
	}

	recs := make([]TXT, 0, len(resp.Answer))
	for _, ans := range resp.Answer {
		if rr, ok := ans.(*dns.TXT); ok {
			recs = append(recs, TXT{Text: strings.Join(rr.Txt, ""), Authenticated: resp.AuthenticatedData})
		}
	}
	return recs, nil
}

// LookupPaymentURI returns the payment request URI published for user at domain.
//
// Exactly one TXT record of the name must start with the "bitcoin:" scheme,
// other records are ignored.
func (r *Resolver) LookupPaymentURI(ctx context.Context, user, domain string) (string, error) {
	name := PaymentName(user, domain)
	recs, err := r.LookupTXT(ctx, name)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrNoPaymentRecord, err))
		}
		return "", errtrace.Wrap(err)
	}

	var found *TXT
	for i := range recs {
		if !util.HasPrefixFold(recs[i].Text, bip21.DefaultScheme+":") {
			continue
		}
		if found != nil {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrMultipleRecords, "%s", name))
		}
		found = &recs[i]
	}
	if found == nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrNoPaymentRecord, "%s", name))
	}
	if r.RequireDNSSEC && !found.Authenticated {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrNotAuthenticated, "%s", name))
	}
	return found.Text, nil
}

// Resolve resolves the human-readable name and parses the published URI with opts.
func (r *Resolver) Resolve(ctx context.Context, name string, opts *bip21.ParseOptions) (*bip21.URI, error) {
	user, domain, err := ParseHumanName(name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	text, err := r.LookupPaymentURI(ctx, user, domain)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(bip21.Parse(text, opts))
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return 5 * time.Second
}

func (r *Resolver) nameserver() (string, error) {
	if r.NameServer != "" {
		if _, _, err := net.SplitHostPort(r.NameServer); err != nil {
			return net.JoinHostPort(r.NameServer, "53"), nil //nolint:nilerr
		}
		return r.NameServer, nil
	}

	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if len(conf.Servers) == 0 {
		return "", errtrace.Wrap(&net.DNSError{
			Err:  "no DNS servers configured",
			Name: "resolv.conf",
		})
	}

	return net.JoinHostPort(conf.Servers[0], conf.Port), nil
}
