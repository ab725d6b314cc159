package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/domaincheck/domaincheck/internal/model"
)

// recordResolver abstracts the stdlib resolver so tests can supply
// canned answers. *net.Resolver satisfies this interface.
type recordResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// DNSProbe resolves the target domain: a general host lookup, a
// name-server lookup, and four typed record queries (A, MX, TXT, CNAME)
// reported independently. A record type with no entries yields an
// explicit "No X records found" line; absence of a record type is not a
// failure.
type DNSProbe struct {
	resolver recordResolver
}

// DNSOption configures a DNSProbe.
type DNSOption func(*DNSProbe)

// WithDNSResolver injects a custom resolver. Used by tests.
func WithDNSResolver(r recordResolver) DNSOption {
	return func(p *DNSProbe) {
		p.resolver = r
	}
}

// NewDNSProbe creates a DNS-resolution probe backed by the system
// resolver.
func NewDNSProbe(opts ...DNSOption) *DNSProbe {
	p := &DNSProbe{
		resolver: net.DefaultResolver,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *DNSProbe) Name() string { return "dns" }

// Title returns the report section header.
func (p *DNSProbe) Title() string { return "DNS Records" }

// Run issues all sub-queries and concatenates their results in fixed
// sub-order: general → NS → A → MX → TXT → CNAME. The outcome is Success
// if any sub-query returned data, Empty if every record type is absent,
// and Failure only when nothing resolved and at least one sub-query hit
// a hard resolver error.
func (p *DNSProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	name := domain.String()

	var (
		lines     []model.Line
		anyFound  bool
		firstHard string
	)

	note := func(found bool, hardErr error) {
		anyFound = anyFound || found
		if hardErr != nil && firstHard == "" {
			firstHard = hardErr.Error()
		}
	}

	// General lookup: every address the name resolves to.
	addrs, err := p.resolver.LookupHost(ctx, name)
	switch {
	case err == nil && len(addrs) > 0:
		for _, addr := range addrs {
			lines = append(lines, model.Line{Label: "Resolved Address", Value: addr})
		}
		note(true, nil)
	case isNotFound(err):
		lines = append(lines, model.Line{Value: "Host does not resolve"})
	default:
		lines = append(lines, model.Line{Value: fmt.Sprintf("Host lookup failed: %v", err)})
		note(false, err)
	}

	// Name servers.
	nss, err := p.resolver.LookupNS(ctx, name)
	switch {
	case err == nil && len(nss) > 0:
		for _, ns := range nss {
			lines = append(lines, model.Line{Label: "Name Server", Value: strings.TrimSuffix(ns.Host, ".")})
		}
		note(true, nil)
	case err == nil || isNotFound(err):
		lines = append(lines, model.Line{Value: "No NS records found"})
	default:
		lines = append(lines, model.Line{Value: fmt.Sprintf("NS lookup failed: %v", err)})
		note(false, err)
	}

	// IPv4 subset of the general lookup, reported as A records.
	v4 := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			v4 = append(v4, addr)
		}
	}
	if len(v4) > 0 {
		for _, addr := range v4 {
			lines = append(lines, model.Line{Label: "A Record", Value: addr})
		}
		note(true, nil)
	} else {
		lines = append(lines, model.Line{Value: "No A records found"})
	}

	// Mail exchangers.
	mxs, err := p.resolver.LookupMX(ctx, name)
	switch {
	case err == nil && len(mxs) > 0:
		for _, mx := range mxs {
			lines = append(lines, model.Line{
				Label: "MX Record",
				Value: fmt.Sprintf("%s (priority %d)", strings.TrimSuffix(mx.Host, "."), mx.Pref),
			})
		}
		note(true, nil)
	case err == nil || isNotFound(err):
		lines = append(lines, model.Line{Value: "No MX records found"})
	default:
		lines = append(lines, model.Line{Value: fmt.Sprintf("MX lookup failed: %v", err)})
		note(false, err)
	}

	// Text records.
	txts, err := p.resolver.LookupTXT(ctx, name)
	switch {
	case err == nil && len(txts) > 0:
		for _, txt := range txts {
			lines = append(lines, model.Line{Label: "TXT Record", Value: txt})
		}
		note(true, nil)
	case err == nil || isNotFound(err):
		lines = append(lines, model.Line{Value: "No TXT records found"})
	default:
		lines = append(lines, model.Line{Value: fmt.Sprintf("TXT lookup failed: %v", err)})
		note(false, err)
	}

	// Canonical name. The resolver reports the input name back when
	// there is no CNAME chain, so that case counts as absent.
	cname, err := p.resolver.LookupCNAME(ctx, name)
	cname = strings.TrimSuffix(cname, ".")
	switch {
	case err == nil && cname != "" && !strings.EqualFold(cname, name):
		lines = append(lines, model.Line{Label: "CNAME Record", Value: cname})
		note(true, nil)
	case err == nil || isNotFound(err):
		lines = append(lines, model.Line{Value: "No CNAME records found"})
	default:
		lines = append(lines, model.Line{Value: fmt.Sprintf("CNAME lookup failed: %v", err)})
		note(false, err)
	}

	switch {
	case anyFound:
		return model.Success(lines...)
	case firstHard != "":
		return model.Failure(firstHard)
	default:
		return model.Empty("no records of any type found")
	}
}

// isNotFound reports whether the resolver error means the record simply
// does not exist, as opposed to a transport or server failure.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}
