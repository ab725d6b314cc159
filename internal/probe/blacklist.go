package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"github.com/domaincheck/domaincheck/internal/config"
	"github.com/domaincheck/domaincheck/internal/model"
)

// errNameNotFound signals an NXDOMAIN answer, which for a DNSBL zone
// means the queried name is not listed.
var errNameNotFound = errors.New("name not found")

// Resolver answers a single A query against a DNSBL zone. The
// production implementation talks to the configured recursive resolver;
// tests substitute canned answers.
type Resolver interface {
	Lookup(ctx context.Context, name string) ([]string, error)
}

// dnsblResolver is the wire implementation of Resolver.
type dnsblResolver struct {
	client *dns.Client
	server string
}

// newDNSBLResolver builds a resolver aimed at addr, or at the first
// server from the system resolver configuration when addr is empty.
func newDNSBLResolver(addr string) *dnsblResolver {
	if addr == "" {
		addr = systemResolverAddress()
	}
	if !strings.Contains(addr, ":") {
		addr += ":53"
	}

	return &dnsblResolver{
		client: &dns.Client{Timeout: 5 * time.Second},
		server: addr,
	}
}

// systemResolverAddress returns the first nameserver from resolv.conf,
// falling back to localhost when none can be read. Preflight catches
// the unreadable case before any probe runs.
func systemResolverAddress() string {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(conf.Servers) == 0 {
		return "127.0.0.1:53"
	}
	return conf.Servers[0] + ":" + conf.Port
}

// Lookup resolves name to its A records. NXDOMAIN maps to
// errNameNotFound; every other non-success rcode is a hard error.
func (r *dnsblResolver) Lookup(ctx context.Context, name string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return nil, fmt.Errorf("exchange with %s: %w", r.server, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, errNameNotFound
	default:
		return nil, fmt.Errorf("query answered with rcode %s", dns.RcodeToString[resp.Rcode])
	}

	var addrs []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}

	return addrs, nil
}

// listingState classifies one zone's verdict for the target domain.
type listingState int

const (
	stateClean listingState = iota
	stateListed
	stateUnknown
)

// checkZone queries domain against a single DNSBL zone. A 127.-prefixed
// answer is the conventional listed marker; NXDOMAIN and answers outside
// that range are clean; transport errors and empty answer sets are
// unknown.
func checkZone(ctx context.Context, r Resolver, domain model.Domain, zone string) (listingState, string) {
	addrs, err := r.Lookup(ctx, domain.String()+"."+zone)
	switch {
	case errors.Is(err, errNameNotFound):
		return stateClean, ""
	case err != nil:
		return stateUnknown, err.Error()
	case len(addrs) == 0:
		return stateUnknown, "empty answer"
	}

	for _, addr := range addrs {
		if strings.HasPrefix(addr, "127.") {
			return stateListed, addr
		}
	}

	return stateClean, ""
}

// BlacklistProbe checks the domain against a single DNSBL zone.
type BlacklistProbe struct {
	zone     string
	resolver Resolver
}

// BlacklistOption configures a BlacklistProbe.
type BlacklistOption func(*BlacklistProbe)

// WithBlacklistResolver injects a custom resolver. Used by tests.
func WithBlacklistResolver(r Resolver) BlacklistOption {
	return func(p *BlacklistProbe) {
		p.resolver = r
	}
}

// WithBlacklistResolverAddress points the probe at a specific recursive
// resolver instead of the system default.
func WithBlacklistResolverAddress(addr string) BlacklistOption {
	return func(p *BlacklistProbe) {
		if addr != "" {
			p.resolver = newDNSBLResolver(addr)
		}
	}
}

// NewBlacklistProbe creates a single-zone DNSBL probe. An empty zone
// falls back to the default.
func NewBlacklistProbe(zone string, opts ...BlacklistOption) *BlacklistProbe {
	if zone == "" {
		zone = config.DefaultBlacklistZone
	}

	p := &BlacklistProbe{
		zone:     zone,
		resolver: newDNSBLResolver(""),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *BlacklistProbe) Name() string { return "blacklist" }

// Title returns the report section header.
func (p *BlacklistProbe) Title() string { return "Blacklist Check" }

// Run reports Success when the domain is listed, Empty when the zone
// answers clean, and Failure when no verdict could be obtained.
func (p *BlacklistProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	state, detail := checkZone(ctx, p.resolver, domain, p.zone)
	switch state {
	case stateListed:
		return model.Success(
			model.Line{Label: "Zone", Value: p.zone},
			model.Line{Label: "Listed", Value: detail},
		)
	case stateClean:
		return model.Empty("not listed in " + p.zone)
	default:
		return model.Failure(fmt.Sprintf("%s: %s", p.zone, detail))
	}
}

// ExtendedBlacklistProbe checks the domain against a set of DNSBL zones
// in parallel and reports a per-zone verdict table.
type ExtendedBlacklistProbe struct {
	zones    []string
	resolver Resolver
}

// ExtendedBlacklistOption configures an ExtendedBlacklistProbe.
type ExtendedBlacklistOption func(*ExtendedBlacklistProbe)

// WithExtendedResolver injects a custom resolver. Used by tests.
func WithExtendedResolver(r Resolver) ExtendedBlacklistOption {
	return func(p *ExtendedBlacklistProbe) {
		p.resolver = r
	}
}

// WithExtendedResolverAddress points the probe at a specific recursive
// resolver instead of the system default.
func WithExtendedResolverAddress(addr string) ExtendedBlacklistOption {
	return func(p *ExtendedBlacklistProbe) {
		if addr != "" {
			p.resolver = newDNSBLResolver(addr)
		}
	}
}

// NewExtendedBlacklistProbe creates a multi-zone DNSBL probe. An empty
// zone list falls back to the built-in set.
func NewExtendedBlacklistProbe(zones []string, opts ...ExtendedBlacklistOption) *ExtendedBlacklistProbe {
	if len(zones) == 0 {
		zones = config.DefaultBlacklistZones()
	}

	p := &ExtendedBlacklistProbe{
		zones:    zones,
		resolver: newDNSBLResolver(""),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *ExtendedBlacklistProbe) Name() string { return "blacklist-extended" }

// Title returns the report section header.
func (p *ExtendedBlacklistProbe) Title() string { return "Extended Blacklist Check" }

// Run queries every zone concurrently. Lines keep the configured zone
// order regardless of completion order. All zones unknown is a Failure,
// all zones clean is Empty, and anything else is Success with one line
// per zone.
func (p *ExtendedBlacklistProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	type verdict struct {
		state  listingState
		detail string
	}

	verdicts := make([]verdict, len(p.zones))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)

	// Each goroutine owns exactly one slot of verdicts, so no locking
	// is needed around the writes.
	for i, zone := range p.zones {
		i, zone := i, zone
		eg.Go(func() error {
			state, detail := checkZone(egCtx, p.resolver, domain, zone)
			verdicts[i] = verdict{state: state, detail: detail}
			return nil
		})
	}
	_ = eg.Wait()

	var (
		listed  int
		unknown int
		lines   []model.Line
	)
	for i, zone := range p.zones {
		v := verdicts[i]
		switch v.state {
		case stateListed:
			listed++
			lines = append(lines, model.Line{Label: zone, Value: "LISTED (" + v.detail + ")"})
		case stateClean:
			lines = append(lines, model.Line{Label: zone, Value: "clean"})
		default:
			unknown++
			lines = append(lines, model.Line{Label: zone, Value: "unknown (" + v.detail + ")"})
		}
	}

	switch {
	case unknown == len(p.zones):
		return model.Failure("no blacklist zone could be queried")
	case listed == 0 && unknown == 0:
		return model.Empty(fmt.Sprintf("not listed in any of %d zones", len(p.zones)))
	default:
		return model.Success(lines...)
	}
}
