package probe

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/domaincheck/domaincheck/internal/model"
	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// whoisQuerier abstracts the WHOIS client so tests can supply canned
// registry responses. *whois.Client satisfies this interface.
type whoisQuerier interface {
	Whois(domain string, servers ...string) (string, error)
}

// fallbackFieldPattern matches the fixed set of labeled lines extracted
// from raw WHOIS text when the structured parser cannot handle a
// registry's format. Only these labels make it into the report; the rest
// of the response (contact addresses, legal boilerplate) is dropped.
var fallbackFieldPattern = regexp.MustCompile(
	`(?im)^\s*(Registrar|Registrant Organization|Registrant Name|Creation Date|Created|Updated Date|Last Updated|Registry Expiry Date|Expiration Date|Name Server|Domain Status|Status):\s*(.+)$`,
)

// WhoisProbe queries the registration database for the target domain and
// extracts the registrar, registrant, lifecycle dates, name servers, and
// status codes.
type WhoisProbe struct {
	// querier performs the raw WHOIS query.
	querier whoisQuerier
}

// WhoisOption configures a WhoisProbe.
type WhoisOption func(*WhoisProbe)

// WithWhoisQuerier injects a custom WHOIS querier. Used by tests.
func WithWhoisQuerier(q whoisQuerier) WhoisOption {
	return func(p *WhoisProbe) {
		p.querier = q
	}
}

// WithWhoisTimeout sets the network timeout on the default WHOIS client.
// It has no effect after WithWhoisQuerier replaced the client.
func WithWhoisTimeout(timeout time.Duration) WhoisOption {
	return func(p *WhoisProbe) {
		if c, ok := p.querier.(*whois.Client); ok {
			c.SetTimeout(timeout)
		}
	}
}

// NewWhoisProbe creates a WHOIS registration-lookup probe.
func NewWhoisProbe(opts ...WhoisOption) *WhoisProbe {
	p := &WhoisProbe{
		querier: whois.NewClient(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *WhoisProbe) Name() string { return "whois" }

// Title returns the report section header.
func (p *WhoisProbe) Title() string { return "WHOIS Information" }

// Run queries the registration database and extracts the reportable
// fields. An unparseable response degrades to raw labeled-line
// extraction; a registry with no record for the domain yields Empty.
func (p *WhoisProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	if err := ctx.Err(); err != nil {
		return model.Failure(fmt.Sprintf("whois query aborted: %v", err))
	}

	raw, err := p.querier.Whois(domain.String())
	if err != nil {
		return model.Failure(fmt.Sprintf("whois query failed: %v", err))
	}

	parsed, err := whoisparser.Parse(raw)
	switch {
	case err == nil:
		return p.structuredOutcome(parsed)
	case errors.Is(err, whoisparser.ErrNotFoundDomain):
		return model.Empty("domain not found in registry")
	default:
		// Some ccTLD registries use formats the parser rejects; fall
		// back to scanning the raw text for the known field labels.
		return p.rawOutcome(raw)
	}
}

// structuredOutcome builds the report lines from a parsed WHOIS record.
func (p *WhoisProbe) structuredOutcome(info whoisparser.WhoisInfo) model.Outcome {
	var lines []model.Line

	if info.Registrar != nil && info.Registrar.Name != "" {
		lines = append(lines, model.Line{Label: "Registrar", Value: info.Registrar.Name})
	}
	if info.Registrant != nil {
		registrant := info.Registrant.Organization
		if registrant == "" {
			registrant = info.Registrant.Name
		}
		if registrant != "" {
			lines = append(lines, model.Line{Label: "Registrant", Value: registrant})
		}
	}

	if info.Domain != nil {
		if info.Domain.CreatedDate != "" {
			lines = append(lines, model.Line{Label: "Created", Value: info.Domain.CreatedDate})
		}
		if info.Domain.UpdatedDate != "" {
			lines = append(lines, model.Line{Label: "Updated", Value: info.Domain.UpdatedDate})
		}
		if info.Domain.ExpirationDate != "" {
			lines = append(lines, model.Line{Label: "Expires", Value: info.Domain.ExpirationDate})
		}
		for _, ns := range info.Domain.NameServers {
			lines = append(lines, model.Line{Label: "Name Server", Value: strings.ToLower(ns)})
		}
		if len(info.Domain.Status) > 0 {
			lines = append(lines, model.Line{Label: "Status", Value: strings.Join(info.Domain.Status, ", ")})
		}
	}

	if len(lines) == 0 {
		return model.Empty("no registration fields found")
	}
	return model.Success(lines...)
}

// rawOutcome extracts the known field labels directly from raw WHOIS text.
func (p *WhoisProbe) rawOutcome(raw string) model.Outcome {
	matches := fallbackFieldPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return model.Empty("no registration fields found")
	}

	lines := make([]model.Line, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, model.Line{
			Label: strings.TrimSpace(m[1]),
			Value: strings.TrimSpace(m[2]),
		})
	}
	return model.Success(lines...)
}
