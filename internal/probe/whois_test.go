package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/domaincheck/domaincheck/internal/model"
)

// mockQuerier is a test helper that implements the whoisQuerier
// interface with canned responses.
type mockQuerier struct {
	response string
	err      error
}

// Whois implements whoisQuerier.Whois.
func (m *mockQuerier) Whois(domain string, servers ...string) (string, error) {
	return m.response, m.err
}

// registeredResponse is a minimal but parser-valid WHOIS answer.
const registeredResponse = `Domain Name: EXAMPLE.COM
Registry Domain ID: 2336799_DOMAIN_COM-VRSN
Registrar: Example Registrar LLC
Registrar WHOIS Server: whois.example-registrar.com
Creation Date: 1995-08-14T04:00:00Z
Updated Date: 2024-08-14T07:01:31Z
Registry Expiry Date: 2026-08-13T04:00:00Z
Registrant Organization: Internet Assigned Numbers Authority
Name Server: A.IANA-SERVERS.NET
Name Server: B.IANA-SERVERS.NET
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
`

// TestWhoisProbeIdentity tests the probe's stable name and title.
func TestWhoisProbeIdentity(t *testing.T) {
	t.Parallel()

	p := NewWhoisProbe()

	if got := p.Name(); got != "whois" {
		t.Errorf("expected name whois, got %s", got)
	}
	if got := p.Title(); got != "WHOIS Information" {
		t.Errorf("expected title WHOIS Information, got %s", got)
	}
}

// TestWhoisProbeRun tests the outcome classification for the probe.
func TestWhoisProbeRun(t *testing.T) {
	t.Parallel()

	domain := model.MustNewDomain("example.com")

	t.Run("registered domain yields structured success", func(t *testing.T) {
		t.Parallel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{response: registeredResponse}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsSuccess() {
			t.Fatalf("expected success, got status %v reason %q cause %q",
				outcome.Status, outcome.Reason, outcome.Cause)
		}
		if len(outcome.Lines) == 0 {
			t.Fatal("expected report lines, got none")
		}
		if got := outcome.Lines[0].Label; got != "Registrar" {
			t.Errorf("expected first line Registrar, got %s", got)
		}
	})

	t.Run("name servers are lowercased", func(t *testing.T) {
		t.Parallel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{response: registeredResponse}))

		outcome := p.Run(context.Background(), domain)

		var nameServers []string
		for _, line := range outcome.Lines {
			if line.Label == "Name Server" {
				nameServers = append(nameServers, line.Value)
			}
		}
		if len(nameServers) != 2 {
			t.Fatalf("expected 2 name server lines, got %d", len(nameServers))
		}
		if nameServers[0] != "a.iana-servers.net" {
			t.Errorf("expected lowercased name server, got %s", nameServers[0])
		}
	})

	t.Run("unregistered domain yields empty", func(t *testing.T) {
		t.Parallel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{
			response: "No match for domain \"EXAMPLE.COM\".\n",
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsEmpty() {
			t.Fatalf("expected empty, got status %v cause %q", outcome.Status, outcome.Cause)
		}
		if outcome.Reason != "domain not found in registry" {
			t.Errorf("unexpected reason: %q", outcome.Reason)
		}
	})

	t.Run("query error yields failure", func(t *testing.T) {
		t.Parallel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{
			err: errors.New("connection refused"),
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsFailure() {
			t.Fatalf("expected failure, got status %v", outcome.Status)
		}
	})

	t.Run("unparseable response falls back to raw extraction", func(t *testing.T) {
		t.Parallel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{
			response: "% Unusual ccTLD format\nRegistrar: Oddball Registry\nStatus: active\n",
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsSuccess() {
			t.Fatalf("expected success from raw fallback, got status %v", outcome.Status)
		}
		if got := outcome.Lines[0].Value; got != "Oddball Registry" {
			t.Errorf("expected raw registrar value, got %s", got)
		}
	})

	t.Run("cancelled context yields failure without querying", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewWhoisProbe(WithWhoisQuerier(&mockQuerier{response: registeredResponse}))

		outcome := p.Run(ctx, domain)

		if !outcome.IsFailure() {
			t.Fatalf("expected failure, got status %v", outcome.Status)
		}
	})
}
