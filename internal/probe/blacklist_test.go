package probe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/domaincheck/domaincheck/internal/model"
)

// mockResolver is a test helper that implements the Resolver interface
// keyed on the queried name.
type mockResolver struct {
	answers map[string][]string
	errs    map[string]error
}

// Lookup implements Resolver.Lookup.
func (m *mockResolver) Lookup(ctx context.Context, name string) ([]string, error) {
	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	if addrs, ok := m.answers[name]; ok {
		return addrs, nil
	}
	return nil, errNameNotFound
}

// TestBlacklistProbeIdentity tests the probe's stable name and title.
func TestBlacklistProbeIdentity(t *testing.T) {
	t.Parallel()

	p := NewBlacklistProbe("zen.spamhaus.org")

	if got := p.Name(); got != "blacklist" {
		t.Errorf("expected name blacklist, got %s", got)
	}
	if got := p.Title(); got != "Blacklist Check" {
		t.Errorf("expected title Blacklist Check, got %s", got)
	}
}

// TestBlacklistProbeRun tests the listed, clean, and unknown verdicts.
func TestBlacklistProbeRun(t *testing.T) {
	t.Parallel()

	domain := model.MustNewDomain("example.com")

	t.Run("127-prefixed answer means listed", func(t *testing.T) {
		t.Parallel()

		p := NewBlacklistProbe("zen.spamhaus.org", WithBlacklistResolver(&mockResolver{
			answers: map[string][]string{
				"example.com.zen.spamhaus.org": {"127.0.0.2"},
			},
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsSuccess() {
			t.Fatalf("expected success, got status %v cause %q", outcome.Status, outcome.Cause)
		}
		if got := outcome.Lines[1].Value; got != "127.0.0.2" {
			t.Errorf("expected listed response code, got %s", got)
		}
	})

	t.Run("nxdomain means clean", func(t *testing.T) {
		t.Parallel()

		p := NewBlacklistProbe("zen.spamhaus.org", WithBlacklistResolver(&mockResolver{}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsEmpty() {
			t.Fatalf("expected empty, got status %v", outcome.Status)
		}
		if !strings.Contains(outcome.Reason, "zen.spamhaus.org") {
			t.Errorf("expected reason to name the zone, got %q", outcome.Reason)
		}
	})

	t.Run("answer outside loopback range means clean", func(t *testing.T) {
		t.Parallel()

		p := NewBlacklistProbe("zen.spamhaus.org", WithBlacklistResolver(&mockResolver{
			answers: map[string][]string{
				// Public resolvers that intercept DNSBL queries answer
				// with advertising addresses; those are not listings.
				"example.com.zen.spamhaus.org": {"93.184.216.34"},
			},
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsEmpty() {
			t.Fatalf("expected empty, got status %v", outcome.Status)
		}
	})

	t.Run("transport error means unknown", func(t *testing.T) {
		t.Parallel()

		p := NewBlacklistProbe("zen.spamhaus.org", WithBlacklistResolver(&mockResolver{
			errs: map[string]error{
				"example.com.zen.spamhaus.org": errors.New("i/o timeout"),
			},
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsFailure() {
			t.Fatalf("expected failure, got status %v", outcome.Status)
		}
		if !strings.Contains(outcome.Cause, "zen.spamhaus.org") {
			t.Errorf("expected cause to name the zone, got %q", outcome.Cause)
		}
	})
}

// TestExtendedBlacklistProbeRun tests verdict aggregation across zones.
func TestExtendedBlacklistProbeRun(t *testing.T) {
	t.Parallel()

	domain := model.MustNewDomain("example.com")
	zones := []string{"bl.spamcop.net", "psbl.surriel.com", "multi.surbl.org"}

	t.Run("mixed verdicts yield success with zone-ordered lines", func(t *testing.T) {
		t.Parallel()

		p := NewExtendedBlacklistProbe(zones, WithExtendedResolver(&mockResolver{
			answers: map[string][]string{
				"example.com.psbl.surriel.com": {"127.0.0.3"},
			},
			errs: map[string]error{
				"example.com.multi.surbl.org": errors.New("i/o timeout"),
			},
		}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsSuccess() {
			t.Fatalf("expected success, got status %v", outcome.Status)
		}
		if len(outcome.Lines) != len(zones) {
			t.Fatalf("expected %d lines, got %d", len(zones), len(outcome.Lines))
		}
		for i, zone := range zones {
			if outcome.Lines[i].Label != zone {
				t.Errorf("line %d: expected zone %s, got %s", i, zone, outcome.Lines[i].Label)
			}
		}
		if outcome.Lines[0].Value != "clean" {
			t.Errorf("expected spamcop clean, got %s", outcome.Lines[0].Value)
		}
		if !strings.HasPrefix(outcome.Lines[1].Value, "LISTED") {
			t.Errorf("expected psbl listed, got %s", outcome.Lines[1].Value)
		}
		if !strings.HasPrefix(outcome.Lines[2].Value, "unknown") {
			t.Errorf("expected surbl unknown, got %s", outcome.Lines[2].Value)
		}
	})

	t.Run("all zones clean yields empty", func(t *testing.T) {
		t.Parallel()

		p := NewExtendedBlacklistProbe(zones, WithExtendedResolver(&mockResolver{}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsEmpty() {
			t.Fatalf("expected empty, got status %v", outcome.Status)
		}
		if !strings.Contains(outcome.Reason, "3 zones") {
			t.Errorf("expected reason to count the zones, got %q", outcome.Reason)
		}
	})

	t.Run("all zones unreachable yields failure", func(t *testing.T) {
		t.Parallel()

		errs := make(map[string]error, len(zones))
		for _, zone := range zones {
			errs["example.com."+zone] = errors.New("network unreachable")
		}

		p := NewExtendedBlacklistProbe(zones, WithExtendedResolver(&mockResolver{errs: errs}))

		outcome := p.Run(context.Background(), domain)

		if !outcome.IsFailure() {
			t.Fatalf("expected failure, got status %v", outcome.Status)
		}
	})

	t.Run("empty zone list falls back to the default set", func(t *testing.T) {
		t.Parallel()

		p := NewExtendedBlacklistProbe(nil, WithExtendedResolver(&mockResolver{}))

		if len(p.zones) == 0 {
			t.Fatal("expected default zones, got none")
		}
	})
}
