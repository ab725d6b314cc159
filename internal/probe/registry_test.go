package probe

import (
	"testing"

	"github.com/domaincheck/domaincheck/internal/config"
)

// TestNewRegistry tests probe ordering and toggle handling.
func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("default config enables every probe in fixed order", func(t *testing.T) {
		t.Parallel()

		probes := NewRegistry(config.NewConfig())

		want := []string{"whois", "dns", "website", "blacklist", "platform", "blacklist-extended"}
		if len(probes) != len(want) {
			t.Fatalf("expected %d probes, got %d", len(want), len(probes))
		}
		for i, name := range want {
			if got := probes[i].Name(); got != name {
				t.Errorf("position %d: expected %s, got %s", i, name, got)
			}
		}
	})

	t.Run("disabled family contributes no probe", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.NoWhois = true
		cfg.NoBlacklistExtended = true

		probes := NewRegistry(cfg)

		want := []string{"dns", "website", "blacklist", "platform"}
		if len(probes) != len(want) {
			t.Fatalf("expected %d probes, got %d", len(want), len(probes))
		}
		for i, name := range want {
			if got := probes[i].Name(); got != name {
				t.Errorf("position %d: expected %s, got %s", i, name, got)
			}
		}
	})

	t.Run("all families disabled yields empty registry", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.NoWhois = true
		cfg.NoDNS = true
		cfg.NoWebsite = true
		cfg.NoBlacklist = true
		cfg.NoCMS = true
		cfg.NoBlacklistExtended = true

		probes := NewRegistry(cfg)

		if len(probes) != 0 {
			t.Errorf("expected no probes, got %d", len(probes))
		}
	})

	t.Run("titles are unique across the registry", func(t *testing.T) {
		t.Parallel()

		probes := NewRegistry(config.NewConfig())

		seen := make(map[string]bool, len(probes))
		for _, p := range probes {
			if seen[p.Title()] {
				t.Errorf("duplicate probe title %q", p.Title())
			}
			seen[p.Title()] = true
		}
	})
}
