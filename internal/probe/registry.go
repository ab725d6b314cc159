package probe

import (
	"github.com/domaincheck/domaincheck/internal/config"
)

// NewRegistry maps the configuration toggles to the ordered list of
// enabled probes. Declaration order here is registry order: it fixes the
// report section layout regardless of which probe finishes first.
//
// Disabling a family removes it from the list entirely; it contributes
// no slot and no report section.
func NewRegistry(cfg *config.Config) []Probe {
	probes := make([]Probe, 0, 6)

	if !cfg.NoWhois {
		probes = append(probes, NewWhoisProbe(
			WithWhoisTimeout(cfg.ProbeTimeout),
		))
	}

	if !cfg.NoDNS {
		probes = append(probes, NewDNSProbe())
	}

	if !cfg.NoWebsite {
		probes = append(probes, NewWebsiteProbe())
	}

	if !cfg.NoBlacklist {
		probes = append(probes, NewBlacklistProbe(
			cfg.BlacklistZone,
			WithBlacklistResolverAddress(cfg.ResolverAddress),
		))
	}

	if !cfg.NoCMS {
		probes = append(probes, NewPlatformProbe())
	}

	if !cfg.NoBlacklistExtended {
		probes = append(probes, NewExtendedBlacklistProbe(
			cfg.BlacklistZones,
			WithExtendedResolverAddress(cfg.ResolverAddress),
		))
	}

	return probes
}
