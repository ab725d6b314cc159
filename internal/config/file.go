package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DomainConfig holds per-domain overrides for a single target.
// Useful when one registry or reputation list needs different settings
// than the defaults (e.g., a slow ccTLD WHOIS server).
type DomainConfig struct {
	// Timeout overrides the bounded wait per probe for this domain.
	// Zero means the global ProbeTimeout is used.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Resolver overrides the DNS server used for reputation lookups,
	// in "host:port" format.
	Resolver string `yaml:"resolver,omitempty"`

	// BlacklistZone overrides the single-probe reputation list.
	BlacklistZone string `yaml:"blacklistZone,omitempty"`

	// BlacklistZones overrides the extended sweep list, in report order.
	BlacklistZones []string `yaml:"blacklistZones,omitempty"`
}

// domainConfigYAML mirrors DomainConfig with the timeout as a string,
// because yaml.v3 does not decode "10s" into a time.Duration.
type domainConfigYAML struct {
	Timeout        string   `yaml:"timeout,omitempty"`
	Resolver       string   `yaml:"resolver,omitempty"`
	BlacklistZone  string   `yaml:"blacklistZone,omitempty"`
	BlacklistZones []string `yaml:"blacklistZones,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler so timeout values can be
// written in Go duration syntax ("10s", "1m30s").
func (dc *DomainConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw domainConfigYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Timeout != "" {
		parsed, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		dc.Timeout = parsed
	}
	dc.Resolver = raw.Resolver
	dc.BlacklistZone = raw.BlacklistZone
	dc.BlacklistZones = raw.BlacklistZones

	return nil
}

// File represents the structure of the .domaincheck configuration file.
type File struct {
	// Domains maps domain names to their specific configurations.
	Domains map[string]DomainConfig `yaml:"domains,omitempty"`

	// Defaults contains settings applied to all domains unless
	// overridden in the domain-specific configuration.
	Defaults DomainConfig `yaml:"defaults,omitempty"`
}

// DomainConfig returns the configuration for a specific domain,
// merging the domain-specific entry over the file defaults.
func (f *File) DomainConfig(domain string) DomainConfig {
	result := f.Defaults

	if dc, ok := f.Domains[domain]; ok {
		if dc.Timeout != 0 {
			result.Timeout = dc.Timeout
		}
		if dc.Resolver != "" {
			result.Resolver = dc.Resolver
		}
		if dc.BlacklistZone != "" {
			result.BlacklistZone = dc.BlacklistZone
		}
		if len(dc.BlacklistZones) > 0 {
			result.BlacklistZones = dc.BlacklistZones
		}
	}

	return result
}
