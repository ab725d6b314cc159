package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to tolerate slow registries and DNS-based
// reputation lists without hanging the overall report.
const (
	// DefaultProbeTimeout is the bounded wait applied to each probe.
	// 15 seconds is generous enough for slow WHOIS registries and
	// high-latency DNS reputation lists while keeping a worst-case run
	// short: probes run in parallel, so the run lasts about as long as
	// the slowest probe, not the sum.
	DefaultProbeTimeout = 15 * time.Second

	// DefaultBlacklistZone is the reputation list queried by the single
	// blacklist probe. Spamhaus ZEN aggregates the SBL, XBL, and PBL
	// lists in one lookup.
	DefaultBlacklistZone = "zen.spamhaus.org"

	// DefaultMaxBodySize limits the response body size read by the
	// website and platform probes. 5MB is sufficient for any homepage
	// while preventing memory exhaustion from unexpected responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies domaincheck in HTTP requests.
	// A descriptive User-Agent lets site operators identify scanner
	// traffic in their logs.
	DefaultUserAgent = "domaincheck/1.0 (+https://github.com/domaincheck/domaincheck)"

	// AppName is the application name used for XDG directory paths.
	AppName = "domaincheck"
)

// DefaultBlacklistZones returns the reputation lists swept by the
// extended blacklist probe. The slice is freshly allocated so callers
// may append or reorder without affecting other runs.
//
// Zone order is the report line order, so it stays fixed.
func DefaultBlacklistZones() []string {
	return []string{
		"bl.spamcop.net",
		"b.barracudacentral.org",
		"dnsbl.sorbs.net",
		"spam.dnsbl.sorbs.net",
		"psbl.surriel.com",
		"dnsbl-1.uceprotect.net",
		"multi.surbl.org",
	}
}

// Config holds all configuration options for domaincheck.
// This struct is populated from CLI flags and the optional config file,
// then passed through the application via dependency injection rather
// than global state.
type Config struct {
	// Domain is the target domain name as supplied by the user.
	// It is validated (and possibly collected interactively) before any
	// probe runs.
	Domain string

	// ProbeTimeout is the bounded wait applied to each probe. A probe
	// that has not reached a terminal state when this expires is forced
	// to a timeout failure and abandoned.
	ProbeTimeout time.Duration

	// Probe family toggles. Each disables one probe family entirely:
	// the family contributes no slot and no report section.
	NoWhois             bool
	NoDNS               bool
	NoWebsite           bool
	NoBlacklist         bool
	NoCMS               bool
	NoBlacklistExtended bool

	// ResolverAddress is the DNS server ("host:port") used for
	// reputation-list lookups. Empty means the system resolver.
	ResolverAddress string

	// BlacklistZone is the reputation list queried by the single
	// blacklist probe.
	BlacklistZone string

	// BlacklistZones are the reputation lists swept by the extended
	// blacklist probe, in report order.
	BlacklistZones []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches log output from key=value text to JSON, for
	// machine ingestion of scan logs.
	LogJSON bool

	// MarkdownReport switches the report to Markdown formatting.
	// The default is the plain terminal report.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .domaincheck in the current
	// directory, the home directory, and the XDG config directory.
	ConfigFilePath string

	// Overrides holds per-domain settings loaded from the config file.
	Overrides *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe defaults that work for most use cases;
// callers override specific values from flags after creation.
func NewConfig() *Config {
	return &Config{
		ProbeTimeout:   DefaultProbeTimeout,
		BlacklistZone:  DefaultBlacklistZone,
		BlacklistZones: DefaultBlacklistZones(),
	}
}

// XDGConfigDir returns the XDG config directory for domaincheck.
// On Linux: ~/.config/domaincheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ScratchDir returns the transient scratch directory used while
// assembling report output. Contents are disposable; nothing in it is a
// contract, and no scan history is kept there.
// On Linux: ~/.cache/domaincheck
func ScratchDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Validation runs once after flag parsing and the interactive prompt,
// before any probe is launched, so the user gets a clear error upfront
// rather than a half-finished report.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return ErrNoDomain
	}

	// A zero or negative bounded wait would fail every probe immediately
	if c.ProbeTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if !c.NoBlacklist && c.BlacklistZone == "" {
		return ErrNoBlacklistZone
	}

	if !c.NoBlacklistExtended && len(c.BlacklistZones) == 0 {
		return ErrNoBlacklistZones
	}

	return nil
}

// ApplyOverrides merges per-domain settings from the config file into
// the receiver. Flag-level values win only where the file has no entry;
// explicit file entries for the target domain win over defaults.
func (c *Config) ApplyOverrides(domain string) {
	if c.Overrides == nil {
		return
	}

	o := c.Overrides.DomainConfig(domain)
	if o.Timeout > 0 {
		c.ProbeTimeout = o.Timeout
	}
	if o.Resolver != "" {
		c.ResolverAddress = o.Resolver
	}
	if o.BlacklistZone != "" {
		c.BlacklistZone = o.BlacklistZone
	}
	if len(o.BlacklistZones) > 0 {
		c.BlacklistZones = o.BlacklistZones
	}
}
