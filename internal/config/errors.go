package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoDomain is returned when no target domain was supplied and the
	// interactive prompt produced nothing.
	ErrNoDomain = errors.New("no domain specified: use -d or answer the prompt")

	// ErrInvalidTimeout is returned when the probe timeout is not positive.
	// A timeout of zero or negative would fail every probe immediately.
	ErrInvalidTimeout = errors.New("invalid probe timeout: must be positive")

	// ErrNoBlacklistZone is returned when the single blacklist probe is
	// enabled but no reputation zone is configured.
	ErrNoBlacklistZone = errors.New("no blacklist zone configured: set one or pass --no-blacklist")

	// ErrNoBlacklistZones is returned when the extended blacklist probe
	// is enabled but the zone sweep list is empty.
	ErrNoBlacklistZones = errors.New("no blacklist zones configured: set some or pass --no-blacklist-check")
)
