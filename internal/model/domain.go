package model

import (
	"errors"
	"regexp"
	"strings"
)

// Domain errors.
var (
	// ErrInvalidDomain is returned when the domain format is invalid.
	ErrInvalidDomain = errors.New("invalid domain format")
	// ErrEmptyDomain is returned when the domain is empty.
	ErrEmptyDomain = errors.New("domain cannot be empty")
)

// domainPattern matches hostname-like domain names: one or more labels of
// alphanumerics and interior hyphens, separated by dots, ending in a
// top-level label of at least two alphabetic characters.
//
// URLs ("http://example.com"), bare words ("example"), and labels with
// leading or trailing hyphens are all rejected.
var domainPattern = regexp.MustCompile(
	`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*\.[a-z]{2,}$`,
)

// Domain is an immutable value object representing a validated target
// domain name. A Domain is only constructible through NewDomain, so any
// Domain held by a probe is known to be well-formed.
type Domain struct {
	name string // Normalized domain name (lowercase, no trailing dot)
}

// NewDomain creates a Domain from a string.
// The input is normalized (trimmed, lowercased, trailing dot removed)
// and validated against the hostname pattern.
// Returns an error if the input is empty or malformed.
func NewDomain(name string) (Domain, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimSuffix(normalized, ".")

	if normalized == "" {
		return Domain{}, ErrEmptyDomain
	}
	if !domainPattern.MatchString(normalized) {
		return Domain{}, ErrInvalidDomain
	}

	return Domain{name: normalized}, nil
}

// MustNewDomain creates a Domain or panics if the input is invalid.
// Use only for known-valid domains in tests or initialization.
func MustNewDomain(name string) Domain {
	d, err := NewDomain(name)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the normalized domain name.
func (d Domain) String() string {
	return d.name
}

// TLD returns the final label of the domain (e.g., "com" for "example.com").
func (d Domain) TLD() string {
	idx := strings.LastIndex(d.name, ".")
	if idx == -1 {
		return d.name
	}
	return d.name[idx+1:]
}

// IsZero returns true if this is a zero value (empty) Domain.
func (d Domain) IsZero() bool {
	return d.name == ""
}

// Equals returns true if two Domain values are equal.
func (d Domain) Equals(other Domain) bool {
	return d.name == other.name
}
