// Package probe implements the independent checks domaincheck runs
// against a target domain: WHOIS registration lookup, DNS resolution,
// website reachability, DNS-based blacklist membership, and platform
// fingerprinting.
//
// Every probe implements the Probe interface and fully contains its own
// failures: network errors, malformed responses, and missing optional
// capabilities come back as Failure or degraded-line outcomes, never as
// Go errors that could abort the run. The pipeline package schedules
// probes; this package never blocks on anything but its own outbound
// calls.
package probe
