package probe

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

// ErrResolverUnavailable is returned by Preflight when no usable DNS
// resolver configuration exists on the host.
var ErrResolverUnavailable = errors.New("no usable DNS resolver configuration")

// resolvConfPath is a variable so tests can point preflight at a
// fixture file.
var resolvConfPath = "/etc/resolv.conf"

// Preflight verifies the environment before any probe runs. Every probe
// ultimately depends on DNS resolution, so a missing or empty resolver
// configuration aborts the scan up front with a clear message instead
// of six identical timeouts.
func Preflight() error {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrResolverUnavailable, resolvConfPath, err)
	}
	if len(conf.Servers) == 0 {
		return fmt.Errorf("%w: %s lists no nameservers", ErrResolverUnavailable, resolvConfPath)
	}

	return nil
}
