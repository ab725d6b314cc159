package probe

import (
	"context"

	"github.com/domaincheck/domaincheck/internal/model"
)

// Probe defines the interface all checks implement.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows probes to carry configuration state (clients, zones)
//  2. It provides Name/Title for aggregation keys and report headers
//  3. Fake probes in tests are trivial to build
type Probe interface {
	// Name returns the stable probe identity. It is used as the
	// aggregation key for the probe's result slot and never changes
	// between runs.
	Name() string

	// Title returns the human-readable report section header.
	Title() string

	// Run executes the check against the target domain and returns a
	// terminal outcome. Implementations must respect context
	// cancellation and must contain their own failures: a network or
	// parsing error becomes a Failure outcome, not a panic or a hang.
	Run(ctx context.Context, domain model.Domain) model.Outcome
}
