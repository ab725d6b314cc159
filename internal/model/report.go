package model

import (
	"time"
)

// Slot is the write-once storage location for one probe's outcome.
// The pipeline creates one Slot per enabled probe before any probe runs,
// in registry order. Each slot has exactly one writer (its own probe's
// execution) and is read only after the join barrier, so no per-slot
// locking is needed.
type Slot struct {
	// Probe is the stable probe identity used as the aggregation key.
	Probe string

	// Title is the report section header for this probe.
	Title string

	// Outcome is the probe's terminal result. Written exactly once.
	Outcome Outcome

	// Elapsed is how long the probe ran before reaching a terminal state.
	Elapsed time.Duration
}

// Report is the consolidated result of one domain inspection run.
// Slots appear in registry order, never in completion order; the report
// is assembled only after every enabled probe reached a terminal state.
type Report struct {
	// Domain is the inspected target.
	Domain Domain

	// DateScanned records when the run started.
	DateScanned time.Time

	// Duration is the total wall-clock time of the run.
	Duration time.Duration

	// Slots holds one entry per enabled probe, in registry order.
	Slots []Slot
}

// NewReport creates a Report for the given domain and filled slots.
func NewReport(domain Domain, slots []Slot) *Report {
	return &Report{
		Domain:      domain,
		DateScanned: time.Now(),
		Slots:       slots,
	}
}

// SlotByProbe returns the slot for the given probe identity.
// Returns nil if no such slot exists.
func (r *Report) SlotByProbe(name string) *Slot {
	for i := range r.Slots {
		if r.Slots[i].Probe == name {
			return &r.Slots[i]
		}
	}
	return nil
}

// SectionCount returns the number of report sections (one per slot).
func (r *Report) SectionCount() int {
	return len(r.Slots)
}

// FailureCount returns how many slots ended in failure.
func (r *Report) FailureCount() int {
	var n int
	for _, s := range r.Slots {
		if s.Outcome.IsFailure() {
			n++
		}
	}
	return n
}

// HasFailures returns true if any slot ended in failure.
func (r *Report) HasFailures() bool {
	return r.FailureCount() > 0
}
