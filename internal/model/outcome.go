package model

// Status classifies how a probe finished.
type Status int

const (
	// StatusSuccess means the probe ran and found data.
	StatusSuccess Status = iota
	// StatusEmpty means the probe ran to completion but found nothing
	// (no records, no blacklist hit, no recognized platform). Absence of
	// data is a valid result, not an error.
	StatusEmpty
	// StatusFailure means the probe could not complete: network error,
	// timeout, or a missing optional dependency.
	StatusFailure
)

// String returns the human-readable status label used in reports.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "data found"
	case StatusEmpty:
		return "no data"
	case StatusFailure:
		return "error"
	default:
		return "unknown"
	}
}

// CauseTimeout is the failure cause recorded when a probe exceeds its
// bounded wait. The orchestrator writes it; probes never should.
const CauseTimeout = "timeout"

// Line is a single labeled line of probe output.
// The renderer prints lines in the order the probe produced them.
type Line struct {
	// Label names the value (e.g., "Registrar", "HTTP Status").
	Label string

	// Value is the text content for the label.
	Value string
}

// Outcome is the tagged result of one completed probe.
// Exactly one variant applies: Success carries Lines, Empty carries
// Reason, Failure carries Cause. Construct through Success, Empty, or
// Failure so the tag and payload always agree.
type Outcome struct {
	// Status is the variant tag.
	Status Status

	// Lines holds the labeled output for a Success outcome.
	Lines []Line

	// Reason explains an Empty outcome (e.g., "no MX records").
	Reason string

	// Cause explains a Failure outcome (e.g., "timeout").
	Cause string
}

// Success creates a Success outcome carrying the given labeled lines.
func Success(lines ...Line) Outcome {
	return Outcome{Status: StatusSuccess, Lines: lines}
}

// Empty creates an Empty outcome with the given reason.
func Empty(reason string) Outcome {
	return Outcome{Status: StatusEmpty, Reason: reason}
}

// Failure creates a Failure outcome with the given cause.
func Failure(cause string) Outcome {
	return Outcome{Status: StatusFailure, Cause: cause}
}

// TimeoutFailure creates the canonical timeout failure forced onto a
// probe whose bounded wait expired.
func TimeoutFailure() Outcome {
	return Failure(CauseTimeout)
}

// IsSuccess returns true for a Success outcome.
func (o Outcome) IsSuccess() bool { return o.Status == StatusSuccess }

// IsEmpty returns true for an Empty outcome.
func (o Outcome) IsEmpty() bool { return o.Status == StatusEmpty }

// IsFailure returns true for a Failure outcome.
func (o Outcome) IsFailure() bool { return o.Status == StatusFailure }
