package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/domaincheck/domaincheck/internal/model"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables per-section timing in the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with per-section timing.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format. Rendering is
// a pure function of the report, so writing the same report twice
// produces byte-identical output.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	for _, slot := range report.Slots {
		w.writeSection(&sb, slot)
	}
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        DOMAINCHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Domain:     %s\n", report.Domain.String()))
	sb.WriteString(fmt.Sprintf("Scan Date:  %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Sections:   %d\n", report.SectionCount()))
	sb.WriteString("\n")
}

// writeSection writes one probe's slot as a titled section. A section
// is always printed, even when the probe found nothing or failed, so
// the reader can tell absence of data from absence of a check.
func (w *TextWriter) writeSection(sb *strings.Builder, slot model.Slot) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(slot.Title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	switch {
	case slot.Outcome.IsSuccess():
		for _, line := range slot.Outcome.Lines {
			if line.Label == "" {
				sb.WriteString(fmt.Sprintf("  %s\n", line.Value))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", line.Label, line.Value))
		}
	case slot.Outcome.IsEmpty():
		sb.WriteString(fmt.Sprintf("  [no data] %s\n", slot.Outcome.Reason))
	default:
		sb.WriteString(fmt.Sprintf("  [error] %s\n", slot.Outcome.Cause))
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("\n  (completed in %s)\n", slot.Elapsed.Round(time.Millisecond)))
	}

	sb.WriteString("\n")
}

// writeFooter writes the duration and error summary line.
func (w *TextWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	if report.HasFailures() {
		sb.WriteString(fmt.Sprintf("Completed in %s (%d sections, %d errors)\n",
			report.Duration.Round(time.Millisecond), report.SectionCount(), report.FailureCount()))
		return
	}

	sb.WriteString(fmt.Sprintf("Completed in %s (%d sections)\n",
		report.Duration.Round(time.Millisecond), report.SectionCount()))
}
