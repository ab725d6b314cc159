package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/domaincheck/domaincheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titler capitalizes status words for the summary table.
	titler cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	for _, slot := range report.Slots {
		w.writeSection(md, slot)
	}
	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Domain Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", "`" + report.Domain.String() + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(time.Millisecond).String()},
			{"Sections", strconv.Itoa(report.SectionCount())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the per-section status table and distribution
// chart, followed by an alert reflecting the overall result.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Slots))
	var success, empty, failed int
	for _, slot := range report.Slots {
		rows = append(rows, []string{slot.Title, w.statusBadge(slot.Outcome)})
		switch {
		case slot.Outcome.IsSuccess():
			success++
		case slot.Outcome.IsEmpty():
			empty++
		default:
			failed++
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Section", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(report.Slots) > 0 {
		w.writePieChart(md, success, empty, failed)
	}

	if failed > 0 {
		md.Warningf("%d check(s) could not complete; their sections carry the error detail.", failed)
	} else {
		md.Tip("All checks completed.")
	}
	md.PlainText("")
}

// statusBadge renders an outcome status as an emoji-tagged title-case
// word for the summary table.
func (w *MarkdownWriter) statusBadge(outcome model.Outcome) string {
	word := w.titler.String(outcome.Status.String())
	switch {
	case outcome.IsSuccess():
		return "✅ " + word
	case outcome.IsEmpty():
		return "⚪ " + word
	default:
		return "❌ " + word
	}
}

// writePieChart writes a mermaid pie chart of the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, success, empty, failed int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Check Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if success > 0 {
		chart.LabelAndIntValue("Data Found", uint64(success))
	}
	if empty > 0 {
		chart.LabelAndIntValue("No Data", uint64(empty))
	}
	if failed > 0 {
		chart.LabelAndIntValue("Error", uint64(failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSection writes one probe's slot as a titled section.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, slot model.Slot) {
	md.H2(slot.Title)
	md.PlainText("")

	switch {
	case slot.Outcome.IsSuccess():
		rows := make([][]string, 0, len(slot.Outcome.Lines))
		for _, line := range slot.Outcome.Lines {
			label := line.Label
			if label == "" {
				label = "-"
			}
			rows = append(rows, []string{label, line.Value})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows:   rows,
		})
	case slot.Outcome.IsEmpty():
		md.PlainText("No data: " + slot.Outcome.Reason)
	default:
		md.Warningf("Check failed: %s", slot.Outcome.Cause)
	}
	md.PlainText("")
}

// writeFooter writes the closing rule and completion line.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.Report) {
	md.HorizontalRule()
	md.PlainText(fmt.Sprintf("Completed in %s.", report.Duration.Round(time.Millisecond)))
}
