package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/xorcrack/internal/model"
)

// ruleWidth is the width of the section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for the terminal.
type SimpleWriter struct {
	baseWriter
	listing
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...Option) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
		listing:    newListing(opts),
	}
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.BatchReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeBest(&sb, report)
	w.writeRanked(&sb, report)
	w.writeFailures(&sb, report)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the run information and outcome counts.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.BatchReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                          XORCRACK REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Run ID:     %s\n", report.ID)
	fmt.Fprintf(sb, "Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Duration:   %s\n", report.Duration.Round(time.Microsecond))
	fmt.Fprintf(sb, "Sources:    %s\n", strings.Join(report.Sources, ", "))
	fmt.Fprintf(sb, "Rank depth: %d\n", report.RankDepth)
	fmt.Fprintf(sb, "Lines:      %s\n", w.count(len(report.Results)))

	for _, o := range model.AllOutcomes() {
		n := report.Outcomes[o.String()]
		if n == 0 {
			continue
		}
		fmt.Fprintf(sb, "  %-18s %s\n", outcomeLabel(o)+":", w.count(n))
	}
	if report.Strict && report.Failed() > 0 {
		sb.WriteString("Status:     STOPPED at the first failing line (strict)\n")
	}
	sb.WriteString("\n")
}

// writeBest writes the winning decryption.
func (w *SimpleWriter) writeBest(sb *strings.Builder, report *model.BatchReport) {
	writeSection(sb, "BEST DECRYPTION")

	best := report.Best
	if best == nil {
		sb.WriteString("  No line could be decrypted\n\n")
		return
	}

	d := best.Decryption
	fmt.Fprintf(sb, "  Location: %s\n", location(best))
	fmt.Fprintf(sb, "  Key:      %s\n", keyLabel(d.Key))
	fmt.Fprintf(sb, "  Score:    %d\n", d.Score)
	if best.Outcome == model.OutcomeCached {
		sb.WriteString("  Cached:   yes\n")
	}
	fmt.Fprintf(sb, "  Text:     \"%s\"\n\n", quoteText(d.Text))
}

// writeRanked writes the highest scoring lines.
func (w *SimpleWriter) writeRanked(sb *strings.Builder, report *model.BatchReport) {
	ranked := report.Ranked(w.top)
	if len(ranked) < 2 {
		return
	}

	writeSection(sb, fmt.Sprintf("TOP %d LINES", len(ranked)))

	fmt.Fprintf(sb, "  %3s  %6s  %-4s  %-20s  %s\n", "#", "SCORE", "KEY", "LOCATION", "TEXT")
	for i, r := range ranked {
		fmt.Fprintf(sb, "  %3d  %6d  0x%02x  %-20s  %s\n",
			i+1,
			r.Decryption.Score,
			r.Decryption.Key,
			truncateString(location(r), 20),
			truncateString(quoteText(r.Decryption.Text), 40),
		)
	}
	sb.WriteString("\n")
}

// writeFailures lists failed lines in verbose mode, or a hint otherwise.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.BatchReport) {
	failed := report.Failed()
	if failed == 0 {
		return
	}

	writeSection(sb, "FAILED LINES")

	if !w.verbose {
		fmt.Fprintf(sb, "  %s line(s) failed; rerun with --verbose to list them\n\n", w.count(failed))
		return
	}

	for _, r := range report.Results {
		if r == nil || !r.Failed() {
			continue
		}
		fmt.Fprintf(sb, "  [%s] %s: %s\n", outcomeLabel(r.Outcome), location(r), r.ErrorMessage)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
