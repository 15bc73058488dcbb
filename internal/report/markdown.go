package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/xorcrack/internal/model"
)

// MarkdownWriter outputs reports in GitHub flavored Markdown, including a
// mermaid pie chart of line outcomes.
type MarkdownWriter struct {
	baseWriter
	listing
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		listing:    newListing(opts),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.BatchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeBest(md, report)
	w.writeOutcomes(md, report)
	w.writeRanked(md, report)
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.BatchReport) {
	md.H1("xorcrack Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.ID + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(time.Microsecond).String()},
			{"Sources", escapeCell(strings.Join(report.Sources, ", "))},
			{"Rank Depth", strconv.Itoa(report.RankDepth)},
			{"Lines", w.count(len(report.Results))},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")
}

func statusText(report *model.BatchReport) string {
	switch {
	case report.Best == nil:
		return "❌ No decryption"
	case report.Strict && report.Failed() > 0:
		return "⚠️ Stopped at first failure (strict)"
	case report.Failed() > 0:
		return "⚠️ Complete with failures"
	default:
		return "✅ Complete"
	}
}

// writeBest writes the winning decryption and an alert describing the run.
func (w *MarkdownWriter) writeBest(md *markdown.Markdown, report *model.BatchReport) {
	md.H2("Best Decryption")
	md.PlainText("")

	best := report.Best
	if best == nil {
		md.Cautionf("None of the %s line(s) could be decrypted.", w.count(len(report.Results)))
		md.PlainText("")
		return
	}

	d := best.Decryption
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Location", escapeCell(location(best))},
			{"Key", "`" + keyLabel(d.Key) + "`"},
			{"Score", strconv.Itoa(d.Score)},
			{"Outcome", outcomeLabel(best.Outcome)},
			{"Text", "`" + escapeCell(quoteText(d.Text)) + "`"},
		},
	})
	md.PlainText("")

	switch failed := report.Failed(); {
	case failed > 0:
		md.Warningf("%s line(s) failed and were left out of the ranking.", w.count(failed))
	case !d.ValidUTF8:
		md.Note("The best scoring key does not produce valid UTF-8.")
	default:
		md.Tip("Every line was decrypted.")
	}
	md.PlainText("")
}

// writeOutcomes writes the outcome counts and their pie chart.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown, report *model.BatchReport) {
	md.H2("Outcomes")
	md.PlainText("")

	rows := make([][]string, 0, len(model.AllOutcomes()))
	for _, o := range model.AllOutcomes() {
		rows = append(rows, []string{outcomeLabel(o), w.count(report.Outcomes[o.String()])})
	}
	rows = append(rows, []string{"**Total**", "**" + w.count(len(report.Results)) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Lines"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(report.Results) > 0 {
		w.writePieChart(md, report)
	}
}

// writePieChart writes a mermaid pie chart for the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.BatchReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Line Outcomes"),
		piechart.WithShowData(true),
	)

	for _, o := range model.AllOutcomes() {
		if n := report.Outcomes[o.String()]; n > 0 {
			chart.LabelAndIntValue(outcomeLabel(o), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeRanked writes the highest scoring lines.
func (w *MarkdownWriter) writeRanked(md *markdown.Markdown, report *model.BatchReport) {
	ranked := report.Ranked(w.top)
	if len(ranked) < 2 {
		return
	}

	md.H2(fmt.Sprintf("Top %d Lines", len(ranked)))
	md.PlainText("")

	rows := make([][]string, len(ranked))
	for i, r := range ranked {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Decryption.Score),
			fmt.Sprintf("`0x%02x`", r.Decryption.Key),
			escapeCell(location(r)),
			"`" + escapeCell(truncateString(quoteText(r.Decryption.Text), 60)) + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Score", "Key", "Location", "Text"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes a collapsible section per failed line.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.BatchReport) {
	if report.Failed() == 0 {
		return
	}

	md.H2("Failed Lines")
	md.PlainText("")

	if !w.verbose {
		md.PlainTextf("%s line(s) failed. Rerun with `--verbose` to list them.", w.count(report.Failed()))
		md.PlainText("")
		return
	}

	items := make([]string, 0, report.Failed())
	for _, r := range report.Results {
		if r == nil || !r.Failed() {
			continue
		}
		items = append(items, fmt.Sprintf("%s (%s): %s", location(r), outcomeLabel(r.Outcome), r.ErrorMessage))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [xorcrack](https://github.com/nao1215/xorcrack)*")
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
