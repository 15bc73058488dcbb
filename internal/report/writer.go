package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/xorcrack/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.BatchReport) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(report *model.BatchReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	printer *message.Printer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
}

// count formats n with thousands separators.
func (b baseWriter) count(n int) string {
	return b.printer.Sprintf("%d", n)
}

// DefaultTop is the default size of the ranked table.
const DefaultTop = 10

// listing holds the options shared by the text and Markdown writers.
type listing struct {
	// top limits the ranked table. 0 shows every successful line.
	top int

	// verbose lists every failed line with its error.
	verbose bool
}

// Option configures the text and Markdown writers.
type Option func(*listing)

// WithTop limits the ranked table to n lines. 0 shows all of them.
// Negative values are ignored.
func WithTop(n int) Option {
	return func(l *listing) {
		if n >= 0 {
			l.top = n
		}
	}
}

// WithVerbose lists failed lines with their errors.
func WithVerbose(verbose bool) Option {
	return func(l *listing) {
		l.verbose = verbose
	}
}

func newListing(opts []Option) listing {
	l := listing{top: DefaultTop}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// outcomeLabel returns the display name of an outcome ("Invalid Hex").
// A Caser is stateful, so each call builds its own.
func outcomeLabel(o model.Outcome) string {
	return cases.Title(language.English).String(o.String())
}

// keyLabel renders a key byte as hex plus its printable character.
func keyLabel(key byte) string {
	if key >= 0x20 && key < 0x7f {
		return fmt.Sprintf("0x%02x (%q)", key, rune(key))
	}
	return fmt.Sprintf("0x%02x", key)
}

// location renders "source:line".
func location(r *model.LineResult) string {
	return fmt.Sprintf("%s:%d", r.Source, r.Line)
}

// truncateString truncates s to maxLen bytes with an ellipsis, never
// splitting a multi-byte character.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	cut := maxLen - 3
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xc0 != 0x80
}

// quoteText renders decrypted text on a single line.
func quoteText(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(fmt.Sprintf("%q", s), `"`), `"`)
}
