package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the location that selects standard input.
const Stdin = "-"

// DefaultTimeout is the request timeout for URL sources.
const DefaultTimeout = 30 * time.Second

// maxLineSize bounds a single input line. Ciphertext lines are short; the
// limit only guards against binary garbage.
const maxLineSize = 1024 * 1024

// Line is one non-blank input line.
type Line struct {
	// Source is the location the line was read from ("-" for stdin).
	Source string `json:"source"`
	// Number is the 1-based line number in the original input.
	Number int `json:"line"`
	// Text is the line with surrounding whitespace removed.
	Text string `json:"text"`
}

// Reader reads lines from locations.
type Reader struct {
	stdin        io.Reader
	client       *http.Client
	proxyAddress string
	timeout      time.Duration
	logger       *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithStdin replaces standard input.
func WithStdin(r io.Reader) Option {
	return func(rd *Reader) {
		rd.stdin = r
	}
}

// WithProxy routes URL sources through a SOCKS5 proxy at "host:port".
func WithProxy(address string) Option {
	return func(rd *Reader) {
		rd.proxyAddress = address
	}
}

// WithTimeout sets the request timeout for URL sources.
func WithTimeout(d time.Duration) Option {
	return func(rd *Reader) {
		if d > 0 {
			rd.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client. The proxy and timeout options
// are ignored when a client is given.
func WithHTTPClient(c *http.Client) Option {
	return func(rd *Reader) {
		rd.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rd *Reader) {
		rd.logger = logger
	}
}

// NewReader creates a Reader. It fails with ErrInvalidProxyAddress when a
// proxy is configured with a malformed address.
func NewReader(opts ...Option) (*Reader, error) {
	r := &Reader{
		stdin:   os.Stdin,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	if r.client == nil {
		client, err := newHTTPClient(r.proxyAddress, r.timeout)
		if err != nil {
			return nil, err
		}
		r.client = client
	}

	return r, nil
}

// ReadLines reads every location in order and returns their non-blank
// lines in input order.
func (r *Reader) ReadLines(ctx context.Context, locations ...string) ([]Line, error) {
	var lines []Line

	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		got, err := r.readLocation(ctx, location)
		if err != nil {
			return nil, err
		}
		lines = append(lines, got...)
	}

	return lines, nil
}

// readLocation dispatches a single location to the matching reader.
func (r *Reader) readLocation(ctx context.Context, location string) ([]Line, error) {
	switch {
	case location == Stdin:
		return r.readStream(r.stdin, Stdin)
	case isURL(location):
		resp, err := r.fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return r.readStream(resp.Body, location)
	case isGlob(location):
		return r.readGlob(location)
	default:
		return r.readFile(location)
	}
}

// isGlob reports whether location contains glob meta characters.
func isGlob(location string) bool {
	return strings.ContainsAny(location, "*?[{")
}

// readGlob expands pattern and reads every matching regular file in
// lexical order.
func (r *Reader) readGlob(pattern string) ([]Line, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	slices.Sort(files)

	var lines []Line
	for _, file := range files {
		got, err := r.readFile(file)
		if err != nil {
			return nil, err
		}
		lines = append(lines, got...)
	}
	return lines, nil
}

func (r *Reader) readFile(path string) ([]Line, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return r.readStream(f, path)
}

// readStream decompresses rd when needed and splits it into lines.
func (r *Reader) readStream(rd io.Reader, source string) ([]Line, error) {
	plain, compression, err := decompress(rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if closer, ok := plain.(io.Closer); ok {
		defer closer.Close()
	}

	if compression != CompressionNone {
		r.logger.Debug("decompressing source", "source", source, "compression", compression.String())
	}

	lines, err := scanLines(plain, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	r.logger.Debug("read source", "source", source, "lines", len(lines))
	return lines, nil
}

// scanLines splits rd into trimmed non-blank lines.
func scanLines(rd io.Reader, source string) ([]Line, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []Line
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, Line{Source: source, Number: number, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// Texts returns the text of every line, in order.
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}
