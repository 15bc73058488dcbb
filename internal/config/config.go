package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultRankDepth uses the two most frequent ciphertext bytes as key
	// sources, which is what the single-byte cracker was tuned for.
	DefaultRankDepth = 1

	// DefaultConcurrency is the number of lines cracked in parallel.
	DefaultConcurrency = 8

	// DefaultFetchTimeout bounds each HTTP request for URL sources.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultTop is the number of ranked lines shown in reports.
	DefaultTop = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "xorcrack"
)

// Config holds the options of a crack run. It is filled from CLI flags and
// the config file, then passed down explicitly.
type Config struct {
	// RankDepth selects how many ranked histogram entries beyond the first
	// are used to guess keys.
	RankDepth int

	// Concurrency is the number of lines processed at once.
	Concurrency int

	// FetchTimeout is the request timeout for URL sources.
	FetchTimeout time.Duration

	// ProxyAddress routes URL sources through a SOCKS5 proxy ("host:port").
	// Empty means direct connections.
	ProxyAddress string

	// Strict stops the run at the first failing line.
	Strict bool

	// Top limits the ranked table of the report. 0 shows every line.
	Top int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Sources are line locations: "-", files, globs or URLs.
	Sources []string

	// HexLines are ciphertexts given directly on the command line.
	HexLines []string

	// DBDir is the directory of the history database.
	DBDir string

	// SaveToDB stores the run in the history database and enables the
	// cache lookup of earlier decryptions.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		RankDepth:    DefaultRankDepth,
		Concurrency:  DefaultConcurrency,
		FetchTimeout: DefaultFetchTimeout,
		Top:          DefaultTop,
		DBDir:        XDGDataDir(),
		SaveToDB:     true,
	}
}

// XDGDataDir returns the XDG data directory for xorcrack, where the history
// database lives (~/.local/share/xorcrack on Linux).
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for xorcrack
// (~/.config/xorcrack on Linux).
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 && len(c.HexLines) == 0 {
		return ErrNoSource
	}

	if c.RankDepth < 0 {
		return ErrInvalidRankDepth
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Top < 0 {
		return ErrInvalidTop
	}

	return nil
}
