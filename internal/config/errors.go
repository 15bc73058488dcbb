package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoSource is returned when neither a location nor a --hex line is given.
	ErrNoSource = errors.New("no input specified: provide a file, glob, URL, '-' or --hex")

	// ErrInvalidRankDepth is returned when the rank depth is negative.
	ErrInvalidRankDepth = errors.New("invalid rank depth: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidTop is returned when the ranked line limit is negative.
	ErrInvalidTop = errors.New("invalid top: must be non-negative")
)
