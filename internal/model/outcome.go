package model

import (
	"errors"
	"fmt"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/freq"
)

// Outcome classifies how processing a single line ended.
type Outcome int

const (
	// OutcomePending means the line has not been processed yet.
	OutcomePending Outcome = iota

	// OutcomeCracked means a decryption was computed.
	OutcomeCracked

	// OutcomeCached means a decryption was loaded from the history database.
	OutcomeCached

	// OutcomeInvalidHex means the line was not valid hex.
	OutcomeInvalidHex

	// OutcomeInsufficientData means the ciphertext had too few distinct
	// bytes to rank candidate keys.
	OutcomeInsufficientData

	// OutcomeFailed covers every other error, including cancellation.
	OutcomeFailed
)

// String returns the outcome name used in reports.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeCracked:
		return "cracked"
	case OutcomeCached:
		return "cached"
	case OutcomeInvalidHex:
		return "invalid hex"
	case OutcomeInsufficientData:
		return "insufficient data"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range append([]Outcome{OutcomePending}, AllOutcomes()...) {
		if o.String() == s {
			return o, nil
		}
	}
	return OutcomeFailed, fmt.Errorf("unknown outcome %q", s)
}

// Succeeded reports whether the outcome carries a decryption.
func (o Outcome) Succeeded() bool {
	return o == OutcomeCracked || o == OutcomeCached
}

// ClassifyError maps an error from the decode or crack steps to an Outcome.
func ClassifyError(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeCracked
	case errors.Is(err, codec.ErrInvalidHexDigit):
		return OutcomeInvalidHex
	case errors.Is(err, freq.ErrInsufficientHistogramData):
		return OutcomeInsufficientData
	default:
		return OutcomeFailed
	}
}

// AllOutcomes lists the terminal outcomes in report order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeCracked,
		OutcomeCached,
		OutcomeInvalidHex,
		OutcomeInsufficientData,
		OutcomeFailed,
	}
}
