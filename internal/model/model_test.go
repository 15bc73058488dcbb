package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/freq"
)

func crackedLine(line, score int, text string) *LineResult {
	r := NewLineResult("test.txt", line, "00")
	r.SetDecryption(Decryption{Text: text, Score: score, ValidUTF8: true}, false)
	return r
}

func failedLine(line int, err error) *LineResult {
	r := NewLineResult("test.txt", line, "zz")
	r.SetError(err)
	return r
}

// TestSelectBest tests the strict greater-than selection rule.
func TestSelectBest(t *testing.T) {
	t.Parallel()

	t.Run("returns the highest score", func(t *testing.T) {
		t.Parallel()

		results := []*LineResult{
			crackedLine(1, 10, "a"),
			crackedLine(2, 30, "b"),
			crackedLine(3, 20, "c"),
		}
		if got := SelectBest(results); got != results[1] {
			t.Errorf("expected line 2, got %+v", got)
		}
	})

	t.Run("earliest result wins ties", func(t *testing.T) {
		t.Parallel()

		results := []*LineResult{
			crackedLine(1, 5, "a"),
			crackedLine(2, 40, "first"),
			crackedLine(3, 40, "second"),
		}
		if got := SelectBest(results); got.Decryption.Text != "first" {
			t.Errorf("expected the first of the tied results, got %q", got.Decryption.Text)
		}
	})

	t.Run("skips failed lines", func(t *testing.T) {
		t.Parallel()

		results := []*LineResult{
			failedLine(1, codec.ErrInvalidHexDigit),
			crackedLine(2, -100, "noise"),
			nil,
		}
		if got := SelectBest(results); got != results[1] {
			t.Errorf("expected line 2, got %+v", got)
		}
	})

	t.Run("returns nil when nothing succeeded", func(t *testing.T) {
		t.Parallel()

		if got := SelectBest([]*LineResult{failedLine(1, errors.New("boom"))}); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
		if got := SelectBest(nil); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

// TestClassifyError tests error classification.
func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected Outcome
	}{
		{name: "nil is cracked", err: nil, expected: OutcomeCracked},
		{name: "wrapped hex error", err: fmt.Errorf("line 3: %w", codec.ErrInvalidHexDigit), expected: OutcomeInvalidHex},
		{name: "wrapped histogram error", err: fmt.Errorf("crack: %w", freq.ErrInsufficientHistogramData), expected: OutcomeInsufficientData},
		{name: "anything else failed", err: errors.New("disk on fire"), expected: OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyError(tt.err); got != tt.expected {
				t.Errorf("ClassifyError() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// TestOutcomeText tests outcome text round trips.
func TestOutcomeText(t *testing.T) {
	t.Parallel()

	t.Run("every outcome parses back", func(t *testing.T) {
		t.Parallel()

		for _, o := range append([]Outcome{OutcomePending}, AllOutcomes()...) {
			parsed, err := ParseOutcome(o.String())
			if err != nil {
				t.Fatalf("ParseOutcome(%q): %v", o.String(), err)
			}
			if parsed != o {
				t.Errorf("ParseOutcome(%q) = %v, expected %v", o.String(), parsed, o)
			}
		}
	})

	t.Run("unknown text returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseOutcome("exploded"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("line result keeps its outcome through JSON", func(t *testing.T) {
		t.Parallel()

		r := failedLine(7, freq.ErrInsufficientHistogramData)
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		var decoded LineResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if decoded.Outcome != OutcomeInsufficientData {
			t.Errorf("expected %v, got %v", OutcomeInsufficientData, decoded.Outcome)
		}
		if decoded.ErrorMessage == "" {
			t.Error("expected error message to survive")
		}
	})
}

// TestLineResult tests result state transitions.
func TestLineResult(t *testing.T) {
	t.Parallel()

	t.Run("new result is pending", func(t *testing.T) {
		t.Parallel()

		r := NewLineResult("-", 1, "abcd")
		if r.Outcome != OutcomePending || r.Succeeded() {
			t.Errorf("expected pending result, got %v", r.Outcome)
		}
	})

	t.Run("cached decryption succeeds", func(t *testing.T) {
		t.Parallel()

		r := NewLineResult("-", 1, "abcd")
		r.SetDecryption(Decryption{Score: 3}, true)
		if r.Outcome != OutcomeCached || !r.Succeeded() {
			t.Errorf("expected cached success, got %v", r.Outcome)
		}
	})

	t.Run("error clears a previous decryption", func(t *testing.T) {
		t.Parallel()

		r := crackedLine(1, 10, "x")
		r.SetError(errors.New("late failure"))
		if r.Decryption != nil || r.Succeeded() {
			t.Error("expected decryption to be cleared")
		}
	})
}

// TestBatchReport tests report aggregation.
func TestBatchReport(t *testing.T) {
	t.Parallel()

	newReport := func() *BatchReport {
		b := NewBatchReport([]string{"4.txt"})
		b.Results = []*LineResult{
			crackedLine(1, 10, "low"),
			failedLine(2, codec.ErrInvalidHexDigit),
			crackedLine(3, 50, "high"),
			crackedLine(4, 50, "high too"),
			failedLine(5, freq.ErrInsufficientHistogramData),
		}
		return b
	}

	t.Run("has an id", func(t *testing.T) {
		t.Parallel()

		if NewBatchReport(nil).ID == "" {
			t.Error("expected non-empty id")
		}
		if NewBatchReport(nil).ID == NewBatchReport(nil).ID {
			t.Error("expected unique ids")
		}
	})

	t.Run("finalize selects best and counts outcomes", func(t *testing.T) {
		t.Parallel()

		b := newReport()
		b.Finalize()

		if b.Best == nil || b.Best.Line != 3 {
			t.Fatalf("expected line 3 as best, got %+v", b.Best)
		}
		if b.Outcomes["cracked"] != 3 {
			t.Errorf("expected 3 cracked, got %d", b.Outcomes["cracked"])
		}
		if b.Outcomes["invalid hex"] != 1 {
			t.Errorf("expected 1 invalid hex, got %d", b.Outcomes["invalid hex"])
		}
		if b.Outcomes["insufficient data"] != 1 {
			t.Errorf("expected 1 insufficient data, got %d", b.Outcomes["insufficient data"])
		}
	})

	t.Run("counts successes and failures", func(t *testing.T) {
		t.Parallel()

		b := newReport()
		if b.Succeeded() != 3 {
			t.Errorf("expected 3 succeeded, got %d", b.Succeeded())
		}
		if b.Failed() != 2 {
			t.Errorf("expected 2 failed, got %d", b.Failed())
		}
	})

	t.Run("failures survive a JSON round trip", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(newReport())
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var decoded BatchReport
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if decoded.Failed() != 2 {
			t.Errorf("expected 2 failed, got %d", decoded.Failed())
		}
		if !decoded.Results[1].Failed() || decoded.Results[1].Error != nil {
			t.Errorf("expected line 2 failed without an error value, got %+v", decoded.Results[1])
		}
		if decoded.Results[0].Failed() {
			t.Error("expected line 1 not to be failed")
		}
	})

	t.Run("ranked orders by score and keeps ties stable", func(t *testing.T) {
		t.Parallel()

		ranked := newReport().Ranked(2)
		if len(ranked) != 2 {
			t.Fatalf("expected 2 results, got %d", len(ranked))
		}
		if ranked[0].Line != 3 || ranked[1].Line != 4 {
			t.Errorf("expected lines 3 then 4, got %d then %d", ranked[0].Line, ranked[1].Line)
		}
	})

	t.Run("ranked with zero limit returns every success", func(t *testing.T) {
		t.Parallel()

		if got := len(newReport().Ranked(0)); got != 3 {
			t.Errorf("expected 3 results, got %d", got)
		}
	})
}

// TestFingerprint tests ciphertext fingerprints.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint([]byte("abc"))
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
	if a != Fingerprint([]byte("abc")) {
		t.Error("expected equal inputs to give equal fingerprints")
	}
	if a == Fingerprint([]byte("abd")) {
		t.Error("expected different inputs to give different fingerprints")
	}
	// SHA3-256("abc") from FIPS 202 examples.
	if a != "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532" {
		t.Errorf("unexpected digest %s", a)
	}
}
