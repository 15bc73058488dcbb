package model

// LineResult is the outcome of processing one input line.
type LineResult struct {
	// Source names where the line came from (file path, URL, "-", or "arg").
	Source string `json:"source"`

	// Line is the 1-based line number within Source.
	Line int `json:"line"`

	// Hex is the raw hex-encoded ciphertext as read.
	Hex string `json:"hex"`

	// Ciphertext is the decoded ciphertext. Nil until decoding succeeds.
	Ciphertext []byte `json:"-"`

	// Fingerprint identifies Ciphertext; see Fingerprint.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Decryption is the best decryption found for this line.
	Decryption *Decryption `json:"decryption,omitempty"`

	// Outcome classifies how processing ended.
	Outcome Outcome `json:"outcome"`

	// Error is the error that stopped processing, if any.
	// It is not serialized; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error.
	ErrorMessage string `json:"error,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewLineResult creates a pending result for one input line.
func NewLineResult(source string, line int, hexText string) *LineResult {
	return &LineResult{
		Source:  source,
		Line:    line,
		Hex:     hexText,
		Outcome: OutcomePending,
	}
}

// SetDecryption records a successful decryption.
func (r *LineResult) SetDecryption(d Decryption, cached bool) {
	r.Decryption = &d
	r.Error = nil
	r.ErrorMessage = ""
	r.Outcome = OutcomeCracked
	if cached {
		r.Outcome = OutcomeCached
	}
}

// SetError records a failure and classifies it.
func (r *LineResult) SetError(err error) {
	r.Error = err
	r.ErrorMessage = err.Error()
	r.Decryption = nil
	r.Outcome = ClassifyError(err)
}

// Succeeded reports whether the line has a decryption.
func (r *LineResult) Succeeded() bool {
	return r.Outcome.Succeeded() && r.Decryption != nil
}

// Failed reports whether processing the line ended in an error. It is
// derived from Outcome, which survives JSON round trips while Error does not.
func (r *LineResult) Failed() bool {
	return r.Outcome != OutcomePending && !r.Outcome.Succeeded()
}

// SelectBest returns the successful result with the highest score.
// Results are scanned in order and a later one replaces the current best
// only when its score is strictly greater, so the earliest wins ties.
// It returns nil when no result succeeded.
func SelectBest(results []*LineResult) *LineResult {
	var best *LineResult
	for _, r := range results {
		if r == nil || !r.Succeeded() {
			continue
		}
		if best == nil || r.Decryption.Better(best.Decryption) {
			best = r
		}
	}
	return best
}
