package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// BatchReport collects the results of one crack run.
type BatchReport struct {
	// ID uniquely identifies the run in the history database.
	ID string `json:"id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took. Set by Finalize.
	Duration time.Duration `json:"duration"`

	// Sources are the input locations as given on the command line.
	Sources []string `json:"sources"`

	// RankDepth is the rank depth the lines were cracked with.
	RankDepth int `json:"rank_depth"`

	// Strict is true when the run stopped at the first failing line.
	Strict bool `json:"strict"`

	// Results holds one entry per input line, in input order.
	Results []*LineResult `json:"results"`

	// Best is the highest scoring result. Set by Finalize.
	Best *LineResult `json:"best,omitempty"`

	// Outcomes counts results per outcome name. Set by Finalize.
	Outcomes map[string]int `json:"outcomes"`
}

// NewBatchReport creates an empty report with a fresh ID.
func NewBatchReport(sources []string) *BatchReport {
	return &BatchReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Sources:   sources,
		Results:   make([]*LineResult, 0),
		Outcomes:  make(map[string]int),
	}
}

// Finalize selects the best result, counts outcomes and records the
// elapsed time. It may be called more than once.
func (b *BatchReport) Finalize() {
	b.Best = SelectBest(b.Results)
	b.Duration = time.Since(b.StartedAt)

	b.Outcomes = make(map[string]int)
	for _, r := range b.Results {
		if r == nil {
			continue
		}
		b.Outcomes[r.Outcome.String()]++
	}
}

// Succeeded returns the number of lines that produced a decryption.
func (b *BatchReport) Succeeded() int {
	var n int
	for _, r := range b.Results {
		if r != nil && r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of lines that ended in an error.
func (b *BatchReport) Failed() int {
	var n int
	for _, r := range b.Results {
		if r != nil && r.Failed() {
			n++
		}
	}
	return n
}

// Ranked returns up to n successful results ordered by score, highest
// first. Equal scores keep input order. A non-positive n returns them all.
func (b *BatchReport) Ranked(n int) []*LineResult {
	ranked := make([]*LineResult, 0, len(b.Results))
	for _, r := range b.Results {
		if r != nil && r.Succeeded() {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Decryption.Score > ranked[j].Decryption.Score
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
