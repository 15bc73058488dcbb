package freq

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistogramData is returned when a histogram does not have
// more distinct byte values than the number of ranked entries requested.
var ErrInsufficientHistogramData = errors.New("insufficient histogram data")

// CandidateKey is a key guess derived from one ranked histogram entry.
type CandidateKey struct {
	// Key is the guessed single-byte key: letter XOR Source.
	Key byte

	// Source is the ciphertext byte assumed to encrypt the letter.
	Source byte

	// Count is the histogram count of Source.
	Count int
}

// GenerateCandidates proposes single-byte keys by pairing every assumed
// letter with each of the rankDepth+1 most frequent histogram entries.
//
// The output is letter-major: all candidates for letters[0] come first,
// in rank order, then those for letters[1], and so on. Callers rely on this
// order for first-wins tie-breaking.
//
// The histogram must hold more than rankDepth+1 distinct byte values,
// otherwise ErrInsufficientHistogramData is returned.
func GenerateCandidates(letters []byte, h Histogram, rankDepth int) ([]CandidateKey, error) {
	if rankDepth < 0 {
		return nil, fmt.Errorf("%w: negative rank depth %d", ErrInsufficientHistogramData, rankDepth)
	}
	if len(h) <= rankDepth+1 {
		return nil, fmt.Errorf("%w: cannot take %d ranked entries from a histogram with %d distinct bytes",
			ErrInsufficientHistogramData, rankDepth+1, len(h))
	}

	top := h.Ranked()[:rankDepth+1]

	candidates := make([]CandidateKey, 0, len(letters)*len(top))
	for _, letter := range letters {
		for _, entry := range top {
			candidates = append(candidates, CandidateKey{
				Key:    letter ^ entry.Byte,
				Source: entry.Byte,
				Count:  entry.Count,
			})
		}
	}
	return candidates, nil
}
