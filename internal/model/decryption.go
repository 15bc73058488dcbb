package model

// Decryption is a scored candidate decryption of one ciphertext.
type Decryption struct {
	// Text is the decrypted plaintext, or "invalid utf-8" when the
	// decrypted bytes are not valid UTF-8.
	Text string `json:"text"`

	// Score is the English-likeness score of the decrypted bytes.
	Score int `json:"score"`

	// Key is the single-byte key that produced Text.
	Key byte `json:"key"`

	// SourceByte is the ciphertext byte that was assumed to encrypt a
	// common letter when Key was guessed.
	SourceByte byte `json:"source_byte"`

	// SourceCount is the histogram count of SourceByte.
	SourceCount int `json:"source_count"`

	// ValidUTF8 is false when Text holds the invalid utf-8 sentinel.
	ValidUTF8 bool `json:"valid_utf8"`
}

// Better reports whether d strictly outscores other.
// A nil other is always beaten.
func (d *Decryption) Better(other *Decryption) bool {
	if other == nil {
		return true
	}
	return d.Score > other.Score
}
