package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the hex SHA3-256 digest of a ciphertext.
// It identifies a ciphertext in the history database independently of the
// file or line it came from.
func Fingerprint(cipher []byte) string {
	sum := sha3.Sum256(cipher)
	return hex.EncodeToString(sum[:])
}
