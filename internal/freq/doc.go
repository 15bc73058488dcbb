// Package freq holds the English letter-frequency heuristics used to break
// single-byte XOR.
//
// It provides three pieces:
//   - Histogram: byte value occurrence counts of a ciphertext
//   - GenerateCandidates: key guesses formed by assuming that the most
//     frequent ciphertext bytes are encryptions of common English letters
//   - Score: a crude English-likeness score of a decrypted buffer
//
// The letter and score tables are fixed for the life of the process and are
// only ever read, so every function in this package is safe for concurrent
// use.
package freq
