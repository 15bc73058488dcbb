// Package model defines the data structures shared by the cracker, the
// batch pipeline, the report writers and the history database.
//
// This package contains the following main types:
//   - Decryption: the best single-byte XOR decryption of one ciphertext
//   - LineResult: the outcome of processing one hex-encoded input line
//   - BatchReport: every line result of a run plus the overall winner
//
// The models are serializable to JSON for report output and database
// storage.
package model
