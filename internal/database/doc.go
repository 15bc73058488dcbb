// Package database stores the history of crack runs in SQLite.
//
// Every run is saved with its full JSON report plus one row per processed
// line keyed by the ciphertext fingerprint. The per-line rows double as a
// cache: a later run that sees the same ciphertext with the same rank
// depth reuses the stored decryption instead of cracking it again.
//
// The driver is modernc.org/sqlite, which needs no cgo. The database runs
// in WAL mode with a single connection since SQLite allows one writer.
package database
