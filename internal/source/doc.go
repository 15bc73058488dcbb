// Package source reads candidate ciphertext lines from the places a user
// can point xorcrack at: standard input, files, glob patterns and HTTP(S)
// URLs.
//
// Compressed inputs (gzip, bzip2, xz) are detected by their magic bytes
// and decompressed transparently. Blank lines are dropped, but every
// returned Line keeps the line number it had in the original input so
// that reports can point back at it.
package source
