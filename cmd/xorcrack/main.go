// Package main provides the entry point for the xorcrack CLI.
//
// xorcrack recovers single-byte XOR keys by letter frequency analysis.
// It reads hex-encoded ciphertexts from arguments, files, globs, URLs or
// standard input, cracks every line and reports the most English-like
// decryption.
//
// Usage:
//
//	xorcrack crack --hex 1b37373331363f78...
//	xorcrack crack ciphertexts.txt
//	xorcrack encrypt --key ICE "some text"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
