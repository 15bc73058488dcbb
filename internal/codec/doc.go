// Package codec converts between the text encodings used around the
// cracker: hex input lines, base64 output, and raw bytes rendered as text.
package codec
