// Package log builds slog loggers that never write recovered plaintexts,
// XOR keys or credentials.
//
// SecureHandler wraps any slog.Handler and replaces the value of sensitive
// attributes with MaskValue. An attribute is sensitive when its key is
// known (key, text, plaintext, password, cookie, ...), contains a
// sensitive keyword, or its string value looks like a credential (bearer
// token, JWT, user:password@ in a URL).
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("cracked ciphertext", "score", 42, "key", 0x58) // key=***REDACTED***
package log
