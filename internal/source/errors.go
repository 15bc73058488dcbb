package source

import "errors"

var (
	// ErrNoMatch is returned when a glob pattern matches no regular file.
	ErrNoMatch = errors.New("pattern matched no files")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is
	// not in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrUnexpectedStatus is returned when a URL source answers with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
