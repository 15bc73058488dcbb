package source

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Compression is the compression format of an input stream.
type Compression int

const (
	// CompressionNone means the stream is read as is.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream.
	CompressionGzip
	// CompressionBzip2 is a bzip2 stream.
	CompressionBzip2
	// CompressionXZ is an xz stream.
	CompressionXZ
)

// String returns the name of the compression format.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// magicLen is the longest signature we look for (xz).
const magicLen = 6

// DetectCompression reports the compression format of a stream from its
// leading bytes.
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return CompressionBzip2
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// decompress wraps r in a decompressor chosen by peeking at its first
// bytes. The returned Compression tells the caller what was detected.
func decompress(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReader(r)

	// Peek returns fewer bytes and io.EOF for short inputs, which simply
	// means there is no signature to match.
	header, err := br.Peek(magicLen)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, fmt.Errorf("failed to read header: %w", err)
	}

	compression := DetectCompression(header)
	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, compression, nil
	case CompressionBzip2:
		return bzip2.NewReader(br), compression, nil
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xr, compression, nil
	default:
		return br, compression, nil
	}
}
