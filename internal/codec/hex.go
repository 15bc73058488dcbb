package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidHexDigit is returned when a hex string contains a character
// outside 0-9, a-f and A-F.
var ErrInvalidHexDigit = errors.New("invalid hex digit")

// DecodeHex decodes pairs of hex digits into bytes.
// An odd trailing digit becomes the high nibble of a final byte, so "f"
// decodes to 0xf0.
func DecodeHex(s string) ([]byte, error) {
	out := make([]byte, 0, (len(s)+1)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := fromHexChar(s[i])
		if !ok {
			return nil, hexDigitError(s[i], i)
		}
		if i+1 == len(s) {
			out = append(out, hi<<4)
			break
		}
		lo, ok := fromHexChar(s[i+1])
		if !ok {
			return nil, hexDigitError(s[i+1], i+1)
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

// EncodeHex returns the lowercase hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func hexDigitError(c byte, offset int) error {
	return fmt.Errorf("%w %q at offset %d", ErrInvalidHexDigit, c, offset)
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
