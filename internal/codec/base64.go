package codec

import "encoding/base64"

// EncodeBase64 encodes b with the standard base64 alphabet.
// A final partial group is encoded as if it were followed by zero bytes,
// so the output always has 4*ceil(len(b)/3) characters and never contains
// '=' padding.
func EncodeBase64(b []byte) string {
	if rem := len(b) % 3; rem != 0 {
		padded := make([]byte, len(b)+3-rem)
		copy(padded, b)
		b = padded
	}
	return base64.StdEncoding.EncodeToString(b)
}
