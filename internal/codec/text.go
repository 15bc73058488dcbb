package codec

import "unicode/utf8"

// InvalidUTF8 is substituted for byte sequences that are not valid UTF-8.
const InvalidUTF8 = "invalid utf-8"

// TextToBytes returns the bytes of s unchanged.
func TextToBytes(s string) []byte {
	return []byte(s)
}

// BytesToText renders b as a string, or InvalidUTF8 when b is not valid
// UTF-8. It never fails, so garbage decryptions can still be displayed.
func BytesToText(b []byte) string {
	if !utf8.Valid(b) {
		return InvalidUTF8
	}
	return string(b)
}
