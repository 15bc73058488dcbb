package xorcipher

import "errors"

// ErrInvalidKey is returned when Apply is called with an empty key.
var ErrInvalidKey = errors.New("invalid key: must not be empty")

// Apply XORs plaintext with key, cycling the key to cover the whole input.
// The result is a new slice of len(plaintext); neither argument is modified.
func Apply(plaintext, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}

	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

// ApplyByte XORs every byte of plaintext with key.
func ApplyByte(plaintext []byte, key byte) []byte {
	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ key
	}
	return out
}
