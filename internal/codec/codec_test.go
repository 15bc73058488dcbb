package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestDecodeHex tests hex decoding.
func TestDecodeHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{name: "single byte", input: "0f", expected: []byte{15}},
		{name: "mixed digits", input: "3e", expected: []byte{62}},
		{name: "max byte", input: "ff", expected: []byte{255}},
		{name: "decimal digits", input: "11", expected: []byte{17}},
		{name: "two bytes", input: "ff3e", expected: []byte{255, 62}},
		{name: "repeated bytes", input: "ff3eff3eff3e", expected: []byte{255, 62, 255, 62, 255, 62}},
		{name: "uppercase digits", input: "FF3E", expected: []byte{255, 62}},
		{name: "odd trailing digit becomes high nibble", input: "ff3", expected: []byte{255, 0x30}},
		{name: "empty string", input: "", expected: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeHex(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("DecodeHex(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}

	t.Run("non-hex character returns ErrInvalidHexDigit", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"zz", "0g", "12 4", "abcx", "g"} {
			_, err := DecodeHex(input)
			if !errors.Is(err, ErrInvalidHexDigit) {
				t.Errorf("DecodeHex(%q): expected ErrInvalidHexDigit, got %v", input, err)
			}
		}
	})

	t.Run("error reports the offending offset", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeHex("00ak")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "offset 3") {
			t.Errorf("expected offset in error, got %q", err.Error())
		}
	})
}

// TestEncodeHex tests hex encoding.
func TestEncodeHex(t *testing.T) {
	t.Parallel()

	if got := EncodeHex([]byte{0x0b, 0x36, 0xff}); got != "0b36ff" {
		t.Errorf("EncodeHex() = %q, expected %q", got, "0b36ff")
	}
}

// TestEncodeBase64 tests base64 encoding with zero-padded final groups.
func TestEncodeBase64(t *testing.T) {
	t.Parallel()

	t.Run("encodes the reference hex string", func(t *testing.T) {
		t.Parallel()

		input, err := DecodeHex("49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t"

		if got := EncodeBase64(input); got != expected {
			t.Errorf("EncodeBase64() = %q, expected %q", got, expected)
		}
	})

	t.Run("zero-pads the final partial group", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input    string
			expected string
		}{
			{input: "", expected: ""},
			{input: "M", expected: "TQAA"},
			{input: "Ma", expected: "TWEA"},
			{input: "Man", expected: "TWFu"},
		}

		for _, tt := range tests {
			if got := EncodeBase64([]byte(tt.input)); got != tt.expected {
				t.Errorf("EncodeBase64(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		}
	})

	t.Run("does not modify the input", func(t *testing.T) {
		t.Parallel()

		input := []byte("Ma")
		_ = EncodeBase64(input)
		if len(input) != 2 || string(input) != "Ma" {
			t.Errorf("input was modified: %q", input)
		}
	})
}

// TestBytesToText tests the sentinel substitution for invalid UTF-8.
func TestBytesToText(t *testing.T) {
	t.Parallel()

	t.Run("valid utf-8 is returned as is", func(t *testing.T) {
		t.Parallel()

		if got := BytesToText([]byte("Now that the party is jumping\n")); got != "Now that the party is jumping\n" {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("invalid utf-8 returns the sentinel", func(t *testing.T) {
		t.Parallel()

		if got := BytesToText([]byte{0xff, 0xfe, 0x41}); got != InvalidUTF8 {
			t.Errorf("BytesToText() = %q, expected %q", got, InvalidUTF8)
		}
	})

	t.Run("round trips with TextToBytes", func(t *testing.T) {
		t.Parallel()

		s := "Cooking MC's like a pound of bacon"
		if got := BytesToText(TextToBytes(s)); got != s {
			t.Errorf("round trip = %q, expected %q", got, s)
		}
	})
}
