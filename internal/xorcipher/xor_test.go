package xorcipher

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("failed to decode hex %q: %v", s, err)
	}
	return b
}

// TestApply tests repeating-key XOR.
func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("xors equal length buffers", func(t *testing.T) {
		t.Parallel()

		input := mustDecodeHex(t, "1c0111001f010100061a024b53535009181c")
		key := mustDecodeHex(t, "686974207468652062756c6c277320657965")
		expected := mustDecodeHex(t, "746865206b696420646f6e277420706c6179")

		got, err := Apply(input, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, expected) {
			t.Errorf("Apply() = %x, expected %x", got, expected)
		}
	})

	t.Run("cycles a short key over the input", func(t *testing.T) {
		t.Parallel()

		input := []byte("Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal")
		expected := mustDecodeHex(t, "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f")

		got, err := Apply(input, []byte("ICE"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(expected) {
			t.Fatalf("expected length %d, got %d", len(expected), len(got))
		}
		if !bytes.Equal(got, expected) {
			t.Errorf("Apply() = %x, expected %x", got, expected)
		}
	})

	t.Run("empty key returns ErrInvalidKey", func(t *testing.T) {
		t.Parallel()

		_, err := Apply([]byte("abc"), nil)
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("expected ErrInvalidKey, got %v", err)
		}
	})

	t.Run("empty plaintext returns empty output", func(t *testing.T) {
		t.Parallel()

		got, err := Apply(nil, []byte{0x42})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty output, got %x", got)
		}
	})

	t.Run("does not modify its inputs", func(t *testing.T) {
		t.Parallel()

		input := []byte("hello")
		key := []byte("k")
		if _, err := Apply(input, key); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(input) != "hello" || string(key) != "k" {
			t.Errorf("inputs were modified: %q %q", input, key)
		}
	})
}

// TestApplyInvolution verifies that applying the same key twice is a no-op.
func TestApplyInvolution(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		{},
		{0x00},
		[]byte("Cooking MC's like a pound of bacon"),
		{0xff, 0x00, 0x7f, 0x80, 0x01},
	}
	keys := [][]byte{
		{0x00},
		{0x58},
		[]byte("ICE"),
		[]byte("a much longer key than the plaintext itself"),
	}

	for _, input := range inputs {
		for _, key := range keys {
			once, err := Apply(input, key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			twice, err := Apply(once, key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(twice, input) {
				t.Errorf("Apply(Apply(%x, %x)) = %x, expected original", input, key, twice)
			}
		}
	}
}

// TestApplyByte tests the single-byte variant against Apply.
func TestApplyByte(t *testing.T) {
	t.Parallel()

	input := []byte("single byte xor")
	for _, key := range []byte{0x00, 0x01, 0x58, 0xff} {
		expected, err := Apply(input, []byte{key})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ApplyByte(input, key); !bytes.Equal(got, expected) {
			t.Errorf("ApplyByte(%#x) = %x, expected %x", key, got, expected)
		}
	}
}
