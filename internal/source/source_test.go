package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func newTestReader(t *testing.T, opts ...Option) *Reader {
	t.Helper()
	r, err := NewReader(opts...)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	return r
}

func assertTexts(t *testing.T, lines []Line, want ...string) {
	t.Helper()
	got := Texts(lines)
	if len(got) != len(want) {
		t.Fatalf("expected %d lines %q, got %d lines %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestReadLines tests reading lines from the supported locations.
func TestReadLines(t *testing.T) {
	t.Parallel()

	t.Run("reads stdin and keeps original line numbers", func(t *testing.T) {
		t.Parallel()

		r := newTestReader(t, WithStdin(strings.NewReader("aa\n\n  bb  \r\n\t\ncc")))

		lines, err := r.ReadLines(context.Background(), Stdin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertTexts(t, lines, "aa", "bb", "cc")
		wantNumbers := []int{1, 3, 5}
		for i, l := range lines {
			if l.Number != wantNumbers[i] {
				t.Errorf("line %q: expected number %d, got %d", l.Text, wantNumbers[i], l.Number)
			}
			if l.Source != Stdin {
				t.Errorf("expected source %q, got %q", Stdin, l.Source)
			}
		}
	})

	t.Run("reads plain files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "lines.txt")
		writeFile(t, path, []byte("0102\n0304\n"))

		lines, err := newTestReader(t).ReadLines(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "0102", "0304")
		if lines[0].Source != path {
			t.Errorf("expected source %q, got %q", path, lines[0].Source)
		}
	})

	t.Run("decompresses gzip files", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write([]byte("aabb\nccdd\n")); err != nil {
			t.Fatalf("failed to write gzip: %v", err)
		}
		if err := gz.Close(); err != nil {
			t.Fatalf("failed to close gzip: %v", err)
		}

		path := filepath.Join(t.TempDir(), "lines.gz")
		writeFile(t, path, buf.Bytes())

		lines, err := newTestReader(t).ReadLines(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "aabb", "ccdd")
	})

	t.Run("decompresses xz files", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			t.Fatalf("failed to create xz writer: %v", err)
		}
		if _, err := w.Write([]byte("eeff\n")); err != nil {
			t.Fatalf("failed to write xz: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("failed to close xz: %v", err)
		}

		path := filepath.Join(t.TempDir(), "lines.xz")
		writeFile(t, path, buf.Bytes())

		lines, err := newTestReader(t).ReadLines(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "eeff")
	})

	t.Run("expands glob patterns in lexical order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.txt"), []byte("bb\n"))
		writeFile(t, filepath.Join(dir, "a.txt"), []byte("aa\n"))
		writeFile(t, filepath.Join(dir, "nested", "c.txt"), []byte("cc\n"))
		writeFile(t, filepath.Join(dir, "skip.log"), []byte("zz\n"))

		lines, err := newTestReader(t).ReadLines(context.Background(), filepath.Join(dir, "**", "*.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "aa", "bb", "cc")
	})

	t.Run("glob without matches returns ErrNoMatch", func(t *testing.T) {
		t.Parallel()

		_, err := newTestReader(t).ReadLines(context.Background(), filepath.Join(t.TempDir(), "*.hex"))
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("expected ErrNoMatch, got %v", err)
		}
	})

	t.Run("missing file returns os.ErrNotExist", func(t *testing.T) {
		t.Parallel()

		_, err := newTestReader(t).ReadLines(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("fetches URLs", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("1234\n5678\n"))
		}))
		t.Cleanup(server.Close)

		lines, err := newTestReader(t).ReadLines(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "1234", "5678")
		if lines[1].Source != server.URL {
			t.Errorf("expected source %q, got %q", server.URL, lines[1].Source)
		}
	})

	t.Run("non-2xx status returns ErrUnexpectedStatus", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		t.Cleanup(server.Close)

		_, err := newTestReader(t).ReadLines(context.Background(), server.URL)
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("expected ErrUnexpectedStatus, got %v", err)
		}
	})

	t.Run("concatenates locations in order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, path, []byte("ff\n"))

		r := newTestReader(t, WithStdin(strings.NewReader("ee\n")))
		lines, err := r.ReadLines(context.Background(), Stdin, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertTexts(t, lines, "ee", "ff")
	})

	t.Run("cancelled context stops reading", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestReader(t, WithStdin(strings.NewReader("aa\n"))).ReadLines(ctx, Stdin)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestNewReader tests proxy validation.
func TestNewReader(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid proxy address", func(t *testing.T) {
		t.Parallel()

		if _, err := NewReader(WithProxy("127.0.0.1:9050")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects malformed proxy addresses", func(t *testing.T) {
		t.Parallel()

		for _, addr := range []string{"localhost", ":9050", "host:", "host:0", "host:65536", "host:port", "a:b:c"} {
			if _, err := NewReader(WithProxy(addr)); !errors.Is(err, ErrInvalidProxyAddress) {
				t.Errorf("%q: expected ErrInvalidProxyAddress, got %v", addr, err)
			}
		}
	})
}

// TestDetectCompression tests magic byte detection.
func TestDetectCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   Compression
	}{
		{name: "gzip", header: []byte{0x1f, 0x8b, 0x08}, want: CompressionGzip},
		{name: "bzip2", header: []byte("BZh91AY"), want: CompressionBzip2},
		{name: "xz", header: []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, want: CompressionXZ},
		{name: "plain text", header: []byte("1b3737"), want: CompressionNone},
		{name: "empty", header: nil, want: CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectCompression(tt.header); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
