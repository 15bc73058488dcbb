package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// baconHex is "Cooking MC's like a pound of bacon" XORed with 'X'.
const baconHex = "1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736"

// baconText is the plaintext of baconHex.
const baconText = "Cooking MC's like a pound of bacon"

// execute runs the root command with args and stdin and returns stdout.
// Logs go to io.Discard.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// emptyConfig returns the path of an empty config file, so tests never pick
// up a .xorcrack from the working or home directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "config.yaml", "")
}
