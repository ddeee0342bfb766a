package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadLineTrimsLineEndings(t *testing.T) {
	for input, want := range map[string]string{
		"secret\n":        "secret",
		"secret\r\n":      "secret",
		"secret":          "secret",
		"first\nsecond\n": "first",
	} {
		got, err := readLine(strings.NewReader(input))
		if err != nil {
			t.Fatalf("readLine(%q): %v", input, err)
		}
		if string(got) != want {
			t.Fatalf("readLine(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := readLine(strings.NewReader("")); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF for empty input, got %v", err)
	}
}

func TestReadPasswordNoEchoAcceptsPipedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte("clinic2024\n"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open input: %v", err)
	}
	defer file.Close()

	password, err := readPasswordNoEcho(file)
	if err != nil {
		t.Fatalf("read password: %v", err)
	}
	if string(password) != "clinic2024" {
		t.Fatalf("expected clinic2024, got %q", password)
	}
	if _, err := readPasswordNoEcho(file); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected exhausted input to fail, got %v", err)
	}

	if _, err := readPasswordNoEcho(nil); err == nil {
		t.Fatal("expected nil stdin to fail")
	}
}
