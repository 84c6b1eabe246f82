package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jongio/weburl/cliout"
)

func TestCaptureOutput(t *testing.T) {
	prev := cliout.Output()

	output, err := CaptureOutput(t, func() error {
		cliout.Plain("hello %s", "world")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "hello world\n" {
		t.Errorf("expected %q, got %q", "hello world\n", output)
	}
	if cliout.Output() != prev {
		t.Error("CaptureOutput did not restore the previous writer")
	}
}

func TestCaptureOutput_ReturnsError(t *testing.T) {
	want := errors.New("boom")
	output, err := CaptureOutput(t, func() error {
		cliout.Plain("partial")
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
	if output != "partial\n" {
		t.Errorf("expected output to be kept, got %q", output)
	}
}

func TestTempDir(t *testing.T) {
	var dir string
	t.Run("inner", func(t *testing.T) {
		dir = TempDir(t)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	})
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed after the test", dir)
	}
}

func TestWriteFile(t *testing.T) {
	dir := TempDir(t)
	path := WriteFile(t, dir, "config.yaml", `
		location: https://app.example.com/
		cache:
			maxEntries: 10
	`)

	if filepath.Dir(path) != dir {
		t.Errorf("expected file in %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "location: https://app.example.com/\ncache:\n  maxEntries: 10\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no indent", "a\nb", "a\nb"},
		{"shared indent", "\t\ta\n\t\tb", "a\nb"},
		{"leading newline", "\n\ta\n", "a\n"},
		{"nested tabs become spaces", "\ta:\n\t\tb: 1", "a:\n  b: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedent(tt.in); got != tt.want {
				t.Errorf("dedent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
