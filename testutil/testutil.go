package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jongio/weburl/cliout"
)

// CaptureOutput runs fn with cliout writing to a buffer and returns what was
// written along with fn's error. The previous cliout writer is restored.
//
// Example:
//
//	output, err := testutil.CaptureOutput(t, cmd.Execute)
//	if err != nil {
//	    t.Fatal(err)
//	}
func CaptureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	prev := cliout.Output()
	var buf bytes.Buffer
	cliout.SetOutput(&buf)
	defer cliout.SetOutput(prev)

	err := fn()
	return buf.String(), err
}

// TempDir creates a temporary directory that is removed when the test
// completes.
func TempDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "weburl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Failed to clean up temp directory %s: %v", tmpDir, err)
		}
	})

	return tmpDir
}

// WriteFile writes content to name inside dir and returns the full path.
// Leading tabs common to every line are stripped and deeper tabs become two
// spaces, so YAML fixtures can be indented with the test code.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(dedent(content)), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// dedent removes the longest run of leading tabs shared by all non-blank
// lines and expands the remaining leading tabs to two spaces each.
func dedent(s string) string {
	lines := strings.Split(strings.TrimPrefix(s, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	indent = max(indent, 0)
	for i, line := range lines {
		if len(line) >= indent {
			line = line[indent:]
		} else {
			line = strings.TrimLeft(line, "\t")
		}
		rest := strings.TrimLeft(line, "\t")
		lines[i] = strings.Repeat("  ", len(line)-len(rest)) + rest
	}
	return strings.Join(lines, "\n")
}
