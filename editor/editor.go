// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package editor opens files in the user's preferred editor and waits for it
// to exit.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrNoEditor is returned when no editor is configured or installed.
var ErrNoEditor = errors.New("no editor found; set EDITOR or VISUAL environment variable")

// Options configures Open.
type Options struct {
	// Editor overrides EDITOR, VISUAL and auto-detection.
	Editor string
	// Line opens the file at a line when the editor supports it.
	Line int
}

var (
	lookPath = exec.LookPath
	run      = func(cmd *exec.Cmd) error { return cmd.Run() }
)

// Open opens path in the detected editor and blocks until the editor exits
// or ctx is canceled.
func Open(ctx context.Context, path string, opts Options) error {
	editor := opts.Editor
	if editor == "" {
		editor = Detect()
	} else {
		editor = validateEditor(editor)
	}
	if editor == "" {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, editor, buildArgs(editor, path, opts.Line)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := run(cmd); err != nil {
		return fmt.Errorf("editor %s failed: %w", filepath.Base(editor), err)
	}
	return nil
}

// Detect returns the editor from EDITOR or VISUAL, or the first installed
// candidate for the platform. It returns "" when none is found.
func Detect() string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if editor := validateEditor(os.Getenv(name)); editor != "" {
			return editor
		}
	}
	for _, candidate := range candidates() {
		if _, err := lookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// editorNamePattern allows plain command names only.
var editorNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._+-]+$`)

// validateEditor returns editor when it is a plain command name on PATH or
// an absolute path to an executable, and "" otherwise.
func validateEditor(editor string) string {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return ""
	}
	if !filepath.IsAbs(editor) {
		if strings.ContainsAny(editor, `/\`) || !editorNamePattern.MatchString(editor) {
			return ""
		}
	}
	if _, err := lookPath(editor); err != nil {
		return ""
	}
	return editor
}

// candidates lists editors that block until the file is closed.
func candidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"code", "notepad"}
	}
	return []string{"code", "nano", "vim", "vi"}
}

// buildArgs returns the editor arguments for path, positioned at line when
// the editor is known to support it.
func buildArgs(editor, path string, line int) []string {
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(editor)), ".exe")
	switch name {
	case "code", "code-insiders":
		if line > 0 {
			return []string{"--wait", "--goto", fmt.Sprintf("%s:%d", path, line)}
		}
		return []string{"--wait", path}
	case "vi", "vim", "nvim", "nano":
		if line > 0 {
			return []string{fmt.Sprintf("+%d", line), path}
		}
	case "subl":
		if line > 0 {
			return []string{"--wait", fmt.Sprintf("%s:%d", path, line)}
		}
		return []string{"--wait", path}
	case "notepad++":
		if line > 0 {
			return []string{fmt.Sprintf("-n%d", line), path}
		}
	}
	return []string{path}
}
