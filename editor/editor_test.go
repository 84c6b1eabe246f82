// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package editor

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
)

// stubLookPath makes only the listed names resolvable.
func stubLookPath(t *testing.T, installed ...string) {
	t.Helper()
	prev := lookPath
	t.Cleanup(func() { lookPath = prev })
	lookPath = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + filepath.Base(name), nil
			}
		}
		return "", exec.ErrNotFound
	}
}

// stubRun records the command instead of running it.
func stubRun(t *testing.T, err error) *[]string {
	t.Helper()
	prev := run
	t.Cleanup(func() { run = prev })
	var got []string
	run = func(cmd *exec.Cmd) error {
		got = cmd.Args
		return err
	}
	return &got
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		editor    string
		visual    string
		installed []string
		want      string
	}{
		{"EDITOR wins", "nano", "vim", []string{"nano", "vim"}, "nano"},
		{"VISUAL when EDITOR missing", "missing-editor", "vim", []string{"vim"}, "vim"},
		{"EDITOR with arguments rejected", "vim -u NONE", "", nil, ""},
		{"relative path rejected", "./evil", "", []string{"./evil"}, ""},
		{"nothing installed", "", "", nil, ""},
		{"absolute path", "/opt/bin/hx", "", []string{"/opt/bin/hx"}, "/opt/bin/hx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			stubLookPath(t, tt.installed...)

			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_FallsBackToCandidates(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	last := candidates()[len(candidates())-1]
	stubLookPath(t, last)

	if got := Detect(); got != last {
		t.Errorf("Detect() = %q, want %q", got, last)
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		line   int
		want   []string
	}{
		{"code waits", "code", 0, []string{"--wait", "cfg.yaml"}},
		{"code goto", "/usr/bin/code", 3, []string{"--wait", "--goto", "cfg.yaml:3"}},
		{"vim line", "vim", 7, []string{"+7", "cfg.yaml"}},
		{"nano no line", "nano", 0, []string{"cfg.yaml"}},
		{"notepad++ line", "notepad++.exe", 2, []string{"-n2", "cfg.yaml"}},
		{"unknown editor", "hx", 4, []string{"cfg.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildArgs(tt.editor, "cfg.yaml", tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	stubLookPath(t, "vim")
	got := stubRun(t, nil)

	if err := Open(context.Background(), "cfg.yaml", Options{Editor: "vim", Line: 2}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := []string{"vim", "+2", "cfg.yaml"}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("command = %v, want %v", *got, want)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	stubLookPath(t, "vim")

	errExit := errors.New("exit status 1")
	stubRun(t, errExit)

	if err := Open(context.Background(), "cfg.yaml", Options{Editor: "missing"}); !errors.Is(err, ErrNoEditor) {
		t.Errorf("Open() with missing editor error = %v, want ErrNoEditor", err)
	}
	if err := Open(context.Background(), "cfg.yaml", Options{Editor: "vim"}); !errors.Is(err, errExit) {
		t.Errorf("Open() error = %v, want wrapped exit error", err)
	}
}
