// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/testutil"
)

// isolate clears the environment variables Load consults and moves the test
// into an empty working directory and home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := testutil.TempDir(t)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLocation, "")
	t.Setenv(logutil.EnvDebug, "")
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	chdir(t, dir)
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultScheme != "https" {
		t.Errorf("expected defaultScheme https, got %q", cfg.DefaultScheme)
	}
	if cfg.Output != "default" {
		t.Errorf("expected output default, got %q", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"valid json output", func(c *Config) { c.Output = "json" }, ""},
		{"valid location", func(c *Config) { c.Location = "https://app.example.com/a" }, ""},
		{"invalid output", func(c *Config) { c.Output = "xml" }, "output must be"},
		{"invalid scheme", func(c *Config) { c.DefaultScheme = "ftp" }, "defaultScheme must be"},
		{"relative location", func(c *Config) { c.Location = "/dashboard" }, "location must be an absolute URL"},
		{"negative entries", func(c *Config) { c.Cache.MaxEntries = -1 }, "cache.maxEntries"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := &Config{Output: "xml", DefaultScheme: "ftp"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "output") || !strings.Contains(err.Error(), "defaultScheme") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("expected no source, got %q", cfg.Source)
	}
	if cfg.DefaultScheme != "https" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, FileName, `
		location: https://app.example.com/dashboard
		output: json
		strict: true
		metrics: true
		cache:
			maxEntries: 64
			ttl: 10m
	`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != FileName {
		t.Errorf("expected source %q, got %q", FileName, cfg.Source)
	}
	if cfg.Location != "https://app.example.com/dashboard" || cfg.Output != "json" || !cfg.Strict || !cfg.Metrics {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Cache.MaxEntries != 64 || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.DefaultScheme != "https" {
		t.Errorf("unset fields should keep defaults, got %q", cfg.DefaultScheme)
	}
}

func TestLoad_HomeDirectoryFile(t *testing.T) {
	home := isolate(t)
	work := filepath.Join(home, "work")
	if err := os.Mkdir(work, 0o750); err != nil {
		t.Fatal(err)
	}
	chdir(t, work)
	testutil.WriteFile(t, home, FileName, "output: json\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("expected home file to be used, got %+v", cfg)
	}
}

func TestLoad_ExplicitPathAndEnv(t *testing.T) {
	dir := isolate(t)
	explicit := testutil.WriteFile(t, dir, "explicit.yaml", "output: json\n")
	fromEnv := testutil.WriteFile(t, dir, "env.yaml", "defaultScheme: http\n")
	t.Setenv(EnvConfig, fromEnv)

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != explicit || cfg.Output != "json" || cfg.DefaultScheme != "https" {
		t.Errorf("explicit path should win: %+v", cfg)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != fromEnv || cfg.DefaultScheme != "http" {
		t.Errorf("WEBURL_CONFIG should be used: %+v", cfg)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, FileName, "location: https://file.example.com/\n")
	t.Setenv(EnvLocation, "https://env.example.com/")
	t.Setenv(logutil.EnvDebug, "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Location != "https://env.example.com/" {
		t.Errorf("expected env location, got %q", cfg.Location)
	}
	if !cfg.Debug {
		t.Error("expected WEBURL_DEBUG to enable debug")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "colour: red\n"},
		{"bad yaml", "output: [json\n"},
		{"invalid value", "output: xml\n"},
		{"bad duration", "cache:\n  ttl: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := testutil.WriteFile(t, dir, "bad.yaml", tt.content)

			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, "empty.yaml", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != path {
		t.Errorf("expected source %q, got %q", path, cfg.Source)
	}
}

func TestLoad_RejectsTraversal(t *testing.T) {
	isolate(t)

	_, err := Load("../outside.yaml")
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestCheckPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permissions are ACL based on Windows")
	}
	dir := testutil.TempDir(t)
	path := testutil.WriteFile(t, dir, "perm.yaml", "output: json\n")

	if err := checkPermissions(path); err != nil {
		t.Errorf("0600 file should pass: %v", err)
	}
	if err := os.Chmod(path, 0o666); err != nil {
		t.Fatal(err)
	}
	if err := checkPermissions(path); !errors.Is(err, ErrInsecureFilePermissions) {
		t.Errorf("expected ErrInsecureFilePermissions, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), restoring the previous directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
