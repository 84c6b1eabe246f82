// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jongio/weburl/urlutil"
)

// stubOpener replaces the opener for the duration of the test and records
// the URLs it was asked to open.
func stubOpener(t *testing.T, fn func(string) error) *[]string {
	t.Helper()
	var opened []string
	old := openURL
	openURL = func(url string) error {
		opened = append(opened, url)
		return fn(url)
	}
	t.Cleanup(func() { openURL = old })
	return &opened
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"default is valid", "default", true},
		{"system is valid", "system", true},
		{"none is valid", "none", true},
		{"invalid target", "invalid", false},
		{"empty string", "", false},
		{"chrome not valid", "chrome", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.target); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		target Target
		want   Target
	}{
		{TargetNone, TargetNone},
		{TargetDefault, TargetSystem},
		{TargetSystem, TargetSystem},
		{"", TargetSystem},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			if got := ResolveTarget(tt.target); got != tt.want {
				t.Errorf("ResolveTarget(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestLaunch_OpensValidatedURL(t *testing.T) {
	opened := stubOpener(t, func(string) error { return nil })

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com/?_=loyw3v28", Target: TargetDefault})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(*opened) != 1 || (*opened)[0] != "https://example.com/?_=loyw3v28" {
		t.Errorf("opened = %v", *opened)
	}
}

func TestLaunch_RejectsInvalidURL(t *testing.T) {
	opened := stubOpener(t, func(string) error { return nil })

	tests := []struct {
		url     string
		wantErr error
	}{
		{"", urlutil.ErrEmptyURL},
		{"file:///etc/passwd", urlutil.ErrUnsupportedScheme},
		{"javascript:alert(1)", urlutil.ErrUnsupportedScheme},
		{"http://", urlutil.ErrMissingHost},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := Launch(context.Background(), LaunchOptions{URL: tt.url, Target: TargetSystem})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Launch(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
	if len(*opened) != 0 {
		t.Errorf("nothing should be opened, got %v", *opened)
	}
}

func TestLaunch_TargetNone(t *testing.T) {
	opened := stubOpener(t, func(string) error { return nil })

	if err := Launch(context.Background(), LaunchOptions{URL: "https://example.com", Target: TargetNone}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(*opened) != 0 {
		t.Errorf("TargetNone should not open anything, got %v", *opened)
	}
}

func TestLaunch_OpenerError(t *testing.T) {
	boom := errors.New("no opener")
	stubOpener(t, func(string) error { return boom })

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com"})
	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestLaunch_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	stubOpener(t, func(string) error {
		<-release
		return nil
	})

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com", Timeout: 10 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestGetTargetDisplayName(t *testing.T) {
	if got := GetTargetDisplayName(TargetDefault); got != "default browser" {
		t.Errorf("GetTargetDisplayName(default) = %q", got)
	}
	if got := GetTargetDisplayName(TargetNone); got != "none" {
		t.Errorf("GetTargetDisplayName(none) = %q", got)
	}
}

func TestFormatValidTargets(t *testing.T) {
	got := FormatValidTargets()
	for _, want := range []string{"default", "system", "none"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatValidTargets() = %q, missing %q", got, want)
		}
	}
}
