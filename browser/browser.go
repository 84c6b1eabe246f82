// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	pkgbrowser "github.com/pkg/browser"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// DefaultTimeout bounds how long Launch waits for the opener.
const DefaultTimeout = 5 * time.Second

var log = logutil.NewLogger("browser")

// openURL is replaced in tests.
var openURL = pkgbrowser.OpenURL

func init() {
	// keep the opener's own output away from stdout, which may carry JSON
	pkgbrowser.Stdout = os.Stderr
}

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetSystem, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	for _, valid := range ValidTargets() {
		if Target(target) == valid {
			return true
		}
	}
	return false
}

// ResolveTarget maps TargetDefault to TargetSystem and keeps TargetNone.
func ResolveTarget(target Target) Target {
	if target == TargetNone {
		return TargetNone
	}
	return TargetSystem
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open; must be an absolute http or https URL.
	URL string
	// Target browser to use
	Target Target
	// Timeout for the launch (default DefaultTimeout)
	Timeout time.Duration
}

// Launch opens opts.URL in the browser selected by opts.Target and waits for
// the opener to return, the timeout to pass or ctx to end. The URL is
// validated with urlutil.Validate before anything is executed.
func Launch(ctx context.Context, opts LaunchOptions) error {
	if err := urlutil.Validate(opts.URL); err != nil {
		return fmt.Errorf("cannot open browser: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if ResolveTarget(opts.Target) == TargetNone {
		log.Debug("browser launch disabled", "url", opts.URL)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- openURL(opts.URL)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		log.Debug("browser launched", "url", opts.URL)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to open browser: %w", ctx.Err())
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	if ResolveTarget(target) == TargetNone {
		return "none"
	}
	return "default browser"
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
