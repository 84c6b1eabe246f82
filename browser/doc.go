// Package browser opens URLs in the user's web browser.
//
// Launching is delegated to github.com/pkg/browser (cmd /c start on Windows,
// open on macOS, xdg-open on Linux). This package adds URL validation,
// target selection and a timeout.
//
// # Security Considerations
//
// Only absolute http:// and https:// URLs with a host are opened; file:,
// javascript: and relative input are rejected by urlutil.Validate before
// any process is started.
//
// # Browser Targets
//
//   - TargetDefault: the system default browser (alias for TargetSystem)
//   - TargetSystem: the system default browser
//   - TargetNone: validate only, launch nothing
//
// # Example Usage
//
//	err := browser.Launch(ctx, browser.LaunchOptions{
//	    URL:    "https://example.com/?_=loyw3v28",
//	    Target: browser.TargetDefault,
//	})
//	if err != nil {
//	    cliout.Warning("Could not open browser: %v", err)
//	}
//
// Validate a target from user input:
//
//	if !browser.IsValid(input) {
//	    return fmt.Errorf("invalid target %q (valid: %s)", input, browser.FormatValidTargets())
//	}
package browser
