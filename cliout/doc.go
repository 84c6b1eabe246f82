// Package cliout provides structured output formatting for the weburl CLI.
//
// # Output Formats
//
// Two formats are supported:
//   - default: human-readable text with colors and Unicode symbols
//   - json: indented JSON for automation and scripting
//
//	if err := cliout.SetFormat("json"); err != nil {
//	    return err
//	}
//	return cliout.Print(report, func() {
//	    cliout.Header("URL")
//	    cliout.Label("Origin", report.Origin)
//	})
//
// # Colors
//
// Colors follow the output writer: they are used when it is a terminal (as
// reported by golang.org/x/term) and NO_COLOR is unset. ForceColor and
// NoColor override detection; AutoColor restores it.
//
// # Unicode Detection
//
// Unix-like systems are assumed to render Unicode. On Windows, Windows
// Terminal, VS Code, ConEmu and PowerShell are detected through their
// environment variables; the legacy console gets ASCII fallbacks.
//
// # Output Redirection
//
// SetOutput sends everything to an io.Writer, which keeps command tests free
// of os.Stdout juggling:
//
//	var buf bytes.Buffer
//	cliout.SetOutput(&buf)
//	defer cliout.SetOutput(nil)
package cliout
