// Package testutil provides helpers shared by weburl's command and config
// tests:
//   - capturing cliout output (CaptureOutput)
//   - temporary directories with automatic cleanup (TempDir)
//   - writing indented fixture files (WriteFile)
//
// All functions use t.Helper() for proper test line reporting.
package testutil
