// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides the structured logging used across weburl, built on slog.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	logutil.Debug("parsed url", "href", href)
//	logutil.Warn("config file ignored", "path", path)
//
// # Component Loggers
//
// Library packages log through a ComponentLogger so every line carries the
// emitting component:
//
//	var log = logutil.NewLogger("weburl")
//	log.WithOperation("params").Debug("kept undecodable token", "token", tok)
//
// A ComponentLogger looks up the global logger on every call, so loggers
// declared at package level follow later SetupLogger calls.
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set WEBURL_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"DEBUG","msg":"parsed url","component":"weburl"}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2024-01-15T10:30:00Z level=DEBUG msg="parsed url" component=weburl
package logutil
