package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolDot     = "•"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIArrow   = "->"
	ASCIIDot     = "*"
)

// colorMode selects how color output is decided.
type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	color        = colorAuto
	out          io.Writer = os.Stdout
)

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	color = colorAlways
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	color = colorNever
	mu.Unlock()
}

// AutoColor restores terminal detection: color is used only when the output
// is a terminal and NO_COLOR is unset.
func AutoColor() {
	mu.Lock()
	color = colorAuto
	mu.Unlock()
}

// SetOutput redirects all output to w. A nil w restores os.Stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	mu.Lock()
	out = w
	mu.Unlock()
}

// Output returns the current output writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// ColorEnabled reports whether ANSI colors are written.
func ColorEnabled() bool {
	mu.RLock()
	mode, w := color, out
	mu.RUnlock()

	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// supportsUnicode detects if the terminal supports Unicode/emojis
var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code, ConEmu and PowerShell handle Unicode;
	// the legacy console does not.
	for _, key := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "POWERSHELL_DISTRIBUTION_CHANNEL", "TERM"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

// getIcon returns the appropriate icon based on Unicode support
func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// paint wraps s in the given ANSI codes when color is enabled.
func paint(codes, s string) string {
	if !ColorEnabled() {
		return s
	}
	return codes + s + Reset
}

func printf(format string, args ...any) {
	_, _ = fmt.Fprintf(Output(), format, args...)
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	var f Format
	switch format {
	case "default", "":
		f = FormatDefault
	case "json":
		f = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	mu.Lock()
	globalFormat = f
	mu.Unlock()
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON writes data as indented JSON.
func PrintJSON(data any) error {
	encoder := json.NewEncoder(Output())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
// For JSON format, marshals the data object.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header with a divider
func Header(text string) {
	printf("\n%s\n%s\n", paint(Bold, text), strings.Repeat("=", len([]rune(text))))
}

// Section prints a section header
func Section(text string) {
	printf("\n%s\n", paint(Cyan, getIcon(SymbolArrow, ASCIIArrow)+" "+text))
}

// Success prints a success message with green checkmark
func Success(format string, args ...any) {
	printf("%s %s\n", paint(BrightGreen, getIcon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with red X
func Error(format string, args ...any) {
	printf("%s %s\n", paint(BrightRed, getIcon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...any) {
	printf("%s  %s\n", paint(BrightYellow, getIcon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with blue info icon
func Info(format string, args ...any) {
	printf("%s  %s\n", paint(BrightBlue, getIcon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Bullet prints a bulleted list item
func Bullet(format string, args ...any) {
	printf("  %s %s\n", getIcon(SymbolDot, ASCIIDot), fmt.Sprintf(format, args...))
}

// Label prints a label and value pair
func Label(label, value string) {
	printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-14s", label+":")), value)
}

// LabelColored prints a label and colored value pair
func LabelColored(label, value, codes string) {
	printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-14s", label+":")), paint(codes, value))
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...any) {
	printf(format+"\n", args...)
}

// Newline prints a blank line
func Newline() {
	printf("\n")
}

// Hint prints compact hints on a single line with bullet separators.
func Hint(hints ...string) {
	if len(hints) == 0 {
		return
	}
	printf("%s\n", paint(Dim, strings.Join(hints, " "+getIcon(SymbolDot, ASCIIDot)+" ")))
}

// URL returns a URL styled in bright blue.
func URL(url string) string {
	return paint(BrightBlue, url)
}

// Muted returns dim text.
func Muted(format string, args ...any) string {
	return paint(Dim, fmt.Sprintf(format, args...))
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int, len(headers))
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			widths[header] = max(widths[header], len(row[header]))
		}
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(paint(Bold, fmt.Sprintf("%-*s", widths[header], header)))
		b.WriteString("  ")
	}
	b.WriteString("\n   ")
	for _, header := range headers {
		b.WriteString(strings.Repeat("─", widths[header]) + "  ")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("   ")
		for _, header := range headers {
			fmt.Fprintf(&b, "%-*s  ", widths[header], row[header])
		}
		b.WriteString("\n")
	}
	printf("%s", b.String())
}
