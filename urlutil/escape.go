package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s like JavaScript's encodeURIComponent:
// everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped as UTF-8
// bytes with upper-case hex digits. Spaces become %20, never "+".
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// DecodeComponent reverses EncodeComponent like decodeURIComponent. It fails
// with ErrInvalidEscape on malformed escapes or when the decoded bytes are
// not valid UTF-8. "+" is left alone.
func DecodeComponent(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	out, err := neturl.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEscape, err)
	}
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("%w: %q does not decode to UTF-8", ErrInvalidEscape, s)
	}
	return out, nil
}

func unreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
