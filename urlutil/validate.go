package urlutil

import (
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
)

const (
	// MaxURLLength is the RFC 2616 practical limit for URL length
	MaxURLLength = 2048
)

var (
	// ErrEmptyURL indicates the input was empty or only whitespace.
	ErrEmptyURL = errors.New("url cannot be empty")
	// ErrURLTooLong indicates the input exceeds MaxURLLength.
	ErrURLTooLong = errors.New("url exceeds maximum length")
	// ErrMalformedURL indicates net/url could not parse the input.
	ErrMalformedURL = errors.New("invalid URL format")
	// ErrNoBase indicates a relative reference was given without a usable base.
	ErrNoBase = errors.New("relative url requires a base")
	// ErrUnsupportedScheme indicates a scheme other than http or https.
	ErrUnsupportedScheme = errors.New("url must use http:// or https://")
	// ErrMissingHost indicates an http(s) URL without a host.
	ErrMissingHost = errors.New("url missing host/domain")
	// ErrInsecureScheme indicates plain http for a non-localhost host.
	ErrInsecureScheme = errors.New("url must use https:// (http:// only allowed for localhost)")
	// ErrInvalidEscape indicates a malformed percent-escape sequence.
	ErrInvalidEscape = errors.New("invalid percent-encoding")
)

// Validate checks that rawURL is usable as an HTTP request target.
// It validates that the URL:
//   - Is not empty or only whitespace
//   - Does not exceed MaxURLLength
//   - Can be parsed by net/url.Parse
//   - Uses http:// or https://
//   - Has a host
//
// Every returned error wraps one of the Err* sentinels.
func Validate(rawURL string) error {
	_, err := parseRequestURL(rawURL)
	return err
}

// ValidateHTTPSOnly enforces HTTPS, allowing plain HTTP only for localhost
// (localhost, 127.0.0.1, ::1) so local development keeps working.
func ValidateHTTPSOnly(rawURL string) error {
	parsed, err := parseRequestURL(rawURL)
	if err != nil {
		return err
	}

	if parsed.Scheme == "https" || isLocalhost(parsed.Hostname()) {
		return nil
	}
	return ErrInsecureScheme
}

func parseRequestURL(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("%w of %d characters", ErrURLTooLong, MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	switch parsed.Scheme {
	case "http", "https":
	case "":
		return nil, ErrUnsupportedScheme
	default:
		return nil, fmt.Errorf("%w, got: %s", ErrUnsupportedScheme, parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, ErrMissingHost
	}
	return parsed, nil
}

// NormalizeScheme prepends defaultScheme + "://" to inputs that carry no
// scheme at all, such as "example.com" or "example.com:8080/path".
// Inputs with an explicit scheme ("ftp://x", "mailto:a@b") and relative
// references ("/path", "?q", "#h", "//host") are returned trimmed but
// otherwise unchanged.
//
// Example:
//
//	urlutil.NormalizeScheme("example.com", "https") // https://example.com
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || strings.Contains(rawURL, "://") {
		return rawURL
	}
	if strings.ContainsAny(rawURL[:1], "/?#") {
		return rawURL
	}
	if hasScheme(rawURL) {
		return rawURL
	}
	return defaultScheme + "://" + rawURL
}

// hasScheme reports whether s starts with "scheme:" that is not a host:port pair.
func hasScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	for j, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	// "host:8080" is a port, not a scheme
	rest := s[i+1:]
	if rest == "" {
		return true
	}
	return rest[0] < '0' || rest[0] > '9'
}

// isLocalhost checks if the hostname is a localhost address
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)

	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		hostname == "[::1]"
}
