package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// Components is the structural breakdown of a URL, named after the
// properties an HTML anchor element exposes. Username and Password are kept
// percent-escaped.
type Components struct {
	Href     string `json:"href"`
	Protocol string `json:"protocol"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Host     string `json:"host"`
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Hash     string `json:"hash"`
}

// HasAuthority reports whether the href carries a "//" authority section.
// It is false for opaque URLs such as "mailto:a@b" and for components
// without a protocol.
func (c Components) HasAuthority() bool {
	return c.Protocol != "" && strings.HasPrefix(strings.TrimPrefix(c.Href, c.Protocol), "//")
}

// Userinfo returns "user:pass@", "user@" or "" as it appears before the host.
func (c Components) Userinfo() string {
	switch {
	case c.Username == "" && c.Password == "":
		return ""
	case c.Password == "":
		return c.Username + "@"
	default:
		return c.Username + ":" + c.Password + "@"
	}
}

// normalizeFlags are the purell normalizations an anchor applies. Escapes
// keep their case.
const normalizeFlags = purell.FlagLowercaseScheme | purell.FlagLowercaseHost | purell.FlagRemoveDefaultPort

// extraDefaultPorts lists the default ports purell does not remove.
var extraDefaultPorts = map[string]string{
	"ws":  "80",
	"wss": "443",
	"ftp": "21",
}

// specialSchemes get "/" as pathname when the path is empty.
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
	"file":  true,
}

var inputCleaner = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// Anchor parses URLs the way an HTML anchor element normalizes its href.
// It never modifies its inputs and is safe for concurrent use.
type Anchor struct{}

// Parse splits raw into Components. Relative references, including the
// empty string, are resolved against base. A "%" outside the query that does
// not start an escape is written as "%25". An error is returned only when
// net/url rejects the input or a relative reference has no usable base;
// every error wraps ErrEmptyURL, ErrMalformedURL or ErrNoBase.
func (Anchor) Parse(raw, base string) (Components, error) {
	raw = cleanInput(raw)
	if raw == "" && cleanInput(base) == "" {
		return Components{}, ErrEmptyURL
	}

	ref, err := neturl.Parse(escapeStrayPercents(raw))
	if err != nil {
		return Components{}, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	if !ref.IsAbs() {
		b, err := neturl.Parse(escapeStrayPercents(cleanInput(base)))
		if err != nil || !b.IsAbs() {
			return Components{}, fmt.Errorf("%w: %q", ErrNoBase, raw)
		}
		ref = b.ResolveReference(ref)
	}

	return fromURL(ref), nil
}

func cleanInput(s string) string {
	return inputCleaner.Replace(strings.TrimSpace(s))
}

// escapeStrayPercents rewrites "%" as "%25" where it is not followed by two
// hex digits. net/url rejects those in the path, host and fragment; the
// query is left alone since net/url keeps it raw.
func escapeStrayPercents(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	rest, fragment, hasFragment := strings.Cut(s, "#")
	path, query, hasQuery := strings.Cut(rest, "?")

	var b strings.Builder
	b.Grow(len(s) + 8)
	writeEscapedPercents(&b, path)
	if hasQuery {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if hasFragment {
		b.WriteByte('#')
		writeEscapedPercents(&b, fragment)
	}
	return b.String()
}

func writeEscapedPercents(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// fromURL normalizes u in place and reads its components back.
func fromURL(u *neturl.URL) Components {
	purell.NormalizeURL(u, normalizeFlags)

	hostname := u.Hostname()
	port := u.Port()
	if port != "" && port == extraDefaultPorts[u.Scheme] {
		port = ""
	}
	if strings.Contains(hostname, ":") {
		hostname = "[" + hostname + "]"
	}

	host := hostname
	if port != "" {
		host += ":" + port
	}
	u.Host = host

	// Href carries the zone of an IPv6 literal escaped; so do Host and
	// Hostname, so they can be written back.
	if i := strings.IndexByte(hostname, '%'); i >= 0 && strings.HasPrefix(hostname, "[") {
		hostname = hostname[:i] + "%25" + hostname[i+1:]
		host = hostname
		if port != "" {
			host += ":" + port
		}
	}

	if u.Opaque == "" && u.Path == "" && specialSchemes[u.Scheme] {
		u.Path = "/"
		u.RawPath = ""
	}

	c := Components{
		Href:     u.String(),
		Protocol: u.Scheme + ":",
		Host:     host,
		Hostname: hostname,
		Port:     port,
		Pathname: u.EscapedPath(),
	}
	if u.Opaque != "" {
		c.Pathname = u.Opaque
	}
	if u.User != nil {
		// keep the escaped form so the userinfo can be written back verbatim
		c.Username, c.Password, _ = strings.Cut(u.User.String(), ":")
	}
	if u.RawQuery != "" {
		c.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		c.Hash = "#" + u.EscapedFragment()
	}
	return c
}
