// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"fmt"
	neturl "net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jongio/weburl/cache"
	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
)

// Environment variable and default used by EnvLocation.
const (
	EnvLocationVar  = "WEBURL_LOCATION"
	DefaultLocation = "http://localhost/"
)

var log = logutil.NewLogger("weburl")

// Parser turns raw input into URL components, resolving relative input
// against base. urlutil.Anchor is the default implementation.
type Parser interface {
	Parse(raw, base string) (urlutil.Components, error)
}

// LocationProvider supplies the address of the current document. It is the
// base for relative input and the reference for IsCrossOrigin.
type LocationProvider interface {
	Location() string
}

// StaticLocation is a LocationProvider that always returns itself.
type StaticLocation string

// Location returns s.
func (s StaticLocation) Location() string {
	return string(s)
}

// EnvLocation reads WEBURL_LOCATION on every call, falling back to Fallback
// and then DefaultLocation.
type EnvLocation struct {
	Fallback string
}

// Location returns the configured current location.
func (e EnvLocation) Location() string {
	if v := strings.TrimSpace(os.Getenv(EnvLocationVar)); v != "" {
		return v
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	return DefaultLocation
}

// Environment bundles the collaborators a URL depends on. It is safe for
// concurrent use once constructed.
type Environment struct {
	parser   Parser
	location LocationProvider
	clock    func() time.Time
	cache    *cache.Manager[urlutil.Components]
}

// Option configures an Environment.
type Option func(*Environment)

// WithParser replaces the structural parser.
func WithParser(p Parser) Option {
	return func(e *Environment) {
		e.parser = p
	}
}

// WithLocation replaces the current-location provider.
func WithLocation(l LocationProvider) Option {
	return func(e *Environment) {
		e.location = l
	}
}

// WithClock replaces the time source used by UniqueID.
func WithClock(clock func() time.Time) Option {
	return func(e *Environment) {
		e.clock = clock
	}
}

// WithCache memoizes successful parses. Keys include the current location,
// so a changing location never serves stale resolutions.
func WithCache(m *cache.Manager[urlutil.Components]) Option {
	return func(e *Environment) {
		e.cache = m
	}
}

// NewEnvironment creates an Environment. Unset collaborators default to
// urlutil.Anchor, EnvLocation and time.Now.
func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{}
	for _, opt := range opts {
		opt(e)
	}
	if e.parser == nil {
		e.parser = urlutil.Anchor{}
	}
	if e.location == nil {
		e.location = EnvLocation{}
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

var defaultEnv atomic.Pointer[Environment]

func init() {
	defaultEnv.Store(NewEnvironment())
}

// Default returns the Environment used by the package-level functions.
func Default() *Environment {
	return defaultEnv.Load()
}

// SetDefault replaces the Environment used by the package-level functions.
// A nil env restores the built-in default.
func SetDefault(env *Environment) {
	if env == nil {
		env = NewEnvironment()
	}
	defaultEnv.Store(env)
}

// Location returns the current document address.
func (e *Environment) Location() string {
	return e.location.Location()
}

// Now returns the environment clock's current time.
func (e *Environment) Now() time.Time {
	return e.clock()
}

// Parse builds a URL from raw, never failing. Input the parser rejects is
// kept verbatim as Href; its query and fragment are split off into Search
// and Hash and the rest becomes Pathname. Other components stay empty.
func (e *Environment) Parse(raw string) *URL {
	c, err := e.components(raw)
	if err != nil {
		recordParse(modeLenient, resultFallback)
		log.WithOperation("parse").Debug("keeping unparseable input as-is", "input", raw, "error", err)
		c = splitReference(strings.TrimSpace(raw))
	} else {
		recordParse(modeLenient, resultOK)
	}
	return &URL{c: c, env: e}
}

// ParseStrict builds a URL from raw or returns a *ParseError wrapping the
// parser's error.
func (e *Environment) ParseStrict(raw string) (*URL, error) {
	c, err := e.components(raw)
	if err != nil {
		recordParse(modeStrict, resultError)
		return nil, &ParseError{Input: raw, Err: err}
	}
	recordParse(modeStrict, resultOK)
	return &URL{c: c, env: e}, nil
}

// Current returns the URL of the current location.
func (e *Environment) Current() *URL {
	return e.Parse(e.Location())
}

// From converts v to a URL. A *URL is returned unchanged (the same pointer,
// not a copy); nil means the current location; strings are parsed; a
// *url.URL or fmt.Stringer is parsed from its string form.
func (e *Environment) From(v any) *URL {
	switch src := v.(type) {
	case nil:
		return e.Current()
	case *URL:
		if src == nil {
			return e.Current()
		}
		return src
	case string:
		return e.Parse(src)
	case *neturl.URL:
		if src == nil {
			return e.Current()
		}
		return e.Parse(src.String())
	case fmt.Stringer:
		return e.Parse(src.String())
	default:
		return e.Parse(fmt.Sprint(v))
	}
}

func (e *Environment) components(raw string) (urlutil.Components, error) {
	base := e.Location()
	if e.cache == nil {
		return e.parser.Parse(raw, base)
	}

	key := base + "\x00" + raw
	if c, ok := e.cache.Get(key); ok {
		return c, nil
	}
	c, err := e.parser.Parse(raw, base)
	if err != nil {
		return c, err
	}
	e.cache.Set(key, c)
	return c, nil
}

// Parse parses raw with the default Environment. See Environment.Parse.
func Parse(raw string) *URL {
	return Default().Parse(raw)
}

// ParseStrict parses raw with the default Environment. See Environment.ParseStrict.
func ParseStrict(raw string) (*URL, error) {
	return Default().ParseStrict(raw)
}

// Current returns the current location from the default Environment.
func Current() *URL {
	return Default().Current()
}

// From converts v with the default Environment. See Environment.From.
func From(v any) *URL {
	return Default().From(v)
}

// splitReference breaks raw into pathname, search and hash at the first "#"
// and the first "?" before it.
func splitReference(raw string) urlutil.Components {
	c := urlutil.Components{Href: raw}
	rest := raw
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest, c.Hash = rest[:i], rest[i:]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, c.Search = rest[:i], rest[i:]
	}
	if c.Hash == "#" {
		c.Hash = ""
	}
	if c.Search == "?" {
		c.Search = ""
	}
	c.Pathname = rest
	return c
}
