// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"strconv"

	"github.com/jongio/weburl/urlutil"
)

// URL is an immutable parsed URL. Its components are computed once when it
// is created; transformations return new values.
type URL struct {
	c   urlutil.Components
	env *Environment
}

// Components returns a copy of the parsed components.
func (u *URL) Components() urlutil.Components {
	return u.c
}

// Href returns the full normalized URL.
func (u *URL) Href() string { return u.c.Href }

// Protocol returns the scheme with its trailing colon, e.g. "http:".
func (u *URL) Protocol() string { return u.c.Protocol }

// Host returns the hostname plus ":port" when the port is not the default.
func (u *URL) Host() string { return u.c.Host }

// Hostname returns the host without port.
func (u *URL) Hostname() string { return u.c.Hostname }

// Port returns the port, or "" when it is absent or the scheme default.
func (u *URL) Port() string { return u.c.Port }

// Pathname returns the path component.
func (u *URL) Pathname() string { return u.c.Pathname }

// Search returns the query including its leading "?", or "".
func (u *URL) Search() string { return u.c.Search }

// Hash returns the fragment including its leading "#", or "".
func (u *URL) Hash() string { return u.c.Hash }

// Absolute is an alias for Href.
func (u *URL) Absolute() string { return u.c.Href }

// String returns Href.
func (u *URL) String() string { return u.c.Href }

// MarshalText encodes the URL as its Href.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.c.Href), nil
}

// Origin returns protocol + "//" + hostname, plus ":port" only when Port is
// non-empty. Default ports never appear because the parser drops them.
func (u *URL) Origin() string {
	origin := u.c.Protocol + "//" + u.c.Hostname
	if u.c.Port != "" {
		origin += ":" + u.c.Port
	}
	return origin
}

// Relative returns pathname + search + hash.
func (u *URL) Relative() string {
	return u.c.Pathname + u.c.Search + u.c.Hash
}

// UniqueID returns the environment clock in Unix milliseconds, base-36
// encoded. It increases with time but is not guaranteed unique.
func (u *URL) UniqueID() string {
	return strconv.FormatInt(u.environment().Now().UnixMilli(), 36)
}

// IsCrossOrigin reports whether Origin differs from the origin of the
// environment's current location.
func (u *URL) IsCrossOrigin() bool {
	return u.Origin() != u.environment().Current().Origin()
}

// Params parses Search. The result is freshly allocated on every call and
// may be modified freely.
func (u *URL) Params() *Params {
	return ParseQuery(u.c.Search)
}

// HasHash reports whether the URL has a non-empty fragment.
func (u *URL) HasHash() bool {
	return len(u.c.Hash) > 0
}

func (u *URL) environment() *Environment {
	if u.env == nil {
		return Default()
	}
	return u.env
}
