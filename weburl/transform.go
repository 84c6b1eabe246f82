// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import "strings"

// AntiCacheKey is the query parameter set by WithAntiCache.
const AntiCacheKey = "_"

// WithParams returns a URL whose query is replaced by the canonical
// serialization of params. The fragment is kept. A nil or empty params still
// yields a trailing "?".
func (u *URL) WithParams(params *Params) *URL {
	recordTransform("with_params")
	return u.rebuild("?" + Stringify(params) + u.c.Hash)
}

// WithAntiCache returns a URL with AntiCacheKey set to UniqueID, keeping the
// other parameters.
func (u *URL) WithAntiCache() *URL {
	recordTransform("with_anti_cache")
	params := u.Params()
	params.Set(AntiCacheKey, u.UniqueID())
	return u.WithParams(params)
}

// WithoutAntiCache returns a URL without AntiCacheKey, keeping the other
// parameters.
func (u *URL) WithoutAntiCache() *URL {
	recordTransform("without_anti_cache")
	params := u.Params()
	params.Del(AntiCacheKey)
	return u.WithParams(params)
}

// WithoutSearch returns a URL without query, keeping the fragment.
func (u *URL) WithoutSearch() *URL {
	recordTransform("without_search")
	return u.rebuild(u.c.Hash)
}

// WithoutHash returns a URL without fragment, keeping the query.
func (u *URL) WithoutHash() *URL {
	recordTransform("without_hash")
	return u.rebuild(u.c.Search)
}

// WithoutHashForIE10Compatibility is an alias for WithoutHash.
//
// Deprecated: use WithoutHash. The components are rebuilt structurally, so an
// empty trailing "#" can no longer survive.
func (u *URL) WithoutHashForIE10Compatibility() *URL {
	return u.WithoutHash()
}

// FormatForXHR returns the URL to use for a network request: the fragment is
// dropped and, when cache is true, an anti-cache parameter is added first.
func (u *URL) FormatForXHR(cache bool) *URL {
	target := u
	if cache {
		target = u.WithAntiCache()
	}
	return target.WithoutHashForIE10Compatibility()
}

// rebuild parses the structural prefix of u followed by suffix.
func (u *URL) rebuild(suffix string) *URL {
	return u.environment().Parse(u.prefix() + suffix)
}

// prefix returns protocol, authority and pathname, without query or fragment.
func (u *URL) prefix() string {
	var b strings.Builder
	b.WriteString(u.c.Protocol)
	if u.c.HasAuthority() {
		b.WriteString("//")
		b.WriteString(u.c.Userinfo())
		b.WriteString(u.c.Host)
	}
	b.WriteString(u.c.Pathname)
	return b.String()
}
