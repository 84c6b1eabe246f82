// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL_WithoutSearch(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse(sampleLink)

	got := u.WithoutSearch()

	assert.Equal(t, "http://subdomain.domain.com:8080/directory/file.html#hash", got.Href())
	assert.NotContains(t, got.Href(), "?")
	assert.Equal(t, sampleLink, u.Href(), "receiver must not change")
}

func TestURL_WithoutSearchKeepsLookalikeFragment(t *testing.T) {
	u := newTestEnv(t, "http://localhost/").Parse("http://example.com/page?id=1#section?id=1")

	assert.Equal(t, "http://example.com/page#section?id=1", u.WithoutSearch().Href())
}

func TestURL_WithoutHash(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse(sampleLink)

	got := u.WithoutHash()

	assert.Equal(t, "http://subdomain.domain.com:8080/directory/file.html?param1=value1", got.Href())
	assert.NotContains(t, got.Href(), "#")
	assert.False(t, got.HasHash())
	assert.Equal(t, got.Href(), u.WithoutHashForIE10Compatibility().Href())
}

func TestURL_WithoutHashEmptyFragment(t *testing.T) {
	u := newTestEnv(t, "http://localhost/").Parse("http://example.com/a#")

	assert.False(t, u.HasHash())
	assert.NotContains(t, u.WithoutHash().Href(), "#")
}

func TestURL_TransformsKeepUserinfoAndOpaque(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")

	withUser := env.Parse("https://user:pw@example.com/a?x=1#f")
	assert.Equal(t, "https://user:pw@example.com/a?x=1", withUser.WithoutHash().Href())

	mailto := env.Parse("mailto:someone@example.com?subject=hi")
	assert.Equal(t, "mailto:someone@example.com", mailto.WithoutSearch().Href())
}

func TestURL_WithParamsReplacesQuery(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse(sampleLink)

	params := NewParams()
	params.Set("param2", "value2")
	got := u.WithParams(params)

	assert.Equal(t, "http://subdomain.domain.com:8080/directory/file.html?param2=value2#hash", got.Href())
	assert.False(t, got.Params().Has("param1"))
	v, ok := got.Params().Get("param2")
	assert.True(t, ok)
	assert.Equal(t, "value2", v.Str)
}

func TestURL_WithParamsEmpty(t *testing.T) {
	u := newTestEnv(t, "http://localhost/").Parse("http://domain.com/?a=1")

	got := u.WithParams(nil)

	assert.Equal(t, "http://domain.com/?", got.Href())
	assert.Equal(t, "", got.Search())
	assert.Equal(t, 0, got.Params().Len())
}

func TestURL_WithAntiCache(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")

	got := env.Parse(sampleLink).WithAntiCache()
	assert.Equal(t, "http://subdomain.domain.com:8080/directory/file.html?_=loyw3v28&param1=value1#hash", got.Href())

	bare := env.Parse("http://domain.com").WithAntiCache()
	assert.Equal(t, "http://domain.com/?_=loyw3v28", bare.Href())
	assert.Regexp(t, `\?_`, bare.Href())
}

func TestURL_WithAntiCacheReplacesExisting(t *testing.T) {
	u := newTestEnv(t, "http://localhost/").Parse("http://domain.com/?_=old&_=older")

	got := u.WithAntiCache()

	assert.Equal(t, []Value{StringValue("loyw3v28")}, got.Params().Values(AntiCacheKey))
}

func TestURL_WithoutAntiCache(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")

	got := env.Parse("http://domain.com?_=cache").WithoutAntiCache()
	assert.NotContains(t, got.Href(), "_")

	kept := env.Parse("http://domain.com/?b=2&_=cache&a#top").WithoutAntiCache()
	assert.Equal(t, "http://domain.com/?a&b=2#top", kept.Href())
}

func TestURL_FormatForXHR(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse(sampleLink)

	assert.Equal(t, u.WithoutHash().Href(), u.FormatForXHR(false).Href())

	fresh := u.FormatForXHR(true)
	assert.Regexp(t, `_=`, fresh.Href())
	assert.Equal(t, "http://subdomain.domain.com:8080/directory/file.html?_=loyw3v28&param1=value1", fresh.Href())
}

func TestURL_TransformsOnUnparseableInput(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse("http://exa mple.com")

	assert.Equal(t, "http://exa mple.com", u.Href())
	assert.Equal(t, "http://exa mple.com", u.WithoutHash().Href())
	assert.True(t, strings.HasPrefix(u.WithAntiCache().Href(), "http://exa mple.com?_="))
}

func TestURL_TransformsKeepStrayPercent(t *testing.T) {
	env := newTestEnv(t, "http://example.com/")
	u := env.Parse("http://example.com/50%off?a=1#top")

	assert.Equal(t, "http:", u.Protocol())
	assert.Equal(t, "#top", u.Hash())
	assert.Equal(t, "http://example.com", u.Origin())
	assert.False(t, u.IsCrossOrigin())
	assert.Equal(t, "http://example.com/50%25off?a=1", u.WithoutHash().Href())
	assert.Equal(t, "http://example.com/50%25off#top", u.WithoutSearch().Href())
	assert.Equal(t, "http://example.com/50%25off?a=1#top", u.WithParams(u.Params()).Href())

	sale := env.Parse("http://example.com/sale#50%off")
	assert.Equal(t, "http://example.com/sale", sale.WithoutHash().Href())
	assert.False(t, sale.WithoutHash().HasHash())
}

func TestURL_TransformsSplitUnparseableReference(t *testing.T) {
	env := newTestEnv(t, "http://localhost/")
	u := env.Parse("http://exa mple.com/p?a=1#top")

	assert.Equal(t, "http://exa mple.com/p?a=1#top", u.Href())
	assert.Equal(t, "http://exa mple.com/p", u.Pathname())
	assert.Equal(t, "?a=1", u.Search())
	assert.Equal(t, "#top", u.Hash())
	assert.Equal(t, "http://exa mple.com/p?a=1", u.WithoutHash().Href())
	assert.Equal(t, "http://exa mple.com/p#top", u.WithoutSearch().Href())
	assert.Equal(t, "http://exa mple.com/p?a=1#top", u.WithParams(u.Params()).Href())
}

func TestURL_TransformsKeepIPv6Zone(t *testing.T) {
	const zoned = "http://[fe80::1%25en0]:8080/"
	u := newTestEnv(t, "http://localhost/").Parse(zoned)

	assert.Equal(t, zoned, u.Href())
	assert.Equal(t, zoned, u.WithoutHash().Href())
	assert.Equal(t, "http://[fe80::1%25en0]:8080/?a=1", u.WithParams(ParseQuery("a=1")).Href())
}

func TestURL_WithoutAntiCacheKeepsNullKey(t *testing.T) {
	u := newTestEnv(t, "http://localhost/").Parse("http://example.com/?a&_=1")

	assert.Equal(t, "http://example.com/?a", u.WithoutAntiCache().Href())
}
