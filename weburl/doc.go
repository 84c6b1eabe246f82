// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package weburl wraps a URL string in an immutable value that exposes the
// components a browser anchor element would (protocol, host, pathname, search,
// hash) and derives request-oriented views from them: origin, cross-origin
// detection, query parameters and anti-cache variants.
//
// # Usage
//
//	u := weburl.Parse("http://subdomain.domain.com:8080/directory/file.html?param1=value1#hash")
//
//	u.Origin()   // http://subdomain.domain.com:8080
//	u.Relative() // /directory/file.html?param1=value1#hash
//	v, _ := u.Params().Get("param1")
//	v.Str        // value1
//
// Every transformation returns a new *URL and leaves the receiver untouched:
//
//	next := u.WithParams(params)   // replaces the whole query
//	fresh := u.FormatForXHR(true)  // adds _=<timestamp>, drops the fragment
//
// # Environment
//
// Parsing, the "current location" used for relative input and cross-origin
// checks, and the clock behind UniqueID are collaborators of an Environment.
// The package-level functions use Default(), which parses with urlutil.Anchor
// and reads the current location from WEBURL_LOCATION (falling back to
// http://localhost/). Build your own for tests or embedding:
//
//	env := weburl.NewEnvironment(
//		weburl.WithLocation(weburl.StaticLocation("https://app.example.com/")),
//		weburl.WithClock(weburl.FixedClock(time.UnixMilli(0))),
//	)
//	u := env.Parse("/api/items")
//
// # Error Handling
//
// Parse is lenient like the browser: it never fails. Input the parser rejects
// is kept verbatim as Href with empty components. Use ParseStrict to get a
// *ParseError instead.
//
// # Query Strings
//
// Params preserves first-insertion key order. A key without "=" maps to a null
// Value and repeated keys collect into a list. Stringify produces the
// canonical form: keys and list values sorted, everything encoded with
// urlutil.EncodeComponent.
package weburl
