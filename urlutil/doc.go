// Package urlutil provides the low-level URL plumbing used by weburl: an
// anchor-element style structural parser, encodeURIComponent compatible
// escaping, and HTTP/HTTPS request URL validation.
//
// # Parsing
//
// Anchor mirrors what a browser does when a string is assigned to the href of
// an <a> element. The input is trimmed, resolved against a base when it is a
// relative reference, and normalized: scheme and host are lower-cased, default
// ports are dropped and an empty path becomes "/" for special schemes.
//
//	c, err := urlutil.Anchor{}.Parse("HTTP://Example.com:80", "")
//	if err != nil {
//		return err
//	}
//	fmt.Println(c.Href) // http://example.com/
//
// # Escaping
//
// EncodeComponent and DecodeComponent follow the JavaScript encodeURIComponent
// and decodeURIComponent functions, so query strings built here match the ones
// produced by browser code:
//
//	urlutil.EncodeComponent("a b&c") // a%20b%26c
//
// # Validation
//
// Validate checks that a URL is usable as an HTTP request target:
//   - URL must not be empty or only whitespace
//   - URL must use http:// or https://
//   - URL must have a host
//   - URL must not exceed MaxURLLength (2048 characters)
//
// ValidateHTTPSOnly additionally requires https unless the host is localhost.
// All failures wrap one of the Err* sentinels, so callers can use errors.Is:
//
//	if err := urlutil.Validate(target); errors.Is(err, urlutil.ErrUnsupportedScheme) {
//		// not an http(s) URL
//	}
package urlutil
