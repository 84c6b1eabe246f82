// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import "fmt"

// ParseError reports input the parser could not turn into a URL.
// Err wraps one of the urlutil sentinels (ErrEmptyURL, ErrMalformedURL,
// ErrNoBase) when the default parser is used.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("weburl: parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
