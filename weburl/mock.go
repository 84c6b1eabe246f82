package weburl

import (
	"fmt"
	"sync"
	"time"

	"github.com/jongio/weburl/urlutil"
)

// MockParser is a Parser test double that returns canned components.
type MockParser struct {
	// Results maps raw input to the components returned for it.
	Results map[string]urlutil.Components
	// Error, when set, is returned for every call.
	Error error

	mu    sync.Mutex
	calls []string
}

// Parse returns the canned result for raw. Unknown input fails with an
// error wrapping urlutil.ErrMalformedURL.
func (m *MockParser) Parse(raw, base string) (urlutil.Components, error) {
	m.mu.Lock()
	m.calls = append(m.calls, raw)
	m.mu.Unlock()

	if m.Error != nil {
		return urlutil.Components{}, m.Error
	}
	if c, ok := m.Results[raw]; ok {
		return c, nil
	}
	return urlutil.Components{}, fmt.Errorf("%w: no canned result for %q", urlutil.ErrMalformedURL, raw)
}

// Calls returns the raw inputs passed to Parse, in order.
func (m *MockParser) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
