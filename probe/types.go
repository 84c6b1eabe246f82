package probe

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxConcurrent limits parallel requests in ProbeAll.
	DefaultMaxConcurrent = 10

	// DefaultBreakerFailures is the request count after which an origin with
	// at least 60% failures trips its breaker.
	DefaultBreakerFailures = 3

	// DefaultBreakerTimeout is how long a tripped breaker stays open.
	DefaultBreakerTimeout = 30 * time.Second

	// maxResponseBodySize limits how much of a response body is drained.
	maxResponseBodySize = 1024 * 1024
)

// HTTP transport timeouts.
const (
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPDialTimeout           = 5 * time.Second
	HTTPKeepAliveTimeout      = 30 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Status classifies the outcome of a probe.
type Status string

const (
	StatusOK          Status = "ok"
	StatusRedirect    Status = "redirect"
	StatusClientError Status = "client_error"
	StatusServerError Status = "server_error"
	StatusUnreachable Status = "unreachable"
	StatusInvalid     Status = "invalid"
	StatusCircuitOpen Status = "circuit_open"
)

// Failed reports whether s counts against the origin's circuit breaker.
func (s Status) Failed() bool {
	switch s {
	case StatusServerError, StatusUnreachable:
		return true
	default:
		return false
	}
}

// statusFromHTTPCode maps an HTTP status code to a Status.
func statusFromHTTPCode(code int) Status {
	switch {
	case code >= 200 && code < 300:
		return StatusOK
	case code >= 300 && code < 400:
		return StatusRedirect
	case code >= 500:
		return StatusServerError
	default:
		return StatusClientError
	}
}

// Result is the outcome of probing one URL.
type Result struct {
	URL          string        `json:"url"`
	RequestURL   string        `json:"requestUrl,omitempty"`
	Origin       string        `json:"origin"`
	Method       string        `json:"method"`
	Status       Status        `json:"status"`
	StatusCode   int           `json:"statusCode,omitempty"`
	ResponseTime time.Duration `json:"responseTime"`
	Error        string        `json:"error,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Report aggregates the results of ProbeAll in input order.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []Result  `json:"results"`
	Summary   Summary   `json:"summary"`
}

// Summary counts results by outcome. Redirects count as OK.
type Summary struct {
	Total  int `json:"total"`
	OK     int `json:"ok"`
	Failed int `json:"failed"`
}

// Options configures a Prober. Zero values select the defaults.
type Options struct {
	// Method is GET or HEAD. Defaults to HEAD.
	Method string
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// AntiCache sets the "_" parameter on every request URL.
	AntiCache bool
	// HTTPSOnly rejects plain http URLs other than localhost.
	HTTPSOnly bool
	// RateLimit is the number of requests per second allowed per origin.
	// Zero or negative disables rate limiting.
	RateLimit int
	// BreakerFailures trips an origin's breaker; negative disables breakers.
	BreakerFailures int
	// BreakerTimeout is how long a tripped breaker stays open.
	BreakerTimeout time.Duration
	// MaxConcurrent limits parallel requests in ProbeAll.
	MaxConcurrent int
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

func (o Options) withDefaults() Options {
	if o.Method == "" {
		o.Method = http.MethodHead
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = DefaultBreakerFailures
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = DefaultBreakerTimeout
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	return o
}
