package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/weburl"
)

// ErrUnsupportedMethod is returned by New for methods other than GET and HEAD.
var ErrUnsupportedMethod = errors.New("probe method must be GET or HEAD")

var log = logutil.NewLogger("probe")

// sharedHTTPTransport is shared by all probers so connections are reused.
var sharedHTTPTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     HTTPIdleConnTimeout,
	DialContext: (&net.Dialer{
		Timeout:   HTTPDialTimeout,
		KeepAlive: HTTPKeepAliveTimeout,
	}).DialContext,
	TLSHandshakeTimeout:   HTTPTLSHandshakeTimeout,
	ExpectContinueTimeout: HTTPExpectContinueTimeout,
}

// Prober probes URLs with a rate limiter and circuit breaker per origin.
// It is safe for concurrent use.
type Prober struct {
	opts     Options
	client   *http.Client
	breakers map[string]*gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

// New creates a Prober from opts.
func New(opts Options) (*Prober, error) {
	opts = opts.withDefaults()
	opts.Method = strings.ToUpper(opts.Method)
	if opts.Method != http.MethodGet && opts.Method != http.MethodHead {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, opts.Method)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Transport: sharedHTTPTransport,
			// Redirects are reported, not followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return &Prober{
		opts:     opts,
		client:   client,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		limiters: make(map[string]*rate.Limiter),
	}, nil
}

// breaker returns the circuit breaker for origin, or nil when breakers are
// disabled.
func (p *Prober) breaker(origin string) *gobreaker.CircuitBreaker {
	if p.opts.BreakerFailures < 0 {
		return nil
	}

	p.mu.RLock()
	cb, ok := p.breakers[origin]
	p.mu.RUnlock()
	if ok {
		return cb
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cb, ok := p.breakers[origin]; ok {
		return cb
	}

	threshold := uint32(p.opts.BreakerFailures)
	cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        origin,
		MaxRequests: 1,
		Timeout:     p.opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= threshold && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Debug("circuit breaker state changed", "origin", name, "from", from.String(), "to", to.String())
			recordBreakerState(name, to)
		},
	})
	p.breakers[origin] = cb
	return cb
}

// limiter returns the rate limiter for origin, or nil when rate limiting is
// disabled.
func (p *Prober) limiter(origin string) *rate.Limiter {
	if p.opts.RateLimit <= 0 {
		return nil
	}

	p.mu.RLock()
	l, ok := p.limiters[origin]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.limiters[origin]; ok {
		return l
	}

	l = rate.NewLimiter(rate.Limit(p.opts.RateLimit), p.opts.RateLimit*2)
	p.limiters[origin] = l
	return l
}

// Probe requests u formatted for XHR and classifies the response.
func (p *Prober) Probe(ctx context.Context, u *weburl.URL) Result {
	start := time.Now()
	result := p.probe(ctx, u)
	result.ResponseTime = time.Since(start)
	result.Timestamp = time.Now()
	recordProbe(result)
	log.Debug("probed", "url", result.RequestURL, "status", string(result.Status), "code", result.StatusCode)
	return result
}

func (p *Prober) probe(ctx context.Context, u *weburl.URL) Result {
	target := u.FormatForXHR(p.opts.AntiCache)
	result := Result{
		URL:        u.Href(),
		RequestURL: target.Href(),
		Origin:     u.Origin(),
		Method:     p.opts.Method,
	}

	validate := urlutil.Validate
	if p.opts.HTTPSOnly {
		validate = urlutil.ValidateHTTPSOnly
	}
	if err := validate(result.RequestURL); err != nil {
		result.Status = StatusInvalid
		result.Error = err.Error()
		return result
	}

	if l := p.limiter(result.Origin); l != nil {
		if err := l.Wait(ctx); err != nil {
			result.Status = StatusUnreachable
			result.Error = fmt.Sprintf("rate limit wait: %v", err)
			return result
		}
	}

	cb := p.breaker(result.Origin)
	if cb == nil {
		return p.do(ctx, result)
	}

	output, err := cb.Execute(func() (interface{}, error) {
		res := p.do(ctx, result)
		if res.Status.Failed() {
			return res, fmt.Errorf("probe failed: %s", res.Status)
		}
		return res, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result.Status = StatusCircuitOpen
		result.Error = "circuit breaker open for " + result.Origin
		return result
	}
	if res, ok := output.(Result); ok {
		return res
	}
	result.Status = StatusUnreachable
	result.Error = fmt.Sprintf("unexpected probe result: %v", err)
	return result
}

// do performs the request for result.RequestURL and fills in the outcome.
func (p *Prober) do(ctx context.Context, result Result) Result {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, p.opts.Method, result.RequestURL, nil)
	if err != nil {
		result.Status = StatusInvalid
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result
	}

	resp, err := p.client.Do(req)
	if err != nil {
		result.Status = StatusUnreachable
		result.Error = fmt.Sprintf("connection failed: %v", err)
		return result
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
	_ = resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Status = statusFromHTTPCode(resp.StatusCode)
	if result.Status != StatusOK && result.Status != StatusRedirect {
		result.Error = http.StatusText(resp.StatusCode)
	}
	return result
}

// ProbeAll probes urls concurrently, at most MaxConcurrent at a time, and
// returns the results in input order.
func (p *Prober) ProbeAll(ctx context.Context, urls []*weburl.URL) Report {
	results := make([]Result, len(urls))
	var g errgroup.Group
	g.SetLimit(p.opts.MaxConcurrent)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = p.Probe(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Timestamp: time.Now(), Results: results}
	report.Summary.Total = len(results)
	for _, r := range results {
		if r.Status == StatusOK || r.Status == StatusRedirect {
			report.Summary.OK++
		} else {
			report.Summary.Failed++
		}
	}
	return report
}
