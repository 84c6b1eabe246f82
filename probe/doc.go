// Package probe sends XHR-style requests to URLs and reports how their
// origins respond.
//
// Each URL is formatted with FormatForXHR before the request, so the
// fragment is dropped and, when AntiCache is set, the "_" parameter forces a
// fresh response. Requests to the same origin share a rate limiter and a
// circuit breaker: once an origin keeps failing, later probes to it are
// answered with StatusCircuitOpen without touching the network.
//
//	p, err := probe.New(probe.Options{AntiCache: true, RateLimit: 5})
//	if err != nil {
//		return err
//	}
//	report := p.ProbeAll(ctx, []*weburl.URL{weburl.Parse("https://example.com/")})
package probe
