package probe

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/jongio/weburl/weburl"
)

var (
	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weburl_probe_total",
			Help: "Total number of URL probes by status",
		},
		[]string{"status"},
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weburl_probe_duration_seconds",
			Help:    "Duration of URL probes in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"status"},
	)

	probeResponseCode = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weburl_probe_http_status_total",
			Help: "HTTP status codes returned to probes",
		},
		[]string{"code"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weburl_probe_circuit_breaker_state",
			Help: "Circuit breaker state per origin (0=closed, 1=half-open, 2=open)",
		},
		[]string{"origin"},
	)
)

// Recording follows weburl.EnableMetrics.
func recordProbe(r Result) {
	if !weburl.MetricsEnabled() {
		return
	}
	status := string(r.Status)
	probeTotal.WithLabelValues(status).Inc()
	probeDuration.WithLabelValues(status).Observe(r.ResponseTime.Seconds())
	if r.StatusCode > 0 {
		probeResponseCode.WithLabelValues(strconv.Itoa(r.StatusCode)).Inc()
	}
}

func recordBreakerState(origin string, state gobreaker.State) {
	if !weburl.MetricsEnabled() {
		return
	}
	var value float64
	switch state {
	case gobreaker.StateClosed:
		value = 0
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	breakerState.WithLabelValues(origin).Set(value)
}
