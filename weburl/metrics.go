// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Parse modes and results used as metric labels.
const (
	modeLenient = "lenient"
	modeStrict  = "strict"

	resultOK       = "ok"
	resultFallback = "fallback"
	resultError    = "error"
)

// metricsEnabled controls whether Prometheus metrics are recorded.
var metricsEnabled atomic.Bool

var (
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weburl_parse_total",
			Help: "Total number of URL parses by mode and result",
		},
		[]string{"mode", "result"},
	)

	transformTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weburl_transform_total",
			Help: "Total number of URL transformations by operation",
		},
		[]string{"operation"},
	)

	queryDecodeFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weburl_query_decode_fallback_total",
			Help: "Query tokens kept undecoded because percent-decoding failed",
		},
	)
)

// EnableMetrics turns recording of the weburl_* Prometheus metrics on or off.
// The collectors are registered with the default registry either way;
// recording is off until enabled.
func EnableMetrics(enabled bool) {
	metricsEnabled.Store(enabled)
}

// MetricsEnabled reports whether metrics are being recorded.
func MetricsEnabled() bool {
	return metricsEnabled.Load()
}

func recordParse(mode, result string) {
	if !metricsEnabled.Load() {
		return
	}
	parseTotal.WithLabelValues(mode, result).Inc()
}

func recordTransform(operation string) {
	if !metricsEnabled.Load() {
		return
	}
	transformTotal.WithLabelValues(operation).Inc()
}

func recordDecodeFallback() {
	if !metricsEnabled.Load() {
		return
	}
	queryDecodeFallbackTotal.Inc()
}
