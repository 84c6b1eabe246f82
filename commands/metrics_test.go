package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGather = errors.New("gather failed")

type failingGatherer struct{}

func (failingGatherer) Gather() ([]*dto.MetricFamily, error) {
	return nil, errGather
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "weburl_test_total", Help: "test"}, []string{"kind"})
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total", Help: "test"})
	reg.MustRegister(counter, other)
	counter.WithLabelValues("a").Add(2)
	other.Inc()

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, reg))

	assert.Equal(t, "weburl_test_total{kind=\"a\"} 2\n", buf.String())
}

func TestWriteMetrics_GaugeAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "weburl_state", Help: "test"}, []string{"origin"})
	hist := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "weburl_seconds", Help: "test", Buckets: []float64{1}})
	reg.MustRegister(gauge, hist)
	gauge.WithLabelValues("http://a.example").Set(2)
	hist.Observe(0.5)
	hist.Observe(1.5)

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, reg))

	assert.Equal(t, "weburl_seconds_count 2\nweburl_seconds_sum 2\nweburl_state{origin=\"http://a.example\"} 2\n", buf.String())
}
