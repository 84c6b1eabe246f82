package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// writeMetrics prints the weburl_* metrics gathered from g (the default
// registry when nil), one "name{labels} value" line each. Histograms are
// written as their _count and _sum.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "weburl_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			labels := formatLabels(m.GetLabel())

			var err error
			switch mf.GetType() {
			case dto.MetricType_GAUGE:
				_, err = fmt.Fprintf(w, "%s%s %g\n", name, labels, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				_, err = fmt.Fprintf(w, "%s_count%s %d\n%s_sum%s %g\n",
					name, labels, h.GetSampleCount(), name, labels, h.GetSampleSum())
			default:
				_, err = fmt.Fprintf(w, "%s%s %g\n", name, labels, m.GetCounter().GetValue())
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	labels := make([]string, len(pairs))
	for i, lp := range pairs {
		labels[i] = fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	return "{" + strings.Join(labels, ",") + "}"
}
