package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dshills/gpareport/internal/dataset"
)

// Metrics are the service's Prometheus collectors.
type Metrics struct {
	reports     *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	rows        prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gpareport",
			Name:      "reports_total",
			Help:      "Report requests by outcome.",
		}, []string{"outcome"}),
		diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gpareport",
			Name:      "diagnostics_total",
			Help:      "Row diagnostics raised while loading input, by kind.",
		}, []string{"kind"}),
		rows: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gpareport",
			Name:      "input_rows",
			Help:      "Number of course rows per report request.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 8),
		}),
	}
}

func (m *Metrics) observe(d dataset.Diagnostics, rows int) {
	m.rows.Observe(float64(rows))
	for _, iss := range d.Issues {
		m.diagnostics.WithLabelValues(string(iss.Kind)).Inc()
	}
}
