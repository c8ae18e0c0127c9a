package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks how long report computation takes.
type Metrics struct {
	Duration *prometheus.HistogramVec
}

// New creates the report metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_report_duration_seconds",
			Help:    "Time spent computing a report",
			Buckets: prometheus.DefBuckets,
		}, []string{"report"}),
	}
}

// ObserveDuration records the time elapsed since start for the named report.
func (m *Metrics) ObserveDuration(report string, start time.Time) {
	if m != nil {
		m.Duration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}
