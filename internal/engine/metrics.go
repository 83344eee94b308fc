// internal/engine/metrics.go
package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transformTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biostat_transform_invocations_total",
		Help: "Transform invocations by page, transform and kind",
	}, []string{"page", "transform", "kind"})

	transformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biostat_transform_duration_seconds",
		Help:    "Time spent computing one transform",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"page", "transform"})

	sessionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biostat_sessions_open",
		Help: "Interactive sessions currently held by the store",
	})
)

func observe(page string, t *Transform, d time.Duration) {
	transformTotal.WithLabelValues(page, t.Name, t.Kind.String()).Inc()
	transformDuration.WithLabelValues(page, t.Name).Observe(d.Seconds())
}
