// Package metrics exposes Prometheus metrics for the background prefetch
// worker. HTTP request metrics live in the handler package; these cover the
// scheduled headline warm-up runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PrefetchRunsTotal counts completed prefetch cycles by outcome.
	PrefetchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefetch_runs_total",
			Help: "Completed headline prefetch cycles by outcome",
		},
		[]string{"status"},
	)

	// HeadlinesPrefetchedTotal counts headlines loaded into the cache per category.
	HeadlinesPrefetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headlines_prefetched_total",
			Help: "Headlines loaded into the cache by the prefetch worker",
		},
		[]string{"category"},
	)

	// PrefetchErrorsTotal counts per-category prefetch failures.
	PrefetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefetch_errors_total",
			Help: "Headline prefetch failures by category",
		},
		[]string{"category"},
	)

	// PrefetchDuration observes how long a full prefetch cycle takes.
	PrefetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prefetch_duration_seconds",
			Help:    "Duration of a full headline prefetch cycle",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// RecordPrefetchRun records one completed prefetch cycle.
func RecordPrefetchRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	PrefetchRunsTotal.WithLabelValues(status).Inc()
	PrefetchDuration.Observe(duration.Seconds())
}

// RecordHeadlinesPrefetched records headlines cached for one category.
func RecordHeadlinesPrefetched(category string, count int) {
	HeadlinesPrefetchedTotal.WithLabelValues(category).Add(float64(count))
}

// RecordPrefetchError records a failed category fetch.
func RecordPrefetchError(category string) {
	PrefetchErrorsTotal.WithLabelValues(category).Inc()
}
