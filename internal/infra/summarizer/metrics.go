package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome classifies how a summarization call ended.
type Outcome string

const (
	// OutcomeExtracted means sentences were selected and fit the budget.
	OutcomeExtracted Outcome = "extracted"
	// OutcomeTruncated means the assembled summary exceeded the word budget
	// and was cut at a word boundary.
	OutcomeTruncated Outcome = "truncated"
	// OutcomePassthrough means the source was short enough to return verbatim.
	OutcomePassthrough Outcome = "passthrough"
	// OutcomeEmpty means segmentation found no usable sentence.
	OutcomeEmpty Outcome = "empty"
)

// SummaryMetricsRecorder abstracts metrics recording for the summarizer.
// Injecting the interface keeps the pipeline testable without a Prometheus
// registry and leaves room for other metrics backends.
type SummaryMetricsRecorder interface {
	// RecordWords records the word length of a produced summary.
	RecordWords(words int)

	// RecordOutcome increments the counter for how the call ended.
	RecordOutcome(outcome Outcome)

	// RecordDuration records how long the pipeline took.
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics is the production SummaryMetricsRecorder.
type PrometheusSummaryMetrics struct {
	wordsHistogram    prometheus.Histogram
	outcomeCounter    *prometheus.CounterVec
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// NewPrometheusSummaryMetrics returns the process-wide Prometheus recorder.
// A singleton avoids duplicate collector registration when multiple
// summarizer instances are constructed (server and worker share a registry).
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			wordsHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_summary_words",
				Help:    "Word length of produced summaries.",
				Buckets: []float64{0, 20, 40, 60, 80, 100, 120, 160, 200},
			}),
			outcomeCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "summarizer_outcomes_total",
				Help: "Summarization calls by outcome.",
			}, []string{"outcome"}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_duration_seconds",
				Help:    "Time taken to produce a summary.",
				Buckets: prometheus.DefBuckets,
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordWords records the word length of a produced summary.
func (m *PrometheusSummaryMetrics) RecordWords(words int) {
	m.wordsHistogram.Observe(float64(words))
}

// RecordOutcome increments the counter for the given outcome.
func (m *PrometheusSummaryMetrics) RecordOutcome(outcome Outcome) {
	m.outcomeCounter.WithLabelValues(string(outcome)).Inc()
}

// RecordDuration records how long the pipeline took.
func (m *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	m.durationHistogram.Observe(duration.Seconds())
}

// NoopSummaryMetrics is a SummaryMetricsRecorder that discards everything.
type NoopSummaryMetrics struct{}

// RecordWords implements SummaryMetricsRecorder.
func (NoopSummaryMetrics) RecordWords(int) {}

// RecordOutcome implements SummaryMetricsRecorder.
func (NoopSummaryMetrics) RecordOutcome(Outcome) {}

// RecordDuration implements SummaryMetricsRecorder.
func (NoopSummaryMetrics) RecordDuration(time.Duration) {}
