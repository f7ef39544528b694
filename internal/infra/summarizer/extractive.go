// Package summarizer implements extractive text summarization with classical
// term-weighting techniques. No generative model is involved: the summary is
// a subset of the source's own sentences, selected by TF-IDF-style scoring
// with a lead bias, filtered for redundancy, and trimmed to a word budget.
// The pipeline is deterministic, explainable, and fast enough to run inline
// on every request.
package summarizer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"newsbrief/internal/utils/text"
)

// Extractive implements the summary use case's Summarizer interface with the
// extractive pipeline. It is stateless apart from its options and metrics
// recorder and is safe for concurrent use; every call segments, scores, and
// selects against its own local vocabulary, so there is no cross-call state.
type Extractive struct {
	opts            Options
	metricsRecorder SummaryMetricsRecorder
}

// NewExtractive creates an extractive summarizer with the given options.
// It returns a configuration error when the options are invalid; data-shape
// degeneracies (empty input, no usable vocabulary, short sources) are handled
// internally at summarize time and never produce errors.
func NewExtractive(opts Options) (*Extractive, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	slog.Info("initialized extractive summarizer",
		slog.Int("min_words", opts.MinWords),
		slog.Int("max_words", opts.MaxWords),
		slog.Int("max_sentences", opts.MaxSentences),
		slog.Float64("redundancy_threshold", opts.RedundancyThreshold),
		slog.Bool("use_bigrams", opts.UseBigrams))

	return &Extractive{
		opts:            opts,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}, nil
}

// WithMetricsRecorder replaces the metrics recorder. Intended for tests that
// want to observe recordings without a Prometheus registry.
func (e *Extractive) WithMetricsRecorder(rec SummaryMetricsRecorder) *Extractive {
	e.metricsRecorder = rec
	return e
}

// Summarize runs the full pipeline on text and returns the summary.
//
// The returned string is empty when segmentation finds no usable sentence;
// callers must check for emptiness and substitute their own fallback. A
// source whose total word count is within the MinWords floor is returned
// whitespace-normalized and otherwise verbatim. The error result exists only
// to satisfy the Summarizer interface shared with remote implementations;
// the extractive pipeline never fails on arbitrary text.
func (e *Extractive) Summarize(_ context.Context, input string) (string, error) {
	start := time.Now()
	out := Extract(input, e.opts)
	e.record(input, out, time.Since(start))
	return out, nil
}

// Extract is the pure pipeline: Segment → short-circuit checks → Score →
// Select → Trim. It assumes opts have been validated.
func Extract(input string, opts Options) string {
	normalized := normalizeWhitespace(input)
	if normalized == "" {
		return ""
	}

	sentences := SplitSentences(normalized, opts.SentenceMinChars)
	if len(sentences) == 0 {
		return ""
	}

	// Short source: nothing to extract, the whole text fits the floor.
	// Segmentation is checked first so fragment-only input stays empty.
	if text.CountWords(normalized) <= opts.MinWords {
		return normalized
	}

	scores := ScoreSentences(sentences, opts)
	selected := SelectSentences(sentences, scores, opts)
	return Assemble(sentences, selected, opts.MaxWords)
}

func (e *Extractive) record(input, output string, elapsed time.Duration) {
	if e.metricsRecorder == nil {
		return
	}
	e.metricsRecorder.RecordDuration(elapsed)
	e.metricsRecorder.RecordWords(text.CountWords(output))
	switch {
	case output == "":
		e.metricsRecorder.RecordOutcome(OutcomeEmpty)
	case strings.HasSuffix(output, Ellipsis):
		e.metricsRecorder.RecordOutcome(OutcomeTruncated)
	case normalizeWhitespace(input) == output:
		e.metricsRecorder.RecordOutcome(OutcomePassthrough)
	default:
		e.metricsRecorder.RecordOutcome(OutcomeExtracted)
	}
}
