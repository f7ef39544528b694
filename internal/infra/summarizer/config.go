package summarizer

import (
	"log/slog"
	"os"
	"strconv"
)

// LoadOptionsFromEnv loads summarizer options from environment variables,
// starting from DefaultOptions. Invalid values fall back to the default for
// that field with a warning log; the returned options always validate.
//
// Environment variables:
//   - SUMMARIZER_MIN_WORDS: word-count floor for selection (default: 100)
//   - SUMMARIZER_MAX_WORDS: hard word ceiling (default: 120)
//   - SUMMARIZER_MAX_SENTENCES: sentence-count ceiling (default: 10)
//   - SUMMARIZER_REDUNDANCY_THRESHOLD: overlap skip threshold 0..1 (default: 0.6)
//   - SUMMARIZER_LEAD_BIAS_HIGH: positional multiplier at the first sentence (default: 1.6)
//   - SUMMARIZER_LEAD_BIAS_LOW: positional multiplier at the last sentence (default: 0.7)
//   - SUMMARIZER_SENTENCE_MIN_CHARS: fragment filter threshold (default: 40)
//   - SUMMARIZER_USE_BIGRAMS: "true" adds two-word phrases to the vocabulary (default: false)
func LoadOptionsFromEnv() Options {
	opts := DefaultOptions()

	opts.MinWords = envInt("SUMMARIZER_MIN_WORDS", opts.MinWords)
	opts.MaxWords = envInt("SUMMARIZER_MAX_WORDS", opts.MaxWords)
	opts.MaxSentences = envInt("SUMMARIZER_MAX_SENTENCES", opts.MaxSentences)
	opts.RedundancyThreshold = envFloat("SUMMARIZER_REDUNDANCY_THRESHOLD", opts.RedundancyThreshold)
	opts.LeadBiasHigh = envFloat("SUMMARIZER_LEAD_BIAS_HIGH", opts.LeadBiasHigh)
	opts.LeadBiasLow = envFloat("SUMMARIZER_LEAD_BIAS_LOW", opts.LeadBiasLow)
	opts.SentenceMinChars = envInt("SUMMARIZER_SENTENCE_MIN_CHARS", opts.SentenceMinChars)
	opts.UseBigrams = envBool("SUMMARIZER_USE_BIGRAMS", opts.UseBigrams)

	if err := opts.Validate(); err != nil {
		slog.Warn("summarizer options from environment are inconsistent, using defaults",
			slog.String("error", err.Error()))
		return DefaultOptions()
	}
	return opts
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", fallback))
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("invalid float environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Float64("default", fallback))
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Bool("default", fallback))
		return fallback
	}
	return parsed
}
