package summarizer

import "fmt"

// Default option values. These match the behavior expected by the summary
// use case: a summary of roughly 100-120 words extracted from the article,
// with a strong preference for lead sentences.
const (
	DefaultMinWords            = 100
	DefaultMaxWords            = 120
	DefaultMaxSentences        = 10
	DefaultRedundancyThreshold = 0.6
	DefaultLeadBiasHigh        = 1.6
	DefaultLeadBiasLow         = 0.7
	DefaultSentenceMinChars    = 40
	DefaultMinDocCount         = 2
	DefaultMaxDocFrac          = 0.9
)

// Options controls the extractive summarization pipeline.
//
// All values are validated up front by Validate; the pipeline itself has no
// fatal error path for arbitrary input text, so misconfiguration is the only
// way a caller can get an error out of the summarizer.
type Options struct {
	// MinWords is the word-count floor for selection: sentences are accepted
	// until the running total reaches this value. Sources whose total word
	// count is at or below MinWords are returned verbatim (whitespace
	// normalized) without extraction.
	MinWords int

	// MaxWords is the hard ceiling on output length. Output exceeding it is
	// truncated at a word boundary and marked with an ellipsis.
	MaxWords int

	// MaxSentences caps how many sentences may be selected.
	MaxSentences int

	// RedundancyThreshold is the maximum fraction of a candidate sentence's
	// distinct words that may already appear in previously selected sentences.
	// Candidates above the threshold are skipped as restatements. Range 0..1.
	RedundancyThreshold float64

	// LeadBiasHigh and LeadBiasLow define the positional multiplier curve:
	// scores are scaled linearly from LeadBiasHigh at the first sentence down
	// to LeadBiasLow at the last. This is a deliberate lead-biased policy for
	// inverted-pyramid news writing, not a general-purpose default.
	LeadBiasHigh float64
	LeadBiasLow  float64

	// SentenceMinChars drops segmented fragments shorter than this many
	// characters (headers, captions, bylines). 40 works for general text;
	// news call sites use 50 to cut bylines more aggressively.
	SentenceMinChars int

	// UseBigrams adds adjacent two-word phrases to the scoring vocabulary,
	// which increases sensitivity to named entities and multi-word concepts.
	UseBigrams bool

	// MinDocCount drops terms appearing in fewer than this many sentences.
	MinDocCount int

	// MaxDocFrac drops terms appearing in more than this fraction of
	// sentences. Range (0..1].
	MaxDocFrac float64
}

// DefaultOptions returns the general-purpose configuration.
func DefaultOptions() Options {
	return Options{
		MinWords:            DefaultMinWords,
		MaxWords:            DefaultMaxWords,
		MaxSentences:        DefaultMaxSentences,
		RedundancyThreshold: DefaultRedundancyThreshold,
		LeadBiasHigh:        DefaultLeadBiasHigh,
		LeadBiasLow:         DefaultLeadBiasLow,
		SentenceMinChars:    DefaultSentenceMinChars,
		UseBigrams:          false,
		MinDocCount:         DefaultMinDocCount,
		MaxDocFrac:          DefaultMaxDocFrac,
	}
}

// LeadBiasedOptions returns the configuration used for news articles:
// a stricter fragment filter and a gentler positional curve.
func LeadBiasedOptions() Options {
	opts := DefaultOptions()
	opts.SentenceMinChars = 50
	opts.LeadBiasHigh = 1.2
	opts.LeadBiasLow = 0.8
	return opts
}

// Validate checks the options for configuration errors. It returns nil when
// the options describe a usable pipeline.
func (o Options) Validate() error {
	if o.MaxWords <= 0 {
		return fmt.Errorf("max words must be positive, got %d", o.MaxWords)
	}
	if o.MinWords <= 0 {
		return fmt.Errorf("min words must be positive, got %d", o.MinWords)
	}
	if o.MinWords > o.MaxWords {
		return fmt.Errorf("min words %d cannot exceed max words %d", o.MinWords, o.MaxWords)
	}
	if o.MaxSentences <= 0 {
		return fmt.Errorf("max sentences must be positive, got %d", o.MaxSentences)
	}
	if o.RedundancyThreshold < 0 || o.RedundancyThreshold > 1 {
		return fmt.Errorf("redundancy threshold must be in [0, 1], got %g", o.RedundancyThreshold)
	}
	if o.LeadBiasLow <= 0 {
		return fmt.Errorf("lead bias low must be positive, got %g", o.LeadBiasLow)
	}
	if o.LeadBiasHigh < o.LeadBiasLow {
		return fmt.Errorf("lead bias high %g cannot be below lead bias low %g", o.LeadBiasHigh, o.LeadBiasLow)
	}
	if o.SentenceMinChars < 0 {
		return fmt.Errorf("sentence min chars cannot be negative, got %d", o.SentenceMinChars)
	}
	if o.MinDocCount < 1 {
		return fmt.Errorf("min doc count must be at least 1, got %d", o.MinDocCount)
	}
	if o.MaxDocFrac <= 0 || o.MaxDocFrac > 1 {
		return fmt.Errorf("max doc frac must be in (0, 1], got %g", o.MaxDocFrac)
	}
	return nil
}
