// Package entity defines the core domain entities and validation logic for
// the application. It contains the fundamental business objects such as
// Article and SummaryLog, along with their validation rules and
// domain-specific errors.
package entity

import "time"

// Article represents one normalized headline from the upstream news provider.
// Raw provider entries without a title or URL are discarded during
// normalization, so an Article always has both.
type Article struct {
	ID          string
	Title       string
	Description string
	Content     string // truncated body as supplied by the provider
	ImageURL    string
	Source      string
	SourceURL   string
	Category    string
	PublishedAt time.Time
}

// Summary is the result of summarizing one article, together with where the
// text came from. A summary is never empty: when extraction produces nothing
// the service falls back to the provider description, and failing that to a
// static placeholder.
type Summary struct {
	Text       string
	Source     SummarySource
	IsFallback bool
}

// SummarySource identifies how a summary was produced.
type SummarySource string

const (
	// SummaryGenerated means the extractive pipeline produced the text.
	SummaryGenerated SummarySource = "generated"
	// SummaryDescription means the provider-supplied description was used
	// because extraction was not possible (paywall, short source).
	SummaryDescription SummarySource = "description"
	// SummaryPlaceholder means the static placeholder was returned.
	SummaryPlaceholder SummarySource = "placeholder"
	// SummaryCache means a previously generated result was served.
	SummaryCache SummarySource = "cache"
)
