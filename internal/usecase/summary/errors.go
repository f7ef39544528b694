// Package summary provides the use case for producing article summaries.
// It implements the request policy around the extractive summarizer:
// cache lookup, full-text retrieval, fallback selection, and request logging.
package summary

import "errors"

// Sentinel errors for summary use case operations.
var (
	// ErrInvalidArticleURL indicates that the requested article URL failed
	// validation. The URL must be an absolute http or https URL pointing at
	// a public host.
	ErrInvalidArticleURL = errors.New("invalid article URL")
)
