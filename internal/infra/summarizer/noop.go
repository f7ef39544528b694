package summarizer

import (
	"context"
	"strings"
)

// NoOp is a summarizer that returns the input clipped to a fixed word count
// without any scoring. Useful in tests and development wiring where the
// extraction pipeline is not under test.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the whitespace-normalized text truncated to the default
// word budget, with an ellipsis when truncation occurred.
func (n *NoOp) Summarize(_ context.Context, text string) (string, error) {
	words := strings.Fields(text)
	if len(words) <= DefaultMaxWords {
		return strings.Join(words, " "), nil
	}
	return strings.Join(words[:DefaultMaxWords], " ") + Ellipsis, nil
}
