package summarizer

import (
	"strings"

	"newsbrief/internal/utils/text"
)

// Sentence is one ordered unit of the segmented document.
//
// Index is the sentence's 0-based position in the source and is the stable
// sort key used everywhere downstream. The distinct-word set is lower-cased
// and whitespace-tokenized; it backs the redundancy check only and is not
// the tokenization used for scoring.
type Sentence struct {
	Index int
	Text  string

	wordSet   map[string]struct{}
	wordCount int
}

// WordCount returns the number of whitespace-separated words in the sentence.
func (s Sentence) WordCount() int { return s.wordCount }

// normalizeWhitespace collapses all whitespace runs (spaces, tabs, newlines)
// to single spaces and trims the result.
func normalizeWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// isSentenceEnd reports whether b is sentence-final punctuation.
func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// SplitSentences normalizes whitespace in the input and splits it into
// sentences on sentence-final punctuation followed by a space. The
// punctuation stays attached to the preceding sentence. Fragments shorter
// than minChars after trimming are discarded; they are headers, captions,
// or bylines rather than standalone statements.
//
// The returned slice may be empty. Callers must treat that as a normal case
// and short-circuit instead of scoring an empty document.
func SplitSentences(input string, minChars int) []Sentence {
	normalized := normalizeWhitespace(input)
	if normalized == "" {
		return nil
	}

	var parts []string
	start := 0
	for i := 0; i < len(normalized)-1; i++ {
		if isSentenceEnd(normalized[i]) && normalized[i+1] == ' ' {
			parts = append(parts, normalized[start:i+1])
			start = i + 2 // the boundary space is consumed
			i++
		}
	}
	if start < len(normalized) {
		parts = append(parts, normalized[start:])
	}

	sentences := make([]Sentence, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if text.CountRunes(part) <= minChars {
			continue
		}
		sentences = append(sentences, newSentence(len(sentences), part))
	}
	return sentences
}

// newSentence builds a Sentence with its distinct-word set precomputed.
func newSentence(index int, raw string) Sentence {
	words := strings.Fields(strings.ToLower(raw))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return Sentence{
		Index:     index,
		Text:      raw,
		wordSet:   set,
		wordCount: len(words),
	}
}
