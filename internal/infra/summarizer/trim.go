package summarizer

import (
	"sort"
	"strings"

	"newsbrief/internal/utils/text"
)

// Ellipsis marks a summary that was cut at the word budget. It is appended
// directly after the last retained word with no separating space.
const Ellipsis = "…"

// Assemble rebuilds the final summary from the selected sentence indices:
// indices are sorted ascending to restore original reading order, the
// sentence texts are joined with single spaces, and the result is truncated
// to maxWords words with an ellipsis appended when the budget was exceeded.
//
// An empty selection yields an empty string. The summarizer never invents
// placeholder text; substituting a fallback message is the caller's job.
func Assemble(sentences []Sentence, selected []int, maxWords int) string {
	if len(selected) == 0 {
		return ""
	}

	ordered := make([]int, len(selected))
	copy(ordered, selected)
	sort.Ints(ordered)

	texts := make([]string, len(ordered))
	for i, idx := range ordered {
		texts[i] = sentences[idx].Text
	}
	assembled := strings.Join(texts, " ")

	if text.CountWords(assembled) <= maxWords {
		return assembled
	}
	words := strings.Fields(assembled)
	return strings.Join(words[:maxWords], " ") + Ellipsis
}
