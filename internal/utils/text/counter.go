// Package text provides small utilities for text measurement shared by the
// summarization pipeline and its callers. Counting is rune- and field-based
// so multi-byte characters and irregular whitespace behave consistently
// everywhere a threshold is applied.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Thresholds on sentence length use runes instead of bytes so that
// multi-byte characters are not over-counted.
//
// Examples:
//
//	CountRunes("hello")    // returns 5
//	CountRunes("héllo")    // returns 5
//	CountRunes("")         // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts whitespace-separated words. This is the measure behind
// every word budget in the summarizer: the selection floor, the hard output
// ceiling, and the minimum-source policy all count words this way.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
