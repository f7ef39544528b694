package summarizer

import (
	"math"
	"strings"
	"unicode"
)

// scoringTokens extracts the terms used for vectorization from a sentence:
// lower-cased alphanumeric tokens of at least two characters, with stop words
// removed. This is deliberately stricter than the whitespace tokenization
// backing the redundancy check.
func scoringTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// termsFor returns the terms of one sentence: unigram tokens, plus adjacent
// two-word phrases when bigrams are enabled.
func termsFor(text string, useBigrams bool) []string {
	tokens := scoringTokens(text)
	if !useBigrams || len(tokens) < 2 {
		return tokens
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// ScoreSentences reduces each sentence of the document to a scalar importance
// score. The result is index-aligned with the input.
//
// The weighting is TF-IDF over the document's own sentences: the vocabulary
// keeps terms present in at least MinDocCount sentences and in no more than
// MaxDocFrac of all sentences, a term's weight in a sentence is its in-sentence
// frequency scaled by log-rarity across sentences, and a sentence's raw score
// is the sum of its term weights. Raw scores are then multiplied by a
// positional curve decaying linearly from LeadBiasHigh at the first sentence
// to LeadBiasLow at the last.
//
// When the vocabulary filter leaves nothing usable (very short documents with
// no repeated terms), every sentence falls back to a neutral unit weight so
// the caller always receives a score per input sentence. The positional curve
// still applies, keeping ranking deterministic and lead-first.
func ScoreSentences(sentences []Sentence, opts Options) []float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}

	// Document frequency per term, counting each term once per sentence.
	termLists := make([][]string, n)
	docFreq := make(map[string]int)
	for i, s := range sentences {
		terms := termsFor(s.Text, opts.UseBigrams)
		termLists[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			docFreq[t]++
		}
	}

	// Vocabulary filter: drop idiosyncratic noise and near-universal terms.
	maxDoc := opts.MaxDocFrac * float64(n)
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		if df < opts.MinDocCount || float64(df) > maxDoc {
			continue
		}
		idf[term] = math.Log(float64(n+1)/float64(df+1)) + 1
	}

	scores := make([]float64, n)
	if len(idf) == 0 {
		// Degenerate vocabulary: neutral equal weighting.
		for i := range scores {
			scores[i] = 1
		}
	} else {
		for i, terms := range termLists {
			freq := make(map[string]int, len(terms))
			for _, t := range terms {
				if _, ok := idf[t]; ok {
					freq[t]++
				}
			}
			var sum float64
			for term, tf := range freq {
				sum += float64(tf) * idf[term]
			}
			scores[i] = sum
		}
	}

	for i := range scores {
		scores[i] *= positionMultiplier(i, n, opts.LeadBiasHigh, opts.LeadBiasLow)
	}
	return scores
}

// positionMultiplier returns the lead-bias factor for sentence i of n: a
// linear ramp from high at i=0 down to low at i=n-1. A single-sentence
// document gets the high value.
func positionMultiplier(i, n int, high, low float64) float64 {
	if n <= 1 {
		return high
	}
	return high - (high-low)*float64(i)/float64(n-1)
}
