package summarizer

import "sort"

// SelectSentences greedily picks sentence indices in descending score order
// until the selection reaches opts.MinWords words or opts.MaxSentences
// sentences, whichever comes first. Scores must be index-aligned with
// sentences.
//
// A candidate is skipped when the fraction of its distinct words already
// covered by earlier picks exceeds opts.RedundancyThreshold; it restates
// content the summary has. A sentence with an empty word set is never skipped
// (its overlap ratio is defined as zero). Equal scores are broken by lower
// original index, which keeps selection deterministic.
//
// The greedy pass never reconsiders earlier picks; a globally optimal
// selection is not the contract. If the ranking is exhausted before either
// stop condition, whatever was selected is returned, which may fall short of
// MinWords for short documents.
//
// The returned indices are in acceptance (score) order; the trimmer restores
// document order.
func SelectSentences(sentences []Sentence, scores []float64, opts Options) []int {
	ranked := make([]int, len(sentences))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	var (
		selected   []int
		usedWords  = make(map[string]struct{})
		totalWords int
	)

	for _, idx := range ranked {
		if totalWords >= opts.MinWords || len(selected) >= opts.MaxSentences {
			break
		}

		s := sentences[idx]
		if overlapRatio(s.wordSet, usedWords) > opts.RedundancyThreshold {
			continue
		}

		selected = append(selected, idx)
		for w := range s.wordSet {
			usedWords[w] = struct{}{}
		}
		totalWords += s.wordCount
	}
	return selected
}

// overlapRatio returns the fraction of candidate words already present in
// used. An empty candidate set yields zero.
func overlapRatio(candidate, used map[string]struct{}) float64 {
	if len(candidate) == 0 {
		return 0
	}
	shared := 0
	for w := range candidate {
		if _, ok := used[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(candidate))
}
