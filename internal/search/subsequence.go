package search

import "github.com/sahilm/fuzzy"

// subsequencePattern matches when every rune of the query appears in the
// key in order. The score is the share of the matched span taken up by
// unmatched runes, so a contiguous match scores 0.
type subsequencePattern struct {
	text      string
	threshold float64
}

func newSubsequencePattern(query string, opts Options) *subsequencePattern {
	return &subsequencePattern{text: query, threshold: opts.Threshold}
}

func (p *subsequencePattern) match(text string, _ []rune) (float64, bool) {
	if p.text == text {
		return 0, true
	}

	matches := fuzzy.Find(p.text, []string{text})
	if len(matches) == 0 {
		return 1, false
	}

	idx := matches[0].MatchedIndexes
	if len(idx) == 0 {
		return 1, false
	}
	span := idx[len(idx)-1] - idx[0] + 1
	score := 0.0
	if span > len(idx) {
		score = float64(span-len(idx)) / float64(span)
	}
	score = max(minScore, score)
	return score, score <= p.threshold
}
