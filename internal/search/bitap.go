package search

import "math"

// maxBits is the longest pattern one bitap pass can handle
const maxBits = 32

// minScore is reported for non-identical matches so they always rank behind
// an exact key match.
const minScore = 0.001

type bitapChunk struct {
	pattern  []rune
	alphabet map[rune]uint64
	offset   int
}

// bitapPattern is a compiled query. Patterns longer than maxBits are split
// into chunks that are matched independently.
type bitapPattern struct {
	text   string
	chunks []bitapChunk
	opts   Options
}

func newBitapPattern(query string, opts Options) *bitapPattern {
	p := &bitapPattern{text: query, opts: opts}
	rs := []rune(query)

	addChunk := func(part []rune, offset int) {
		p.chunks = append(p.chunks, bitapChunk{
			pattern:  part,
			alphabet: patternAlphabet(part),
			offset:   offset,
		})
	}

	if len(rs) <= maxBits {
		addChunk(rs, 0)
		return p
	}

	remainder := len(rs) % maxBits
	end := len(rs) - remainder
	for i := 0; i < end; i += maxBits {
		addChunk(rs[i:i+maxBits], i)
	}
	if remainder > 0 {
		start := len(rs) - maxBits
		addChunk(rs[start:], start)
	}
	return p
}

// match scores text against the pattern. The bool reports whether the
// score is within the threshold.
func (p *bitapPattern) match(text string, textRunes []rune) (float64, bool) {
	if p.text == text {
		return 0, true
	}

	total := 0.0
	matched := false
	for _, c := range p.chunks {
		opts := p.opts
		opts.Location += c.offset
		score, ok := bitapSearch(textRunes, c.pattern, c.alphabet, opts)
		if ok {
			matched = true
		}
		total += score
	}

	score := total / float64(len(p.chunks))
	return score, matched && score <= p.opts.Threshold
}

// patternAlphabet maps every rune of the pattern to the bitmask of the
// positions it occupies, with the first rune in the highest bit.
func patternAlphabet(pattern []rune) map[rune]uint64 {
	alphabet := make(map[rune]uint64, len(pattern))
	n := len(pattern)
	for i, r := range pattern {
		alphabet[r] |= 1 << uint(n-i-1)
	}
	return alphabet
}

func computeScore(patternLen, errors, currentLocation, expectedLocation int, opts Options) float64 {
	accuracy := float64(errors) / float64(patternLen)
	if opts.IgnoreLocation {
		return accuracy
	}

	proximity := currentLocation - expectedLocation
	if proximity < 0 {
		proximity = -proximity
	}
	if opts.Distance == 0 {
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(opts.Distance)
}

// bitapSearch finds the best approximate occurrence of pattern in text.
// It returns the best score found and whether any occurrence scored within
// the threshold. Without an occurrence the score is 1.
func bitapSearch(text, pattern []rune, alphabet map[rune]uint64, opts Options) (float64, bool) {
	patternLen := len(pattern)
	textLen := len(text)
	if patternLen == 0 {
		return 1, false
	}

	expectedLocation := max(0, min(opts.Location, textLen))
	threshold := opts.Threshold
	best := 1.0
	bestLocation := -1

	// Exact occurrences tighten the threshold before the approximate pass.
	for from := expectedLocation; ; {
		idx := indexRunes(text, pattern, from)
		if idx < 0 {
			break
		}
		score := computeScore(patternLen, 0, idx, expectedLocation, opts)
		threshold = math.Min(score, threshold)
		from = idx + patternLen
	}

	mask := uint64(1) << uint(patternLen-1)
	binMax := patternLen + textLen
	var lastBitArr []uint64

	for i := 0; i < patternLen; i++ {
		// Binary search for how far from the expected location a match
		// with i errors may lie and still beat the threshold.
		binMin := 0
		binMid := binMax
		for binMin < binMid {
			if computeScore(patternLen, i, expectedLocation+binMid, expectedLocation, opts) <= threshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := max(1, expectedLocation-binMid+1)
		finish := min(expectedLocation+binMid, textLen) + patternLen
		if opts.IgnoreLocation {
			finish = textLen + patternLen
		}

		bitArr := make([]uint64, finish+2)
		bitArr[finish+1] = (uint64(1) << uint(i)) - 1

		for j := finish; j >= start; j-- {
			currentLocation := j - 1
			var charMatch uint64
			if currentLocation < textLen {
				charMatch = alphabet[text[currentLocation]]
			}

			bitArr[j] = ((bitArr[j+1] << 1) | 1) & charMatch
			if i > 0 {
				bitArr[j] |= ((at(lastBitArr, j+1) | at(lastBitArr, j)) << 1) | 1 | at(lastBitArr, j+1)
			}

			if bitArr[j]&mask != 0 {
				score := computeScore(patternLen, i, currentLocation, expectedLocation, opts)
				if score <= threshold {
					threshold = score
					best = score
					bestLocation = currentLocation
					if bestLocation <= expectedLocation {
						break
					}
					start = max(1, 2*expectedLocation-bestLocation)
				}
			}
		}

		// No better match is possible with one more error.
		if computeScore(patternLen, i+1, expectedLocation, expectedLocation, opts) > threshold {
			break
		}
		lastBitArr = bitArr
	}

	if bestLocation < 0 {
		return 1, false
	}
	return math.Max(minScore, best), true
}

func at(arr []uint64, i int) uint64 {
	if i < 0 || i >= len(arr) {
		return 0
	}
	return arr[i]
}

// indexRunes is strings.Index over rune slices, starting at from
func indexRunes(text, pattern []rune, from int) int {
	n := len(pattern)
	for i := from; i+n <= len(text); i++ {
		found := true
		for k := 0; k < n; k++ {
			if text[i+k] != pattern[k] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
