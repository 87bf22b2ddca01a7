package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text for matching: compatibility decomposition, diacritics
// removed, lower case, punctuation treated as a word break and whitespace
// collapsed. "Citroën" and "citroen" normalise to the same string, as do
// "Land Rover" and "land-rover".
func Normalize(s string) string {
	// transform.Chain keeps state, so build one per call.
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}
