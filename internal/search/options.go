package search

import "fmt"

// Key names an entity field the index matches against
type Key string

const (
	KeyName  Key = "name"
	KeySlug  Key = "slug"
	KeyLabel Key = "label" // alias of name
)

// Algorithm selects the matcher
type Algorithm string

const (
	AlgorithmBitap       Algorithm = "bitap"
	AlgorithmSubsequence Algorithm = "subsequence"
)

// DefaultThreshold is the default match-looseness threshold
const DefaultThreshold = 0.3

// Options tunes index construction and scoring
type Options struct {
	// Threshold is the highest score that still counts as a match.
	// 0 only accepts exact matches, 1 accepts almost anything.
	Threshold float64
	Keys      []Key
	Algorithm Algorithm

	// Location is where in a key the pattern is expected to start.
	// Distance controls how quickly a match far from Location loses score.
	Location       int
	Distance       int
	IgnoreLocation bool
}

// DefaultOptions returns the options used by the gallery
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Keys:      []Key{KeyName, KeySlug},
		Algorithm: AlgorithmBitap,
		Location:  0,
		Distance:  100,
	}
}

// ParseKeys converts configuration strings into keys
func ParseKeys(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, n := range names {
		switch k := Key(n); k {
		case KeyName, KeySlug, KeyLabel:
			keys = append(keys, k)
		default:
			return nil, fmt.Errorf("unknown search key %q", n)
		}
	}
	return keys, nil
}

// Equal reports whether two option sets produce equivalent indexes
func (o Options) Equal(other Options) bool {
	a, b := o.normalized(), other.normalized()
	if a.Threshold != b.Threshold || a.Algorithm != b.Algorithm ||
		a.Location != b.Location || a.Distance != b.Distance ||
		a.IgnoreLocation != b.IgnoreLocation || len(a.Keys) != len(b.Keys) {
		return false
	}
	for i := range a.Keys {
		if a.Keys[i] != b.Keys[i] {
			return false
		}
	}
	return true
}

// normalized fills unset fields, resolves the label alias and drops
// duplicate keys.
func (o Options) normalized() Options {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmBitap
	}
	if o.Threshold < 0 {
		o.Threshold = 0
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	if o.Location < 0 {
		o.Location = 0
	}

	src := o.Keys
	if len(src) == 0 {
		src = []Key{KeyName, KeySlug}
	}
	keys := make([]Key, 0, len(src))
	seen := make(map[Key]bool, len(src))
	for _, k := range src {
		if k == KeyLabel {
			k = KeyName
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	o.Keys = keys
	return o
}
