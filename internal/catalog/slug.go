package catalog

import (
	"regexp"
	"strings"

	"logogrip/internal/search"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a lower-case, hyphen separated slug
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify derives a slug from a display name: "Citroën DS" -> "citroen-ds"
func Slugify(name string) string {
	folded := search.Normalize(name)

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
