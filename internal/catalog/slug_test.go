package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Volkswagen":      "volkswagen",
		"Land Rover":      "land-rover",
		"Citroën DS":      "citroen-ds",
		"Rolls-Royce":     "rolls-royce",
		"  Mercedes–Benz": "mercedes-benz",
		"Škoda":           "skoda",
		"Alfa Romeo 4C!":  "alfa-romeo-4c",
		"!!!":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestValidSlug(t *testing.T) {
	for _, s := range []string{"bmw", "land-rover", "a1", "mercedes-benz-2"} {
		assert.True(t, ValidSlug(s), s)
	}
	for _, s := range []string{"", "Land-Rover", "land rover", "-bmw", "bmw-", "a--b", "ü"} {
		assert.False(t, ValidSlug(s), s)
	}
}
