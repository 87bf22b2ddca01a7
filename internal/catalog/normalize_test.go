package catalog

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logogrip/internal/domain"
)

func TestNormalize(t *testing.T) {
	raw := []domain.Entity{
		{Name: "  Land   Rover ", Slug: "land-rover", Image: domain.Image{Path: "images/land-rover.png"}},
		{Name: "Citroën", Image: domain.Image{URL: "images/citroen.png"}},
		{Name: "Volkswagen", Slug: "volkswagen"},
		{Name: "", Slug: "nameless"},
		{Name: "Bad Slug", Slug: "Bad Slug"},
		{Name: "Land Rover Again", Slug: "land-rover"},
		{},
	}

	got, rejected := NewNormalizer(nil).Normalize(raw)

	require.Len(t, got, 3)
	assert.Equal(t, domain.Entity{
		Name:  "Land Rover",
		Slug:  "land-rover",
		Image: domain.Image{Path: "images/land-rover.png"},
	}, got[0])

	assert.Equal(t, "citroen", got[1].Slug, "slug derived from name")
	assert.Equal(t, "images/citroen.png", got[1].Image.Path, "legacy url key")
	assert.Empty(t, got[1].Image.URL)

	assert.Equal(t, domain.PlaceholderImagePath, got[2].Image.Path)

	require.Len(t, rejected, 4)
	assert.Equal(t, 3, rejected[0].Index)
	assert.Contains(t, rejected[0].Reason, "name is required")
	assert.Equal(t, 4, rejected[1].Index)
	assert.Contains(t, rejected[1].Reason, "not a valid slug")
	assert.Equal(t, 5, rejected[2].Index)
	assert.Contains(t, rejected[2].Reason, "duplicate slug")
	assert.Equal(t, 6, rejected[3].Index)
}

func TestNormalizeEmpty(t *testing.T) {
	got, rejected := NewNormalizer(nil).Normalize(nil)
	assert.Empty(t, got)
	assert.Empty(t, rejected)
}

func TestRegisterSlugRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerSlugRule(v))

	assert.NoError(t, v.Var("land-rover", "slug"))
	assert.Error(t, v.Var("Bad Slug", "slug"))
	assert.Error(t, v.Var("trailing-", "slug"))

	assert.NotPanics(t, func() { NewNormalizer(nil) })
}
