package gallery

import (
	"net/url"
	"strings"

	"logogrip/internal/domain"
)

// Link builds the shareable link for entity: <base>/<slug>. Without a base
// the upstream image URL is used, and failing that the bare slug.
func Link(base string, entity domain.Entity) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		if entity.Image.Source != "" {
			return entity.Image.Source
		}
		return entity.Slug
	}
	return base + "/" + url.PathEscape(entity.Slug)
}
