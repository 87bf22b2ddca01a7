package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"logogrip/internal/domain"
)

// ReadManifest loads the manifest at path. A missing file yields no
// entities and no error.
func ReadManifest(path string) ([]domain.Entity, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Decode(data)
}

// Merge combines an existing manifest with freshly scraped entities.
// Existing entries are kept as they are, new slugs are added, and the
// result is sorted by name.
func Merge(existing, fresh []domain.Entity) []domain.Entity {
	out := make([]domain.Entity, 0, len(existing)+len(fresh))
	seen := make(map[string]bool, len(existing)+len(fresh))

	for _, group := range [][]domain.Entity{existing, fresh} {
		for _, e := range group {
			if e.Slug == "" || seen[e.Slug] {
				continue
			}
			seen[e.Slug] = true
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Entity) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

// EncodeManifest renders entities as an indented JSON array
func EncodeManifest(entities []domain.Entity) ([]byte, error) {
	if entities == nil {
		entities = []domain.Entity{}
	}
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteManifest writes entities to path unless the file already holds the
// same content. It reports whether the file was written.
func WriteManifest(path string, entities []domain.Entity) (bool, error) {
	data, err := EncodeManifest(entities)
	if err != nil {
		return false, err
	}

	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create manifest directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("failed to replace manifest: %w", err)
	}
	return true, nil
}
