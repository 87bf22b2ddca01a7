package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"logogrip/internal/domain"
)

// ErrNotArray is returned when the manifest is not a JSON array
var ErrNotArray = errors.New("manifest is not a JSON array")

// Decode parses a manifest. The document must be a JSON array; elements
// that fail to decode become zero entities so Normalize can drop and
// report them alongside other invalid records.
func Decode(data []byte) ([]domain.Entity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	entities := make([]domain.Entity, len(raw))
	for i, r := range raw {
		var e domain.Entity
		if err := json.Unmarshal(r, &e); err != nil {
			continue
		}
		entities[i] = e
	}
	return entities, nil
}
