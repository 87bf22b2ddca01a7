package catalog

import (
	"context"
	"time"

	"logogrip/internal/domain"
)

// Report summarises one manifest load
type Report struct {
	Total    int
	Kept     int
	Rejected []Rejection
}

// Load fetches, decodes and normalises a manifest. The returned dataset
// has generation 0; the Service assigns generations.
func Load(ctx context.Context, src Source, n *Normalizer) (*domain.Dataset, Report, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, Report{}, err
	}

	raw, err := Decode(data)
	if err != nil {
		return nil, Report{}, err
	}

	entities, rejected := n.Normalize(raw)
	ds := &domain.Dataset{
		Entities: entities,
		Origin:   src.Origin(),
		LoadedAt: time.Now(),
	}
	return ds, Report{Total: len(raw), Kept: len(entities), Rejected: rejected}, nil
}
