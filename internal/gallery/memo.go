package gallery

import (
	"logogrip/internal/domain"
	"logogrip/internal/search"
)

// IndexMemo keeps the search index derived from the current dataset.
// The index is rebuilt only when the dataset generation or the search
// options change.
type IndexMemo struct {
	index      *search.Index
	generation uint64
	opts       search.Options
	valid      bool
	builds     int
}

// Get returns the index for ds, building it if needed. A nil dataset
// yields an empty index.
func (m *IndexMemo) Get(ds *domain.Dataset, opts search.Options) *search.Index {
	var generation uint64
	if ds != nil {
		generation = ds.Generation
	}

	if m.valid && m.generation == generation && m.opts.Equal(opts) {
		return m.index
	}

	var entities []domain.Entity
	if ds != nil {
		entities = ds.Entities
	}
	m.index = search.NewIndex(entities, opts)
	m.generation = generation
	m.opts = opts
	m.valid = true
	m.builds++
	return m.index
}

// Invalidate forces the next Get to rebuild
func (m *IndexMemo) Invalidate() {
	m.valid = false
}

// Builds returns how many indexes have been built
func (m *IndexMemo) Builds() int { return m.builds }
