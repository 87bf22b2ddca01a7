package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logogrip/internal/domain"
	"logogrip/internal/search"
)

func dataset(gen uint64, names ...string) *domain.Dataset {
	ds := &domain.Dataset{Generation: gen}
	for _, n := range names {
		ds.Entities = append(ds.Entities, domain.Entity{Name: n, Slug: search.Normalize(n)})
	}
	return ds
}

func TestIndexMemoReusesIndex(t *testing.T) {
	var m IndexMemo
	opts := search.DefaultOptions()
	ds := dataset(1, "Volkswagen")

	first := m.Get(ds, opts)
	second := m.Get(ds, opts)

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Builds())
}

func TestIndexMemoRebuildsOnNewGeneration(t *testing.T) {
	var m IndexMemo
	opts := search.DefaultOptions()

	first := m.Get(dataset(1, "Volkswagen"), opts)
	second := m.Get(dataset(2, "Volkswagen", "Volvo"), opts)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 2, m.Builds())
}

func TestIndexMemoRebuildsOnOptionChange(t *testing.T) {
	var m IndexMemo
	ds := dataset(1, "Volkswagen")

	m.Get(ds, search.DefaultOptions())
	looser := search.DefaultOptions()
	looser.Threshold = 0.6
	idx := m.Get(ds, looser)

	assert.Equal(t, 0.6, idx.Options().Threshold)
	assert.Equal(t, 2, m.Builds())
}

func TestIndexMemoInvalidate(t *testing.T) {
	var m IndexMemo
	ds := dataset(1, "Volkswagen")

	m.Get(ds, search.DefaultOptions())
	m.Invalidate()
	m.Get(ds, search.DefaultOptions())
	assert.Equal(t, 2, m.Builds())
}

func TestIndexMemoNilDataset(t *testing.T) {
	var m IndexMemo
	idx := m.Get(nil, search.DefaultOptions())
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Search("anything"))
}
