package search

import (
	"cmp"
	"slices"

	"logogrip/internal/domain"
)

// Result is one ranked match
type Result struct {
	Entity   domain.Entity
	Score    float64 // 0 is a perfect match
	Position int     // index of the entity in the dataset
}

type field struct {
	text  string
	runes []rune
}

type record struct {
	entity domain.Entity
	fields []field
}

// matcher is a query compiled for one algorithm
type matcher interface {
	match(text string, textRunes []rune) (float64, bool)
}

// Index is a searchable view of a dataset. It is immutable once built.
type Index struct {
	records []record
	opts    Options
}

// NewIndex builds an index over entities. Building twice from the same
// entities and options yields indexes that answer every query identically.
func NewIndex(entities []domain.Entity, opts Options) *Index {
	opts = opts.normalized()
	idx := &Index{
		records: make([]record, len(entities)),
		opts:    opts,
	}

	for i, e := range entities {
		fields := make([]field, 0, len(opts.Keys))
		for _, k := range opts.Keys {
			text := Normalize(keyValue(e, k))
			if text == "" {
				continue
			}
			fields = append(fields, field{text: text, runes: []rune(text)})
		}
		idx.records[i] = record{entity: e, fields: fields}
	}
	return idx
}

func keyValue(e domain.Entity, k Key) string {
	switch k {
	case KeySlug:
		return e.Slug
	default:
		return e.Name
	}
}

// Len returns the number of indexed entities
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Options returns the effective options of the index
func (idx *Index) Options() Options {
	return idx.opts
}

// Search returns the entities matching query, best match first.
// The empty query returns every entity in dataset order.
func (idx *Index) Search(query string) []domain.Entity {
	results := idx.Results(query)
	out := make([]domain.Entity, len(results))
	for i, r := range results {
		out[i] = r.Entity
	}
	return out
}

// Results is Search with scores attached
func (idx *Index) Results(query string) []Result {
	if idx == nil {
		return []Result{}
	}

	if query == "" {
		out := make([]Result, len(idx.records))
		for i, rec := range idx.records {
			out[i] = Result{Entity: rec.entity, Position: i}
		}
		return out
	}

	q := Normalize(query)
	if q == "" {
		return []Result{}
	}

	m := idx.compile(q)
	out := make([]Result, 0)
	for i, rec := range idx.records {
		best, found := 1.0, false
		for _, f := range rec.fields {
			score, ok := m.match(f.text, f.runes)
			if ok && (!found || score < best) {
				best, found = score, true
			}
		}
		if found {
			out = append(out, Result{Entity: rec.entity, Score: best, Position: i})
		}
	}

	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return out
}

func (idx *Index) compile(query string) matcher {
	if idx.opts.Algorithm == AlgorithmSubsequence {
		return newSubsequencePattern(query, idx.opts)
	}
	return newBitapPattern(query, idx.opts)
}

// Search runs query against idx. A nil index matches nothing.
func Search(idx *Index, query string) []domain.Entity {
	if idx == nil {
		return []domain.Entity{}
	}
	return idx.Search(query)
}
