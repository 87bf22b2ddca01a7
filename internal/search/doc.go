// Package search implements the gallery search engine.
//
// An Index is built once per dataset and answers queries with entities
// ranked best match first. Two matchers are available:
//
//   - bitap: approximate substring matching that tolerates typos. Scores
//     combine the error count and the distance from the expected location,
//     normalised so 0 is a perfect match and 1 is no match at all.
//   - subsequence: in-order character matching, scored by how spread out
//     the matched characters are.
//
// Keys and queries are normalised identically (see Normalize), so a query
// equal to an entity's name always finds that entity.
//
// Usage:
//
//	idx := search.NewIndex(entities, search.DefaultOptions())
//	for _, e := range idx.Search("volks") {
//	    fmt.Println(e.Name)
//	}
//
// An Index is immutable and safe for concurrent use.
package search
