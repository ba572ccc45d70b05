// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package copurchase

import (
	"errors"
	"sort"
)

// ErrDataUnavailable is returned when co-purchase shards or the snapshot
// cannot be read.
var ErrDataUnavailable = errors.New("co-purchase data unavailable")

// Pair is one raw co-purchase record: the number of baskets that held both
// articles. The pair is unordered.
type Pair struct {
	A     int64 `json:"article_id_1"`
	B     int64 `json:"article_id_2"`
	Count int64 `json:"count"`
}

// Partner is one article bought together with a base article, with the
// summed basket count.
type Partner struct {
	ID    int64 `json:"article_id"`
	Count int64 `json:"count"`
}

// Builder accumulates pair records into an Index. Counts of repeated pairs
// are summed regardless of the order of the two identifiers.
type Builder struct {
	partners map[int64]map[int64]int64
	records  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{partners: make(map[int64]map[int64]int64)}
}

// Add records one pair. Self pairs and non-positive counts are ignored and
// reported as false.
func (b *Builder) Add(p Pair) bool {
	if p.A == p.B || p.Count <= 0 || p.A <= 0 || p.B <= 0 {
		return false
	}
	b.records++
	b.link(p.A, p.B, p.Count)
	b.link(p.B, p.A, p.Count)
	return true
}

func (b *Builder) link(from, to, count int64) {
	m, ok := b.partners[from]
	if !ok {
		m = make(map[int64]int64)
		b.partners[from] = m
	}
	m[to] += count
}

// Index returns the built index. The builder must not be used afterwards.
func (b *Builder) Index() *Index {
	ix := &Index{partners: b.partners, records: b.records}
	b.partners = nil
	return ix
}

// Index is an immutable co-purchase lookup keyed by article identifier.
// It is safe for concurrent reads.
type Index struct {
	partners map[int64]map[int64]int64
	records  int
}

// NewIndex builds an index from raw pair records.
func NewIndex(pairs []Pair) *Index {
	b := NewBuilder()
	for _, p := range pairs {
		b.Add(p)
	}
	return b.Index()
}

// PartnersOf returns every article co-purchased with id and the summed
// count. The returned map is a copy owned by the caller. An article without
// history yields an empty map.
func (ix *Index) PartnersOf(id int64) map[int64]int64 {
	src := ix.partners[id]
	out := make(map[int64]int64, len(src))
	for p, c := range src {
		out[p] = c
	}
	return out
}

// Partners returns the partners of id ordered by count descending, then by
// identifier ascending. A limit of zero or less returns all of them.
func (ix *Index) Partners(id int64, limit int) []Partner {
	src := ix.partners[id]
	out := make([]Partner, 0, len(src))
	for p, c := range src {
		out = append(out, Partner{ID: p, Count: c})
	}
	sortPartners(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// HasHistory reports whether id appears in any pair record.
func (ix *Index) HasHistory(id int64) bool {
	return len(ix.partners[id]) > 0
}

// Records returns the number of raw pair records that were accepted.
func (ix *Index) Records() int {
	return ix.records
}

// Articles returns the number of articles with at least one partner.
func (ix *Index) Articles() int {
	return len(ix.partners)
}

func sortPartners(ps []Partner) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Count != ps[j].Count {
			return ps[i].Count > ps[j].Count
		}
		return ps[i].ID < ps[j].ID
	})
}
