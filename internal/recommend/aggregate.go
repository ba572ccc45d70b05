// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// Aggregator assembles co-purchase candidates for a base article. Direct
// partners come first; the partners of the base's similarity neighborhood
// stand in when a category has no direct partner.
//
// It only reads the catalog and index and is safe for concurrent use.
type Aggregator struct {
	catalog *catalog.Catalog
	index   *copurchase.Index
	scorer  *scoring.Scorer
	cfg     SimilarConfig

	// neighbors memoizes similarity neighborhoods of catalog articles.
	neighbors *lru.Cache[int64, []int64]
}

// NewAggregator creates an aggregator over a catalog and index.
func NewAggregator(cat *catalog.Catalog, ix *copurchase.Index, scorer *scoring.Scorer, cfg SimilarConfig) (*Aggregator, error) {
	memo, err := lru.New[int64, []int64](max(cfg.MemoSize, 1))
	if err != nil {
		return nil, fmt.Errorf("neighbor memo: %w", err)
	}
	return &Aggregator{
		catalog:   cat,
		index:     ix,
		scorer:    scorer,
		cfg:       cfg,
		neighbors: memo,
	}, nil
}

// gatherOptions tune one gather call.
type gatherOptions struct {
	mergeSimilar bool
	exclude      map[int64]struct{}
}

// CandidatesFor returns the co-purchase candidates of base in one target
// category, ordered by count descending then identifier. It returns an empty
// slice when neither the base nor its neighborhood has partners there.
func (a *Aggregator) CandidatesFor(base *catalog.Article, target catalog.Macro) []Candidate {
	return a.gather(base, []catalog.Macro{target}, gatherOptions{})[target]
}

// gather collects candidates for every target in one pass over the index.
func (a *Aggregator) gather(base *catalog.Article, targets []catalog.Macro, opts gatherOptions) map[catalog.Macro][]Candidate {
	wanted := make(map[catalog.Macro]struct{}, len(targets))
	for _, m := range targets {
		if m.Defined() {
			wanted[m] = struct{}{}
		}
	}

	pools := make(map[catalog.Macro]map[int64]Candidate, len(wanted))
	direct := a.index.PartnersOf(base.ID)
	a.addPartners(pools, wanted, base, direct, ProvenanceDirect, opts.exclude)

	var similar map[int64]int64
	for m := range wanted {
		if len(pools[m]) > 0 && !opts.mergeSimilar {
			continue
		}
		if similar == nil {
			similar = a.similarPartners(base)
		}
		a.addPartners(pools, map[catalog.Macro]struct{}{m: {}}, base, similar, ProvenanceSimilar, opts.exclude)
	}

	out := make(map[catalog.Macro][]Candidate, len(pools))
	for m, pool := range pools {
		list := make([]Candidate, 0, len(pool))
		for _, c := range pool {
			list = append(list, c)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Count != list[j].Count {
				return list[i].Count > list[j].Count
			}
			return list[i].Article.ID < list[j].Article.ID
		})
		out[m] = list
	}
	return out
}

// addPartners merges partners into the pools of the wanted categories.
// A partner reached twice keeps the higher provenance and the summed count.
func (a *Aggregator) addPartners(
	pools map[catalog.Macro]map[int64]Candidate,
	wanted map[catalog.Macro]struct{},
	base *catalog.Article,
	partners map[int64]int64,
	prov Provenance,
	exclude map[int64]struct{},
) {
	for id, count := range partners {
		if id == base.ID {
			continue
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		art, err := a.catalog.Lookup(id)
		if err != nil || !art.Macro.Defined() {
			continue
		}
		if _, ok := wanted[art.Macro]; !ok {
			continue
		}

		pool := pools[art.Macro]
		if pool == nil {
			pool = make(map[int64]Candidate)
			pools[art.Macro] = pool
		}
		c, seen := pool[id]
		if !seen {
			pool[id] = Candidate{Article: art, Count: count, Provenance: prov}
			continue
		}
		c.Count += count
		if prov.precedence() > c.Provenance.precedence() {
			c.Provenance = prov
		}
		pool[id] = c
	}
}

// similarPartners sums the partners of the base's neighborhood.
func (a *Aggregator) similarPartners(base *catalog.Article) map[int64]int64 {
	out := make(map[int64]int64)
	for _, id := range a.Neighbors(base) {
		for partner, count := range a.index.PartnersOf(id) {
			if partner == base.ID {
				continue
			}
			out[partner] += count
		}
	}
	return out
}

// Neighbors returns the similarity neighborhood of base: up to
// SimilarConfig.Neighbors articles of the same macro-category ranked by
// hybrid score against base. When at least SameTypeMin of them share the
// base's product type, only those are considered. An undefined
// macro-category has no neighborhood. The returned slice is shared and
// must not be modified.
func (a *Aggregator) Neighbors(base *catalog.Article) []int64 {
	if !base.Macro.Defined() {
		return nil
	}
	memoize := a.catalog.Contains(base.ID)
	if memoize {
		if ids, ok := a.neighbors.Get(base.ID); ok {
			return ids
		}
	}

	pool := a.catalog.Filter(catalog.Filter{
		Macro:   base.Macro,
		Exclude: map[int64]struct{}{base.ID: {}},
	})
	if base.ProductType != "" {
		var sameType []*catalog.Article
		for _, art := range pool {
			if art.ProductType == base.ProductType {
				sameType = append(sameType, art)
			}
		}
		if len(sameType) > 0 && len(sameType) >= a.cfg.SameTypeMin {
			pool = sameType
		}
	}

	type ranked struct {
		id    int64
		score float64
	}
	rs := make([]ranked, len(pool))
	for i, art := range pool {
		rs[i] = ranked{id: art.ID, score: a.scorer.Hybrid(base, art)}
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].score > rs[j].score
	})

	n := min(a.cfg.Neighbors, len(rs))
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = rs[i].id
	}

	if memoize {
		a.neighbors.Add(base.ID, ids)
	}
	return ids
}
