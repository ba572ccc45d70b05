// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// Sampler fills thin category pools with catalog articles that have no
// co-purchase evidence. Draws are seeded per call, so identical inputs give
// identical picks.
type Sampler struct {
	catalog        *catalog.Catalog
	scorer         *scoring.Scorer
	cfg            FallbackConfig
	pool           PoolConfig
	sameDepartment bool
	safe           map[string]struct{}
}

// NewSampler creates a sampler over a catalog.
func NewSampler(cat *catalog.Catalog, scorer *scoring.Scorer, cfg FallbackConfig, pool PoolConfig, sameDepartment bool) *Sampler {
	safe := make(map[string]struct{}, len(cfg.SafeColors))
	for _, c := range cfg.SafeColors {
		safe[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	return &Sampler{
		catalog:        cat,
		scorer:         scorer,
		cfg:            cfg,
		pool:           pool,
		sameDepartment: sameDepartment,
		safe:           safe,
	}
}

// Draw describes one top-up.
type Draw struct {
	// Seed seeds the pseudo-random draw.
	Seed int64

	// Weather adjusts the candidate scores when set.
	Weather scoring.Condition

	// Exclude lists articles never to draw.
	Exclude map[int64]struct{}

	// Accept filters drawn articles before scoring. Nil accepts all.
	Accept func(*catalog.Article) bool
}

// TopUp draws up to needed fallback candidates for the target category and
// returns them appended to existing, re-ranked by hybrid score then count
// and truncated to len(existing)+needed. existing is not modified.
//
// The draw takes the safe colors first, keeps a window of
// FallbackConfig.Window articles, samples needed*Oversample of them and
// keeps those passing the pool thresholds with the higher fallback minimum.
// An empty catalog pool yields existing unchanged.
//
//nolint:gocritic // hugeParam: d passed by value for immutability
func (s *Sampler) TopUp(existing []Candidate, target catalog.Macro, base *catalog.Article, needed int, d Draw) []Candidate {
	out := make([]Candidate, len(existing), len(existing)+max(needed, 0))
	copy(out, existing)
	if needed <= 0 || !target.Defined() {
		return out
	}

	picks := s.draw(out, target, base, needed, d)
	if len(picks) == 0 {
		return out
	}
	out = append(out, picks...)
	rankCandidates(out)
	return out[:min(len(out), len(existing)+needed)]
}

func (s *Sampler) draw(existing []Candidate, target catalog.Macro, base *catalog.Article, needed int, d Draw) []Candidate {
	exclude := make(map[int64]struct{}, len(d.Exclude)+len(existing)+1)
	for id := range d.Exclude {
		exclude[id] = struct{}{}
	}
	for i := range existing {
		exclude[existing[i].Article.ID] = struct{}{}
	}
	exclude[base.ID] = struct{}{}

	f := catalog.Filter{Macro: target, Exclude: exclude}
	if s.sameDepartment {
		f.IndexName = base.IndexName
	}
	pool := s.catalog.Filter(f)
	if d.Accept != nil {
		kept := pool[:0:0]
		for _, art := range pool {
			if d.Accept(art) {
				kept = append(kept, art)
			}
		}
		pool = kept
	}
	if len(pool) == 0 {
		return nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return s.isSafe(pool[i]) && !s.isSafe(pool[j])
	})
	if len(pool) > s.cfg.Window {
		pool = pool[:s.cfg.Window]
	}

	rng := rand.New(rand.NewSource(d.Seed)) //nolint:gosec // reproducible draw, not security sensitive
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	pool = pool[:min(len(pool), needed*s.cfg.Oversample)]

	var picks []Candidate
	for _, art := range pool {
		b := s.scorer.ScoreInWeather(base, art, d.Weather)
		if b.Style < s.pool.MinStyle || b.Color < s.pool.MinColor || b.Hybrid < s.cfg.MinScore {
			continue
		}
		picks = append(picks, Candidate{
			Article:    art,
			Provenance: ProvenanceFallback,
			Score:      b,
			Display:    b.Hybrid,
		})
	}
	rankCandidates(picks)
	return picks[:min(len(picks), needed)]
}

func (s *Sampler) isSafe(a *catalog.Article) bool {
	_, ok := s.safe[strings.ToLower(strings.TrimSpace(a.ColourGroup))]
	return ok
}

// rankCandidates sorts by hybrid score descending, then count descending.
// Equal candidates keep their order.
func rankCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Score.Hybrid != cs[j].Score.Hybrid {
			return cs[i].Score.Hybrid > cs[j].Score.Hybrid
		}
		return cs[i].Count > cs[j].Count
	})
}
