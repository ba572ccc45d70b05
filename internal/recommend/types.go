// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"time"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// Provenance tells how a candidate reached a category pool.
type Provenance string

const (
	// ProvenanceDirect candidates were co-purchased with the base article.
	ProvenanceDirect Provenance = "direct"
	// ProvenanceSimilar candidates were co-purchased with articles similar
	// to the base article.
	ProvenanceSimilar Provenance = "similar"
	// ProvenanceFallback candidates were drawn from the catalog without
	// co-purchase evidence.
	ProvenanceFallback Provenance = "fallback"
)

// precedence orders provenances for deduplication: direct > similar > fallback.
func (p Provenance) precedence() int {
	switch p {
	case ProvenanceDirect:
		return 3
	case ProvenanceSimilar:
		return 2
	case ProvenanceFallback:
		return 1
	default:
		return 0
	}
}

// Candidate is an article proposed for one outfit slot.
type Candidate struct {
	// Article is the catalog entry. It is shared and must not be modified.
	Article *catalog.Article `json:"article"`

	// Count is the summed co-purchase count. Zero for fallback candidates.
	Count int64 `json:"count"`

	// Provenance is how the candidate was found.
	Provenance Provenance `json:"provenance"`

	// Score is the compatibility breakdown against the base article.
	Score scoring.Breakdown `json:"score"`

	// Display is the score the final order is based on. It equals
	// Score.Hybrid unless the cross-check blended in the other categories.
	Display float64 `json:"display_score"`
}

// ID returns the candidate's article identifier.
func (c *Candidate) ID() int64 {
	return c.Article.ID
}

// Upload describes a garment that is not in the catalog, typically a
// photographed item whose color came from the photo-color signal.
type Upload struct {
	Macro       catalog.Macro `json:"macro_category" validate:"required,oneof=TOP BOTTOM OUTERWEAR SHOES ACCESSORY"`
	ColourGroup string        `json:"colour_group_name" validate:"required,max=64"`
	ProductType string        `json:"product_type_name,omitempty" validate:"max=64"`
	Name        string        `json:"prod_name,omitempty" validate:"max=128"`
	IndexName   string        `json:"index_name,omitempty" validate:"max=64"`
}

// Article returns the virtual base article. Its identifier is zero, which no
// catalog article uses.
func (u *Upload) Article() catalog.Article {
	name := u.Name
	if name == "" {
		name = "Uploaded item"
	}
	return catalog.Derive(catalog.Article{
		Name:                  name,
		ProductType:           u.ProductType,
		IndexName:             u.IndexName,
		ColourGroup:           u.ColourGroup,
		PerceivedColourMaster: u.ColourGroup,
		Macro:                 u.Macro,
	})
}

// Request is one outfit recommendation request. The zero value of every
// optional field selects the configured default.
type Request struct {
	// BaseID is the catalog article to build the outfit around. Ignored when
	// Upload is set.
	BaseID int64 `json:"base_id,omitempty"`

	// Upload replaces the catalog base article with a virtual one.
	Upload *Upload `json:"upload,omitempty"`

	// Targets restricts the categories to fill. When none of them is a
	// default target, the default targets are used.
	Targets []catalog.Macro `json:"targets,omitempty"`

	// Exclude lists articles never to return.
	Exclude []int64 `json:"exclude,omitempty"`

	// PerCategory is the number of items per category.
	// Defaults to Config.Limits.DefaultPerCategory and is capped at
	// Config.Limits.MaxPerCategory.
	PerCategory int `json:"per_category,omitempty"`

	// Seed drives the fallback draw. Zero selects Config.Seed.
	Seed int64 `json:"seed,omitempty"`

	// Weather adjusts base to candidate scores when set.
	Weather scoring.Condition `json:"weather,omitempty"`

	// MergeSimilar also merges similarity-derived candidates when direct
	// co-purchase candidates exist.
	MergeSimilar bool `json:"merge_similar,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Category is one filled outfit slot.
type Category struct {
	Macro catalog.Macro `json:"macro_category"`
	Items []Candidate   `json:"items"`
}

// Response is a recommendation set. Categories follow catalog.DisplayOrder
// and categories without candidates are omitted.
type Response struct {
	// Base is the article the outfit was built around.
	Base *catalog.Article `json:"base"`

	// Categories holds the ranked candidates per target category.
	Categories []Category `json:"categories"`

	// Empty reports that no category could be filled. It is an outcome, not
	// an error.
	Empty bool `json:"empty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// Category returns the items of one category, or nil when it was omitted.
func (r *Response) Category(m catalog.Macro) []Candidate {
	for i := range r.Categories {
		if r.Categories[i].Macro == m {
			return r.Categories[i].Items
		}
	}
	return nil
}

// Outfit returns the category items keyed by macro-category.
func (r *Response) Outfit() map[catalog.Macro][]Candidate {
	out := make(map[catalog.Macro][]Candidate, len(r.Categories))
	for _, c := range r.Categories {
		out[c.Macro] = c.Items
	}
	return out
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Targets are the categories that were considered.
	Targets []catalog.Macro `json:"targets"`

	// PerCategory is the effective per-category quota.
	PerCategory int `json:"per_category"`

	// Seed is the effective seed of the fallback draw.
	Seed int64 `json:"seed"`

	// ColorModel is the color model used for scoring.
	ColorModel string `json:"color_model"`

	// Weather is the condition applied, if any.
	Weather scoring.Condition `json:"weather,omitempty"`

	// Provenance counts the returned items by provenance.
	Provenance map[Provenance]int `json:"provenance"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
}
