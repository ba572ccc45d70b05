// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// Config contains all tunables of the outfit engine. Every weight and
// threshold is a fixed heuristic.
type Config struct {
	// Scoring selects the color model and style weight.
	Scoring ScoringConfig `json:"scoring"`

	// Similar controls the similarity neighborhood used when an article has
	// no direct co-purchase signal.
	Similar SimilarConfig `json:"similar"`

	// Pool holds the thresholds a co-purchase candidate must pass.
	Pool PoolConfig `json:"pool"`

	// Fallback controls catalog sampling for thin pools.
	Fallback FallbackConfig `json:"fallback"`

	// CrossCheck controls the cross-category display score.
	CrossCheck CrossCheckConfig `json:"cross_check"`

	// Limits contains per-request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// SameDepartment restricts candidates to the base article's index name.
	// Default: true.
	SameDepartment bool `json:"same_department"`

	// Seed is the default seed of the fallback draw. Requests may override it.
	// Default: 42.
	Seed int64 `json:"seed"`
}

// ScoringConfig selects the compatibility model.
type ScoringConfig struct {
	// ColorModel is "hue_wheel" or "palette".
	// Default: "hue_wheel".
	ColorModel string `json:"color_model"`

	// StyleWeight multiplies the style score in the hybrid score.
	// Default: 1.5.
	StyleWeight float64 `json:"style_weight"`
}

// SimilarConfig controls the similarity neighborhood.
type SimilarConfig struct {
	// Neighbors is the number of similar articles whose partners are used.
	// Default: 20.
	Neighbors int `json:"neighbors"`

	// SameTypeMin is the number of same product type articles required
	// before the neighborhood is restricted to that product type.
	// Default: 5.
	SameTypeMin int `json:"same_type_min"`

	// MemoSize is the number of neighborhoods kept in memory.
	// Default: 4096.
	MemoSize int `json:"memo_size"`
}

// PoolConfig holds the candidate pool thresholds.
type PoolConfig struct {
	// MinStyle is the minimum style score.
	// Default: 3.
	MinStyle float64 `json:"min_style"`

	// MinColor is the minimum color score.
	// Default: 3.
	MinColor float64 `json:"min_color"`

	// MinScore is the minimum hybrid score.
	// Default: 5.
	MinScore float64 `json:"min_score"`

	// Size is the number of candidates kept per category before the
	// cross-check.
	// Default: 10.
	Size int `json:"size"`
}

// FallbackConfig controls catalog sampling.
type FallbackConfig struct {
	// SafeColors are color group names sorted to the front of the draw.
	SafeColors []string `json:"safe_colors"`

	// Window is the number of articles the draw is taken from.
	// Default: 50.
	Window int `json:"window"`

	// Oversample multiplies the number of missing candidates to draw.
	// Default: 5.
	Oversample int `json:"oversample"`

	// MinScore is the minimum hybrid score of a drawn candidate.
	// Default: 7.
	MinScore float64 `json:"min_score"`
}

// CrossCheckConfig controls the cross-category display score.
type CrossCheckConfig struct {
	// Enabled turns the pass on.
	// Default: true.
	Enabled bool `json:"enabled"`

	// Peers is the number of top items taken from every other category.
	// Default: 3.
	Peers int `json:"peers"`

	// OwnWeight is the share of the item's own score in the display score.
	// Default: 0.6.
	OwnWeight float64 `json:"own_weight"`
}

// LimitsConfig contains per-request limits.
type LimitsConfig struct {
	// DefaultPerCategory is the number of items returned per category.
	// Default: 3.
	DefaultPerCategory int `json:"default_per_category"`

	// MaxPerCategory caps the per-category quota of a request.
	// Default: 10.
	MaxPerCategory int `json:"max_per_category"`

	// MaxExclude caps the number of excluded identifiers of a request.
	// Default: 500.
	MaxExclude int `json:"max_exclude"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultSafeColors are the colors preferred by the fallback draw.
var DefaultSafeColors = []string{
	"black", "white", "off white", "grey", "dark grey", "light grey",
	"blue", "dark blue", "denim blue",
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ColorModel:  scoring.ModelHueWheel,
			StyleWeight: scoring.DefaultStyleWeight,
		},
		Similar: SimilarConfig{
			Neighbors:   20,
			SameTypeMin: 5,
			MemoSize:    4096,
		},
		Pool: PoolConfig{
			MinStyle: 3,
			MinColor: 3,
			MinScore: 5,
			Size:     10,
		},
		Fallback: FallbackConfig{
			SafeColors: append([]string(nil), DefaultSafeColors...),
			Window:     50,
			Oversample: 5,
			MinScore:   7,
		},
		CrossCheck: CrossCheckConfig{
			Enabled:   true,
			Peers:     3,
			OwnWeight: 0.6,
		},
		Limits: LimitsConfig{
			DefaultPerCategory: 3,
			MaxPerCategory:     10,
			MaxExclude:         500,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		SameDepartment: true,
		Seed:           42,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if _, err := scoring.ModelByName(c.Scoring.ColorModel); err != nil {
		return fmt.Errorf("scoring.color_model: %w", err)
	}
	if c.Scoring.StyleWeight <= 0 {
		return fmt.Errorf("scoring.style_weight must be positive, got %f", c.Scoring.StyleWeight)
	}

	if c.Similar.Neighbors < 1 {
		return fmt.Errorf("similar.neighbors must be positive, got %d", c.Similar.Neighbors)
	}
	if c.Similar.SameTypeMin < 0 {
		return fmt.Errorf("similar.same_type_min must be non-negative, got %d", c.Similar.SameTypeMin)
	}
	if c.Similar.MemoSize < 1 {
		return fmt.Errorf("similar.memo_size must be positive, got %d", c.Similar.MemoSize)
	}

	if c.Pool.Size < 1 {
		return fmt.Errorf("pool.size must be positive, got %d", c.Pool.Size)
	}

	if c.Fallback.Window < 1 {
		return fmt.Errorf("fallback.window must be positive, got %d", c.Fallback.Window)
	}
	if c.Fallback.Oversample < 1 {
		return fmt.Errorf("fallback.oversample must be positive, got %d", c.Fallback.Oversample)
	}

	if c.CrossCheck.Peers < 1 {
		return fmt.Errorf("cross_check.peers must be positive, got %d", c.CrossCheck.Peers)
	}
	if c.CrossCheck.OwnWeight < 0 || c.CrossCheck.OwnWeight > 1 {
		return fmt.Errorf("cross_check.own_weight must be in [0, 1], got %f", c.CrossCheck.OwnWeight)
	}

	if c.Limits.DefaultPerCategory < 1 {
		return fmt.Errorf("limits.default_per_category must be positive, got %d", c.Limits.DefaultPerCategory)
	}
	if c.Limits.MaxPerCategory < c.Limits.DefaultPerCategory {
		return fmt.Errorf("limits.max_per_category must be >= limits.default_per_category, got %d < %d",
			c.Limits.MaxPerCategory, c.Limits.DefaultPerCategory)
	}
	if c.Limits.MaxPerCategory > c.Pool.Size {
		return fmt.Errorf("limits.max_per_category must be <= pool.size, got %d > %d", c.Limits.MaxPerCategory, c.Pool.Size)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Fallback.SafeColors = append([]string(nil), c.Fallback.SafeColors...)
	return &out
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		*Alias
		Cache cacheJSON `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
