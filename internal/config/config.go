// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/signals/weather"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Copurchase CopurchaseConfig `koanf:"copurchase"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Weather    weather.Config   `koanf:"weather"`
	Images     ImagesConfig     `koanf:"images"`
	Security   SecurityConfig   `koanf:"security"`
	Cache      CacheConfig      `koanf:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig locates the filtered article catalog.
//
// Environment Variables:
//   - CATALOG_PATH: catalog CSV (default: data/articles_filtered.csv)
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// CopurchaseConfig locates the co-purchase data.
//
// The service reads the badger snapshot when SnapshotPath is set and the
// snapshot exists, and the CSV shards matching Glob otherwise.
//
// Environment Variables:
//   - COPURCHASE_GLOB: shard glob (default: data/copurchase_part_*.csv)
//   - COPURCHASE_SNAPSHOT_PATH: badger snapshot directory (default: empty, disabled)
//   - DATA_RELOAD_INTERVAL: periodic reload of catalog and index (default: 0, disabled)
type CopurchaseConfig struct {
	Glob           string        `koanf:"glob"`
	SnapshotPath   string        `koanf:"snapshot_path"`
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// RecommendConfig holds the outfit engine tunables. EngineConfig converts it,
// together with CacheConfig, to a recommend.Config.
type RecommendConfig struct {
	Scoring        ScoringConfig    `koanf:"scoring"`
	Similar        SimilarConfig    `koanf:"similar"`
	Pool           PoolConfig       `koanf:"pool"`
	Fallback       FallbackConfig   `koanf:"fallback"`
	CrossCheck     CrossCheckConfig `koanf:"cross_check"`
	Limits         LimitsConfig     `koanf:"limits"`
	SameDepartment bool             `koanf:"same_department"`
	Seed           int64            `koanf:"seed"`
}

// ScoringConfig selects the compatibility model.
type ScoringConfig struct {
	ColorModel  string  `koanf:"color_model"`
	StyleWeight float64 `koanf:"style_weight"`
}

// SimilarConfig controls the similarity neighborhood.
type SimilarConfig struct {
	Neighbors   int `koanf:"neighbors"`
	SameTypeMin int `koanf:"same_type_min"`
	MemoSize    int `koanf:"memo_size"`
}

// PoolConfig holds candidate pool thresholds.
type PoolConfig struct {
	MinStyle float64 `koanf:"min_style"`
	MinColor float64 `koanf:"min_color"`
	MinScore float64 `koanf:"min_score"`
	Size     int     `koanf:"size"`
}

// FallbackConfig controls the catalog draw for thin pools.
type FallbackConfig struct {
	SafeColors []string `koanf:"safe_colors"`
	Window     int      `koanf:"window"`
	Oversample int      `koanf:"oversample"`
	MinScore   float64  `koanf:"min_score"`
}

// CrossCheckConfig controls the cross-category display score.
type CrossCheckConfig struct {
	Enabled   bool    `koanf:"enabled"`
	Peers     int     `koanf:"peers"`
	OwnWeight float64 `koanf:"own_weight"`
}

// LimitsConfig holds per-request limits.
type LimitsConfig struct {
	DefaultPerCategory int `koanf:"default_per_category"`
	MaxPerCategory     int `koanf:"max_per_category"`
	MaxExclude         int `koanf:"max_exclude"`
}

// ImagesConfig locates product images. Both fields are optional.
type ImagesConfig struct {
	Root    string `koanf:"root"`
	BaseURL string `koanf:"base_url"`
}

// Resolver returns the image resolver for these settings.
func (c ImagesConfig) Resolver() catalog.ImageResolver {
	return catalog.ImageResolver{Root: c.Root, BaseURL: c.BaseURL}
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
	MaxUploadBytes    int64         `koanf:"max_upload_bytes"`
}

// CacheConfig holds recommendation response caching settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// EngineConfig returns the recommend.Config described by the recommend and
// cache sections.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Scoring: recommend.ScoringConfig{
			ColorModel:  r.Scoring.ColorModel,
			StyleWeight: r.Scoring.StyleWeight,
		},
		Similar: recommend.SimilarConfig{
			Neighbors:   r.Similar.Neighbors,
			SameTypeMin: r.Similar.SameTypeMin,
			MemoSize:    r.Similar.MemoSize,
		},
		Pool: recommend.PoolConfig{
			MinStyle: r.Pool.MinStyle,
			MinColor: r.Pool.MinColor,
			MinScore: r.Pool.MinScore,
			Size:     r.Pool.Size,
		},
		Fallback: recommend.FallbackConfig{
			SafeColors: append([]string(nil), r.Fallback.SafeColors...),
			Window:     r.Fallback.Window,
			Oversample: r.Fallback.Oversample,
			MinScore:   r.Fallback.MinScore,
		},
		CrossCheck: recommend.CrossCheckConfig{
			Enabled:   r.CrossCheck.Enabled,
			Peers:     r.CrossCheck.Peers,
			OwnWeight: r.CrossCheck.OwnWeight,
		},
		Limits: recommend.LimitsConfig{
			DefaultPerCategory: r.Limits.DefaultPerCategory,
			MaxPerCategory:     r.Limits.MaxPerCategory,
			MaxExclude:         r.Limits.MaxExclude,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL,
			MaxEntries: c.Cache.MaxEntries,
		},
		SameDepartment: r.SameDepartment,
		Seed:           r.Seed,
	}
}

// recommendDefaults mirrors recommend.DefaultConfig into the koanf layout.
func recommendDefaults() (RecommendConfig, CacheConfig) {
	d := recommend.DefaultConfig()
	return RecommendConfig{
			Scoring: ScoringConfig{
				ColorModel:  d.Scoring.ColorModel,
				StyleWeight: d.Scoring.StyleWeight,
			},
			Similar: SimilarConfig{
				Neighbors:   d.Similar.Neighbors,
				SameTypeMin: d.Similar.SameTypeMin,
				MemoSize:    d.Similar.MemoSize,
			},
			Pool: PoolConfig{
				MinStyle: d.Pool.MinStyle,
				MinColor: d.Pool.MinColor,
				MinScore: d.Pool.MinScore,
				Size:     d.Pool.Size,
			},
			Fallback: FallbackConfig{
				SafeColors: d.Fallback.SafeColors,
				Window:     d.Fallback.Window,
				Oversample: d.Fallback.Oversample,
				MinScore:   d.Fallback.MinScore,
			},
			CrossCheck: CrossCheckConfig{
				Enabled:   d.CrossCheck.Enabled,
				Peers:     d.CrossCheck.Peers,
				OwnWeight: d.CrossCheck.OwnWeight,
			},
			Limits: LimitsConfig{
				DefaultPerCategory: d.Limits.DefaultPerCategory,
				MaxPerCategory:     d.Limits.MaxPerCategory,
				MaxExclude:         d.Limits.MaxExclude,
			},
			SameDepartment: d.SameDepartment,
			Seed:           d.Seed,
		}, CacheConfig{
			Enabled:    d.Cache.Enabled,
			TTL:        d.Cache.TTL,
			MaxEntries: d.Cache.MaxEntries,
		}
}

// Load loads configuration using Koanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
