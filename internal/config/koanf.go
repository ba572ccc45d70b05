// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/outfitter/internal/signals/weather"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/outfitter/config.yaml",
	"/etc/outfitter/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	rec, rc := recommendDefaults()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path: "data/articles_filtered.csv",
		},
		Copurchase: CopurchaseConfig{
			Glob:           "data/copurchase_part_*.csv",
			SnapshotPath:   "",
			ReloadInterval: 0,
		},
		Recommend: rec,
		Weather:   weather.DefaultConfig(),
		Images: ImagesConfig{
			Root:    "data/images_sample",
			BaseURL: "",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
			MaxUploadBytes:    10 << 20,
		},
		Cache: rc,
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Built-in defaults
//  2. Optional config file (CONFIG_PATH or the DefaultConfigPaths)
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// loadFrom loads configuration with the given config file ("" for none).
func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// CATALOG_PATH -> catalog.path
	// RECOMMEND_COLOR_MODEL -> recommend.scoring.color_model
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FilePath returns the config file Load reads, or "" when there is none.
func FilePath() string {
	return findConfigFile()
}

// findConfigFile searches for a config file in CONFIG_PATH, then the default locations.
// Returns empty string if no config file is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
	"recommend.fallback.safe_colors",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercase environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Data
	"catalog_path":             "catalog.path",
	"copurchase_glob":          "copurchase.glob",
	"copurchase_snapshot_path": "copurchase.snapshot_path",
	"data_reload_interval":     "copurchase.reload_interval",

	// Images
	"images_root":     "images.root",
	"images_base_url": "images.base_url",

	// Recommendation engine
	"recommend_color_model":          "recommend.scoring.color_model",
	"recommend_style_weight":         "recommend.scoring.style_weight",
	"recommend_similar_neighbors":    "recommend.similar.neighbors",
	"recommend_same_type_min":        "recommend.similar.same_type_min",
	"recommend_memo_size":            "recommend.similar.memo_size",
	"recommend_min_style":            "recommend.pool.min_style",
	"recommend_min_color":            "recommend.pool.min_color",
	"recommend_min_score":            "recommend.pool.min_score",
	"recommend_pool_size":            "recommend.pool.size",
	"recommend_safe_colors":          "recommend.fallback.safe_colors",
	"recommend_fallback_window":      "recommend.fallback.window",
	"recommend_fallback_oversample":  "recommend.fallback.oversample",
	"recommend_fallback_min_score":   "recommend.fallback.min_score",
	"recommend_cross_check":          "recommend.cross_check.enabled",
	"recommend_cross_check_peers":    "recommend.cross_check.peers",
	"recommend_cross_check_own":      "recommend.cross_check.own_weight",
	"recommend_per_category":         "recommend.limits.default_per_category",
	"recommend_max_per_category":     "recommend.limits.max_per_category",
	"recommend_max_exclude":          "recommend.limits.max_exclude",
	"recommend_same_department":      "recommend.same_department",
	"recommend_seed":                 "recommend.seed",
	"recommend_cache_enabled":        "cache.enabled",
	"recommend_cache_ttl":            "cache.ttl",
	"recommend_cache_max_entries":    "cache.max_entries",

	// Weather
	"weather_geocoding_url": "weather.geocoding_url",
	"weather_forecast_url":  "weather.forecast_url",
	"weather_language":      "weather.language",
	"weather_timeout":       "weather.timeout",
	"weather_rps":           "weather.requests_per_second",
	"weather_burst":         "weather.burst",
	"weather_cache_ttl":     "weather.cache_ttl",
	"weather_cache_size":    "weather.cache_size",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",
	"max_upload_bytes":    "security.max_upload_bytes",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - CATALOG_PATH -> catalog.path
//   - COPURCHASE_GLOB -> copurchase.glob
//   - HTTP_PORT -> server.port
//   - RECOMMEND_SEED -> recommend.seed
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables do not
	// pollute the config.
	return ""
}

// WatchConfigFile calls callback whenever the config file at path changes.
// The caller reloads with LoadWithKoanf and swaps the result itself.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
