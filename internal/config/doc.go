// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package config provides centralized configuration management for Outfitter.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The first file found among
CONFIG_PATH, ./config.yaml, ./config.yml and /etc/outfitter/config.yaml is
used.

# Configuration Structure

  - server: HTTP listen address, timeouts, environment
  - logging: level, format, caller
  - catalog: filtered article CSV
  - copurchase: shard glob, badger snapshot, reload interval
  - recommend: engine tunables (scoring, similar, pool, fallback, cross_check, limits)
  - cache: recommendation response cache
  - weather: open-meteo endpoints, rate limit and cache
  - images: local image root and remote base URL
  - security: CORS and rate limiting

# Environment Variables

Environment names are flat and mapped explicitly; unmapped variables are
ignored:

  - HTTP_HOST, HTTP_PORT (default: 8080), HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT
  - LOG_LEVEL (default: info), LOG_FORMAT (json, console), LOG_CALLER
  - CATALOG_PATH (default: data/articles_filtered.csv)
  - COPURCHASE_GLOB (default: data/copurchase_part_*.csv)
  - COPURCHASE_SNAPSHOT_PATH, DATA_RELOAD_INTERVAL
  - RECOMMEND_COLOR_MODEL (hue_wheel, palette), RECOMMEND_STYLE_WEIGHT, RECOMMEND_SEED
  - RECOMMEND_PER_CATEGORY, RECOMMEND_MAX_PER_CATEGORY, RECOMMEND_SAFE_COLORS
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES
  - WEATHER_GEOCODING_URL, WEATHER_FORECAST_URL, WEATHER_RPS, WEATHER_CACHE_TTL
  - IMAGES_ROOT, IMAGES_BASE_URL
  - CORS_ORIGINS, TRUSTED_PROXIES (comma-separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, MAX_UPLOAD_BYTES

# Example config.yaml

	server:
	  port: 8080
	catalog:
	  path: /data/articles_filtered.csv
	copurchase:
	  glob: /data/copurchase_part_*.csv
	recommend:
	  scoring:
	    color_model: palette
	  limits:
	    default_per_category: 5

# Validation

Validate returns the first problem found, named after the environment
variable that sets the field. Engine tunables are checked by
recommend.Config.Validate.
*/
package config
