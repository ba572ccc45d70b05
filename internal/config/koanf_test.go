// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/outfitter/internal/recommend"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Catalog.Path != "data/articles_filtered.csv" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Copurchase.Glob != "data/copurchase_part_*.csv" {
		t.Errorf("Copurchase.Glob = %q", cfg.Copurchase.Glob)
	}
	if cfg.Copurchase.ReloadInterval != 0 {
		t.Errorf("Copurchase.ReloadInterval = %v, want 0", cfg.Copurchase.ReloadInterval)
	}
	if cfg.Recommend.Scoring.ColorModel != "hue_wheel" {
		t.Errorf("Recommend.Scoring.ColorModel = %q, want hue_wheel", cfg.Recommend.Scoring.ColorModel)
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("Recommend.Seed = %d, want 42", cfg.Recommend.Seed)
	}
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEngineConfigMatchesEngineDefaults(t *testing.T) {
	t.Parallel()

	got := defaultConfig().EngineConfig()
	want := recommend.DefaultConfig()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EngineConfig() = %+v, want %+v", got, want)
	}
}

func TestEngineConfigCopiesSafeColors(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	ec := cfg.EngineConfig()
	ec.Fallback.SafeColors[0] = "changed"
	if cfg.Recommend.Fallback.SafeColors[0] == "changed" {
		t.Error("EngineConfig shares the safe colour slice with Config")
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"CATALOG_PATH", "catalog.path"},
		{"COPURCHASE_GLOB", "copurchase.glob"},
		{"COPURCHASE_SNAPSHOT_PATH", "copurchase.snapshot_path"},
		{"RECOMMEND_COLOR_MODEL", "recommend.scoring.color_model"},
		{"RECOMMEND_SEED", "recommend.seed"},
		{"RECOMMEND_CACHE_TTL", "cache.ttl"},
		{"WEATHER_RPS", "weather.requests_per_second"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"catalog_path", "catalog.path"},

		// Unmapped keys are skipped
		{"PATH", ""},
		{"HOME", ""},
		{"OUTFITTER_CATALOG_PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestEnvMappingsTargetKnownKeys checks every mapping against the default
// config so a renamed field cannot silently drop an environment variable.
func TestEnvMappingsTargetKnownKeys(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	for env, path := range envMappings {
		if !k.Exists(path) {
			t.Errorf("%s maps to unknown key %q", strings.ToUpper(env), path)
		}
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	_ = k.Set("security.cors_origins", "https://a.example, https://b.example,,")
	_ = k.Set("security.trusted_proxies", []string{"10.0.0.1"})
	_ = k.Set("recommend.fallback.safe_colors", "")

	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}

	if got := k.Strings("security.cors_origins"); !reflect.DeepEqual(got, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("cors_origins = %v", got)
	}
	if got := k.Strings("security.trusted_proxies"); !reflect.DeepEqual(got, []string{"10.0.0.1"}) {
		t.Errorf("trusted_proxies = %v", got)
	}
	if got := k.String("recommend.fallback.safe_colors"); got != "" {
		t.Errorf("empty value should be left alone, got %q", got)
	}
}

// TestLoadLayers verifies that the config file overrides defaults and the
// environment overrides the config file.
func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9000
catalog:
  path: /srv/articles.csv
recommend:
  scoring:
    color_model: palette
  seed: 7
cache:
  ttl: 90s
security:
  cors_origins:
    - https://shop.example
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("RECOMMEND_SAFE_COLORS", "black, white")
	t.Setenv("DATA_RELOAD_INTERVAL", "15m")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 from env", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/srv/articles.csv" {
		t.Errorf("Catalog.Path = %q, want file value", cfg.Catalog.Path)
	}
	if cfg.Recommend.Scoring.ColorModel != "palette" {
		t.Errorf("ColorModel = %q, want palette", cfg.Recommend.Scoring.ColorModel)
	}
	if cfg.Recommend.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Recommend.Seed)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if !reflect.DeepEqual(cfg.Recommend.Fallback.SafeColors, []string{"black", "white"}) {
		t.Errorf("SafeColors = %v", cfg.Recommend.Fallback.SafeColors)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://shop.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Copurchase.ReloadInterval != 15*time.Minute {
		t.Errorf("ReloadInterval = %v, want 15m", cfg.Copurchase.ReloadInterval)
	}
	// Untouched sections keep their defaults.
	if cfg.Recommend.Limits.DefaultPerCategory != 3 {
		t.Errorf("DefaultPerCategory = %d, want 3", cfg.Recommend.Limits.DefaultPerCategory)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("RECOMMEND_COLOR_MODEL", "rainbow")

	_, err := loadFrom("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "color_model") {
		t.Errorf("error = %v, want color_model", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := loadFrom(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestFindConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8081\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := FilePath(); got != path {
		t.Errorf("FilePath() = %q, want %q", got, path)
	}
}
