// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/dataset"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/supervisor/services"
)

// RecommendComponents holds the engine and the optional reloader.
type RecommendComponents struct {
	Engine   *recommend.Engine
	Loader   *dataset.Loader
	Reloader *services.ReloadService
}

// initRecommend builds the engine and installs the initial dataset. The
// reloader is nil when DATA_RELOAD_INTERVAL is not set.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetObserver(metrics.RecommendObserver{})

	loader := dataset.NewLoader(dataset.SourcesFromConfig(cfg), engine, logger)
	if err := loader.Reload(ctx); err != nil {
		if dataset.IsUnavailable(err) {
			return nil, fmt.Errorf("initial dataset load (check CATALOG_PATH, COPURCHASE_GLOB and COPURCHASE_SNAPSHOT_PATH): %w", err)
		}
		return nil, fmt.Errorf("initial dataset load: %w", err)
	}

	components := &RecommendComponents{Engine: engine, Loader: loader}
	if cfg.Copurchase.ReloadInterval > 0 {
		components.Reloader = services.NewReloadService(loader, services.ReloadServiceConfig{
			Interval: cfg.Copurchase.ReloadInterval,
		}, logger)
	}
	return components, nil
}
