// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// Reloader reloads the served dataset. *dataset.Loader implements it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadServiceConfig controls periodic dataset reloads.
type ReloadServiceConfig struct {
	// Interval between reloads. Zero or less disables the service.
	Interval time.Duration

	// Timeout bounds a single reload. Default: the interval.
	Timeout time.Duration
}

// ReloadService re-reads the catalog and co-purchase data on a fixed
// interval. A failed reload is logged and the previous dataset keeps
// serving; the service itself only stops with its context.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	logger   zerolog.Logger

	reloads  atomic.Int64
	failures atomic.Int64
}

// NewReloadService creates a reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "dataset-reloader").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Debug().Msg("periodic reload disabled")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("dataset reloader running")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *ReloadService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.reloader.Reload(reloadCtx); err != nil {
		n := s.failures.Add(1)
		s.logger.Warn().Err(err).Int64("failures", n).Msg("dataset reload failed, keeping previous dataset")
		return
	}
	s.reloads.Add(1)
}

// Reloads returns the number of successful reloads.
func (s *ReloadService) Reloads() int64 { return s.reloads.Load() }

// Failures returns the number of failed reloads.
func (s *ReloadService) Failures() int64 { return s.failures.Load() }

// String implements fmt.Stringer.
func (s *ReloadService) String() string {
	return "dataset-reloader"
}
