// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package dataset reads the catalog and co-purchase data from disk and hands
// them to the recommendation engine.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/copurchase"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// Source labels reported in Dataset.Source and the load metrics.
const (
	SourceSnapshot = "snapshot"
	SourceShards   = "shards"
)

// Sources locates the files a load reads.
type Sources struct {
	// CatalogPath is the filtered article CSV.
	CatalogPath string

	// ShardGlob matches the co-purchase shard CSVs.
	ShardGlob string

	// SnapshotPath is a badger snapshot directory. It is preferred over the
	// shards when it holds a database.
	SnapshotPath string
}

// SourcesFromConfig extracts the data locations from the service config.
func SourcesFromConfig(cfg *config.Config) Sources {
	return Sources{
		CatalogPath:  cfg.Catalog.Path,
		ShardGlob:    cfg.Copurchase.Glob,
		SnapshotPath: cfg.Copurchase.SnapshotPath,
	}
}

// Target receives loaded datasets. *recommend.Engine implements it.
type Target interface {
	Load(ds recommend.Dataset) error
}

// Loader reads datasets and installs them into a Target.
type Loader struct {
	sources Sources
	target  Target
	logger  zerolog.Logger
}

// NewLoader creates a loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(sources Sources, target Target, logger zerolog.Logger) *Loader {
	return &Loader{
		sources: sources,
		target:  target,
		logger:  logger.With().Str("component", "dataset").Logger(),
	}
}

// Read loads the catalog and the co-purchase index without installing them.
// Errors wrap catalog.ErrDataUnavailable or copurchase.ErrDataUnavailable,
// depending on which source is missing; IsUnavailable matches both.
func (l *Loader) Read(ctx context.Context) (recommend.Dataset, error) {
	cat, catStats, err := catalog.LoadFile(l.sources.CatalogPath)
	if err != nil {
		return recommend.Dataset{}, fmt.Errorf("load catalog: %w", err)
	}
	if catStats.Skipped > 0 {
		l.logger.Warn().
			Int("skipped", catStats.Skipped).
			Str("path", l.sources.CatalogPath).
			Msg("catalog rows skipped")
	}

	if err := ctx.Err(); err != nil {
		return recommend.Dataset{}, err
	}

	ix, source, err := l.readIndex(ctx)
	if err != nil {
		return recommend.Dataset{}, err
	}

	return recommend.Dataset{
		Catalog:  cat,
		Index:    ix,
		Source:   source,
		LoadedAt: time.Now(),
	}, nil
}

func (l *Loader) readIndex(ctx context.Context) (*copurchase.Index, string, error) {
	if snapshotExists(l.sources.SnapshotPath) {
		ix, err := l.readSnapshot(ctx)
		switch {
		case err == nil:
			return ix, SourceSnapshot, nil
		case errors.Is(err, copurchase.ErrDataUnavailable):
			// An interrupted snapshot build leaves no meta key behind.
			l.logger.Warn().
				Err(err).
				Str("path", l.sources.SnapshotPath).
				Msg("co-purchase snapshot incomplete, reading shards")
		default:
			return nil, "", err
		}
	}

	ix, stats, err := copurchase.LoadShards(l.sources.ShardGlob)
	if err != nil {
		return nil, "", fmt.Errorf("load co-purchase shards: %w", err)
	}
	if stats.Skipped > 0 {
		l.logger.Warn().
			Int("skipped", stats.Skipped).
			Int("shards", stats.Shards).
			Msg("co-purchase rows skipped")
	}
	return ix, SourceShards, nil
}

// IsUnavailable reports whether err means the catalog or the co-purchase
// data could not be read.
func IsUnavailable(err error) bool {
	return errors.Is(err, catalog.ErrDataUnavailable) || errors.Is(err, copurchase.ErrDataUnavailable)
}

func (l *Loader) readSnapshot(ctx context.Context) (*copurchase.Index, error) {
	store, err := copurchase.OpenSnapshotStore(l.sources.SnapshotPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	ix, meta, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	l.logger.Debug().
		Time("created_at", meta.CreatedAt).
		Str("snapshot_source", meta.Source).
		Msg("co-purchase snapshot read")
	return ix, nil
}

// snapshotExists reports whether path holds a badger database.
func snapshotExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(path, "MANIFEST"))
	return err == nil && !info.IsDir()
}

// Reload reads a fresh dataset and installs it. On failure the target keeps
// whatever it had.
func (l *Loader) Reload(ctx context.Context) error {
	start := time.Now()

	ds, err := l.Read(ctx)
	if err != nil {
		return err
	}
	if err := l.target.Load(ds); err != nil {
		return fmt.Errorf("install dataset: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordDataLoad(ds.Source, ds.Catalog.Len(), ds.Index.Records(), elapsed)
	l.logger.Info().
		Str("source", ds.Source).
		Int("articles", ds.Catalog.Len()).
		Int("records", ds.Index.Records()).
		Dur("duration", elapsed).
		Msg("dataset reloaded")
	return nil
}
