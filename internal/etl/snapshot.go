// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/copurchase"
	"github.com/tomtom215/outfitter/internal/metrics"
)

// Snapshot aggregates the shards matching pattern into the badger snapshot
// at storePath, replacing any previous snapshot. The service loads it
// instead of re-reading the shards.
func Snapshot(ctx context.Context, pattern, storePath string, logger zerolog.Logger) (copurchase.SnapshotMeta, error) {
	start := time.Now()
	if storePath == "" {
		return copurchase.SnapshotMeta{}, fmt.Errorf("%w: snapshot path is empty", ErrInvalidInput)
	}

	ix, stats, err := copurchase.LoadShards(pattern)
	if err != nil {
		return copurchase.SnapshotMeta{}, err
	}

	store, err := copurchase.OpenSnapshotStore(storePath)
	if err != nil {
		return copurchase.SnapshotMeta{}, err
	}
	defer func() { _ = store.Close() }()

	meta, err := store.Save(ctx, ix, pattern)
	if err != nil {
		return copurchase.SnapshotMeta{}, err
	}

	d := time.Since(start)
	metrics.RecordETLStep(StepSnapshot, int64(meta.Records), d)
	logger.Info().
		Str("component", "etl").
		Str("step", StepSnapshot).
		Int("shards", stats.Shards).
		Int("skipped", stats.Skipped).
		Int("articles", meta.Articles).
		Int("records", meta.Records).
		Dur("duration", d).
		Msg("ETL step completed")
	return meta, nil
}
