// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package copurchase aggregates pairwise basket counts into a lookup of
// partners per article.
//
// Raw pair records come from one or more shard files (LoadShards) or from a
// BadgerDB snapshot written by the ETL (SnapshotStore). Either way the Index
// holds summed counts in both directions, so a pair listed twice, or once
// per orientation, contributes the total of its records.
package copurchase
