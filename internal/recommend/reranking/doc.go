// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package reranking implements post-processing passes over ranked
// candidate pools.
//
// Rerankers operate on already-scored pools and reorder them for an
// objective beyond the base-to-candidate score:
//
//	Aggregation -> Scoring -> Pool ranking -> Rerankers -> Truncation
//
// # Cross-check
//
// An outfit is judged as a whole, so an item that matches the base but
// clashes with the other chosen pieces should sink. CrossCheck gives every
// item a display score
//
//	display = ownWeight * own + (1 - ownWeight) * mean(pair(item, peer))
//
// where the peers are the top Peers items of every other non-empty pool.
// Items without peers keep their own score. Pools are then stably sorted by
// display score, with a caller-supplied tie-break.
//
// The package is generic over the pooled item type and has no dependency
// on the engine that calls it.
package reranking
