// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package recommend composes outfit recommendations from co-purchase counts
// and compatibility scores.
//
// # Architecture
//
// A request flows through four stages per target category:
//
//   - Aggregator: direct co-purchase partners of the base article; when a
//     category has none, partners of the base's similarity neighborhood
//   - Scoring: hybrid score against the base (see package scoring), rank by
//     score then count, drop candidates under the pool thresholds
//   - Sampler: top thin pools up with a seeded draw from the catalog,
//     safe colors first
//   - Cross-check: blend each item's score with how well it pairs with the
//     head of every other category (see package reranking)
//
// Categories are then truncated to the per-category quota. A category with
// no candidate at all is omitted; that is never an error.
//
// # Design Principles
//
//   - Deterministic: identical requests with identical seeds give identical
//     outfits, including fallback picks
//   - No hidden state: every option travels in Request and Config
//   - Immutable data: a Dataset is installed atomically and only read
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Load(recommend.Dataset{Catalog: cat, Index: ix}); err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    BaseID:      108775015,
//	    PerCategory: 3,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Responses are cached by their
// normalized request and returned as copies.
package recommend
