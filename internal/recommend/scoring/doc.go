// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package scoring implements the pairwise compatibility model used to rank
// outfit candidates.
//
// All functions are pure. The hybrid score of a candidate against a base is
//
//	hybrid = style * styleWeight + color + functionalPenalty [+ weather]
//
// Two color models are available. HueWheel (the default) works on the
// coarse matching family derived at catalog load and is symmetric. Palette
// works on raw color names with a per-color palette table and a clash veto.
package scoring
