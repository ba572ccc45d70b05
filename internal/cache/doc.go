// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package cache provides the in-memory data structures shared by the catalog
and the recommendation engine.

# Keyword Automaton

Automaton is an Aho-Corasick matcher over lowercased text. The catalog uses
it for every keyword rule it applies at load time (style keywords, functional
keywords, color family substrings, outerwear detection), so an article's
text is scanned once per rule set instead of once per keyword.

Patterns are ordered: the add order is the pattern index, and
FirstByPriority returns the earliest-added pattern found anywhere in the
text. That is the semantics of an ordered "first rule whose keyword is a
substring wins" table:

	families := cache.NewAutomatonFromPairs(
	    []string{"greenish khaki", "khaki", "turquoise", "black"},
	    []string{"olive", "olive", "turquoise", "black"},
	)
	family, ok := families.FirstByPriority("Greenish Khaki")
	// family == "olive", ok == true

Distinct returns the indices of all patterns that occur, which is how
weighted keyword sums are computed:

	for _, idx := range weights.Distinct(text) {
	    score += weights.Value(idx)
	}

# Keys

GenerateKey hashes a namespace and JSON-encoded parameters into a
fixed-length cache key. The engine keys its response cache with it.

# Thread Safety

A built Automaton is immutable and safe for concurrent readers.
*/
package cache
