// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"strings"

	"github.com/tomtom215/outfitter/internal/cache"
)

// knownJackets are articles filed under a non-outerwear product type that
// are jackets.
var knownJackets = map[int64]struct{}{
	176209023: {}, // Mr Harrington w/hood
}

var jacketWords = cache.NewKeywordSet("jacket", "coat", "parka", "anorak", "puffer")

const upperBodyGroup = "Garment Upper body"

// Reclassify corrects misfiled outerwear. It returns a new slice and leaves
// its input untouched. Applying it twice gives the same result as applying
// it once.
//
// Rules:
//   - known misfiled identifiers become OUTERWEAR with product type Jacket
//   - upper-body garments whose description or name mentions a jacket, coat,
//     parka, anorak, or puffer become OUTERWEAR
func Reclassify(articles []Article) []Article {
	out := make([]Article, len(articles))
	for i := range articles {
		out[i] = reclassify(articles[i])
	}
	return out
}

func reclassify(a Article) Article {
	if _, ok := knownJackets[a.ID]; ok {
		a.ProductType = "Jacket"
		a.Macro = MacroOuterwear
		return a
	}
	if a.Macro == MacroOuterwear || !strings.Contains(a.ProductGroup, upperBodyGroup) {
		return a
	}
	if jacketWords.Contains(a.Description) || jacketWords.Contains(a.Name) {
		a.Macro = MacroOuterwear
	}
	return a
}

// Prepare turns raw source rows into catalog articles: it assigns the
// macro-category from the product type table, applies Reclassify, and
// fills every derived attribute. Like Reclassify it is pure and idempotent.
func Prepare(raw []Article) []Article {
	out := make([]Article, len(raw))
	for i := range raw {
		a := raw[i]
		a.Macro = MacroFor(a.ProductType)
		a = reclassify(a)
		derive(&a)
		out[i] = a
	}
	return out
}

// Derive completes a single article outside a catalog load, such as an
// uploaded garment. A defined Macro is kept; otherwise the macro table and
// reclassification decide it.
func Derive(a Article) Article {
	if !a.Macro.Defined() {
		a.Macro = MacroFor(a.ProductType)
		a = reclassify(a)
	}
	derive(&a)
	return a
}
