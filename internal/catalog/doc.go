// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package catalog holds the article table the recommender works on.

A Catalog is loaded once from a CSV file and never changes afterwards.
Loading prepares each row:

 1. the macro-category comes from an exact product type lookup
 2. Reclassify moves misfiled outerwear to OUTERWEAR
 3. derived attributes are computed: gender segment, shopper color family,
    matching color family, style, look, functional tag, outerwear-like flag

Articles whose product type has no macro-category keep MacroUndefined. They
can be looked up and used as a base item but never fill an outfit slot.

Usage:

	cat, stats, err := catalog.LoadFile("data/articles_filtered.csv")
	if errors.Is(err, catalog.ErrDataUnavailable) {
	    // no catalog, nothing to serve
	}

	base, err := cat.Lookup(108775015)
	tops := cat.Filter(catalog.Filter{Macro: catalog.MacroTop, Gender: base.Gender})
*/
package catalog
