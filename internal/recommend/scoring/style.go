// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import "github.com/tomtom215/outfitter/internal/catalog"

type stylePair struct {
	a, b catalog.Style
}

// styleTable lists each unordered pair once.
var styleTable = map[stylePair]float64{
	{catalog.StyleElegant, catalog.StyleCasual}:    3,
	{catalog.StyleSport, catalog.StyleStreetwear}:  4,
	{catalog.StyleStreetwear, catalog.StyleCasual}: 4,
	{catalog.StyleSummer, catalog.StyleCasual}:     3,
	{catalog.StyleSummer, catalog.StyleStreetwear}: 2,
	{catalog.StyleElegant, catalog.StyleSport}:     -10,
	{catalog.StyleElegant, catalog.StyleSummer}:    -5,
}

// SameStyleScore is the score of two equal styles.
const SameStyleScore = 5.0

// StyleScore returns the style compatibility of two style labels. Equal
// styles score SameStyleScore; listed pairs score the same in either order;
// anything else is 0.
func StyleScore(a, b catalog.Style) float64 {
	if a == b {
		return SameStyleScore
	}
	if v, ok := styleTable[stylePair{a, b}]; ok {
		return v
	}
	return styleTable[stylePair{b, a}]
}
