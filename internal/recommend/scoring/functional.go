// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import "github.com/tomtom215/outfitter/internal/catalog"

var (
	winterTypes = map[catalog.Functional]struct{}{
		catalog.FunctionalHeavyOuter:  {},
		catalog.FunctionalWinterAcc:   {},
		catalog.FunctionalWinterShoes: {},
		catalog.FunctionalWinterTop:   {},
	}
	summerTypes = map[catalog.Functional]struct{}{
		catalog.FunctionalSummerShoes: {},
		catalog.FunctionalSummerAcc:   {},
		catalog.FunctionalSummerWear:  {},
	}
)

func inSet(set map[catalog.Functional]struct{}, f catalog.Functional) bool {
	_, ok := set[f]
	return ok
}

// FunctionalPenalty returns the seasonal/functional conflict penalty of two
// functional tags. It is never positive and is exactly 0 when either side is
// STANDARD. Rules, first match wins:
//
//	winter vs summer                 -10
//	leggings + heavy outerwear       -10
//	leggings + summer shoes           -5
//	leggings + formal layer           -3
//	heavy outerwear + heavy outerwear -10
//
// Winter shoes with summer wear is already covered by the season rule.
func FunctionalPenalty(a, b catalog.Functional) float64 {
	if a == catalog.FunctionalStandard || b == catalog.FunctionalStandard {
		return 0
	}

	if (inSet(winterTypes, a) && inSet(summerTypes, b)) || (inSet(summerTypes, a) && inSet(winterTypes, b)) {
		return -10
	}

	either := func(x, y catalog.Functional) bool {
		return (a == x && b == y) || (a == y && b == x)
	}

	switch {
	case either(catalog.FunctionalLeggings, catalog.FunctionalHeavyOuter):
		return -10
	case either(catalog.FunctionalLeggings, catalog.FunctionalSummerShoes):
		return -5
	case either(catalog.FunctionalLeggings, catalog.FunctionalFormalLayer):
		return -3
	case a == catalog.FunctionalHeavyOuter && b == catalog.FunctionalHeavyOuter:
		return -10
	}
	return 0
}
