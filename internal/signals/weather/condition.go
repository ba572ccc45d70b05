// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package weather

import "github.com/tomtom215/outfitter/internal/recommend/scoring"

// WMO weather interpretation code thresholds.
const (
	codeDrizzle = 51
	codeSnow    = 71
)

// Temperature thresholds in degrees Celsius.
const (
	coldBelow = 15.0
	hotAbove  = 25.0
)

// ConditionFor maps a temperature and WMO weather code to a condition.
// Temperature wins over precipitation: a cold rainy day is Cold.
func ConditionFor(temperature float64, code int) scoring.Condition {
	c := scoring.ConditionNormal
	if code >= codeDrizzle {
		c = scoring.ConditionRain
	}
	if code >= codeSnow {
		c = scoring.ConditionSnow
	}
	if temperature < coldBelow {
		c = scoring.ConditionCold
	}
	if temperature > hotAbove {
		c = scoring.ConditionHot
	}
	return c
}
