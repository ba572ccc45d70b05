// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import (
	"fmt"
	"strings"

	"github.com/tomtom215/outfitter/internal/catalog"
)

// Condition is a coarse weather condition. The zero value means no weather
// signal.
type Condition string

const (
	ConditionNone   Condition = ""
	ConditionNormal Condition = "Normal"
	ConditionCold   Condition = "Cold"
	ConditionHot    Condition = "Hot"
	ConditionRain   Condition = "Rain"
	ConditionSnow   Condition = "Snow"
)

// ParseCondition parses a condition name case-insensitively. An empty
// string is ConditionNone.
func ParseCondition(s string) (Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ConditionNone, nil
	case "normal":
		return ConditionNormal, nil
	case "cold":
		return ConditionCold, nil
	case "hot":
		return ConditionHot, nil
	case "rain":
		return ConditionRain, nil
	case "snow":
		return ConditionSnow, nil
	}
	return ConditionNone, fmt.Errorf("unknown weather condition %q", s)
}

type productTypes map[string]struct{}

func newProductTypes(names ...string) productTypes {
	m := make(productTypes, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var (
	coldBonus   = newProductTypes("Jacket", "Coat", "Hoodie", "Sweater", "Boots")
	coldPenalty = newProductTypes("Shorts", "Sandals", "Vest top")
	hotBonus    = newProductTypes("Shorts", "Sandals", "Vest top", "T-shirt", "Skirt")
	hotPenalty  = newProductTypes("Coat", "Sweater", "Hoodie")
)

// WeatherAdjustment returns the score adjustment of a candidate under a
// weather condition, by exact product type.
func WeatherAdjustment(c Condition, candidate *catalog.Article) float64 {
	var bonus, penalty productTypes
	switch c {
	case ConditionCold, ConditionRain, ConditionSnow:
		bonus, penalty = coldBonus, coldPenalty
	case ConditionHot:
		bonus, penalty = hotBonus, hotPenalty
	default:
		return 0
	}

	adj := 0.0
	if _, ok := bonus[candidate.ProductType]; ok {
		adj += 3
	}
	if _, ok := penalty[candidate.ProductType]; ok {
		adj -= 5
	}
	return adj
}
