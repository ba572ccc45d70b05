// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package weather provides the current-weather signal for recommendations.
//
// A place name is geocoded with the open-meteo geocoding API, then the
// forecast API's current_weather block is reduced to a scoring.Condition by
// ConditionFor. Failure of any step is not an error for the recommender: it
// simply means no weather signal.
//
// Usage:
//
//	client := weather.NewClient(weather.DefaultConfig(), logger)
//	cond := client.Condition(ctx, "Berlin")
package weather
