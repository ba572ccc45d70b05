// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is built on first use with
// WithRequiredStructEnabled, JSON field names in errors, and three domain
// tags:
//
//   - macro: TOP, BOTTOM, OUTERWEAR, SHOES or ACCESSORY, case-insensitive
//   - weather: Normal, Cold, Hot, Rain or Snow, case-insensitive
//   - article_id: an integer identifier in [1, 9999999999]
//
// Example:
//
//	type outfitQuery struct {
//	    Targets []string `json:"targets" validate:"max=5,dive,macro"`
//	    Weather string   `json:"weather" validate:"omitempty,weather"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// ToAPIError produces the VALIDATION_ERROR code used by the API envelope;
// a single failure carries field, tag and value details, several failures
// carry a fields list.
package validation
