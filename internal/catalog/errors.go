// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import "errors"

var (
	// ErrDataUnavailable indicates the catalog source is missing or unreadable.
	ErrDataUnavailable = errors.New("catalog data unavailable")

	// ErrNotFound indicates an article identifier is not in the catalog.
	ErrNotFound = errors.New("article not found")
)
