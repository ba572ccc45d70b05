// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package photocolor estimates the dominant colour of a garment photo.
//
// The label feeds an uploaded base item (recommend.Upload.ColourGroup), so
// a photographed garment can be matched against the catalog.
package photocolor
