// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/outfitter/internal/catalog"
)

var (
	// ErrBaseNotFound is returned when the base article is not in the
	// catalog. It matches catalog.ErrNotFound under errors.Is.
	ErrBaseNotFound = fmt.Errorf("base %w", catalog.ErrNotFound)

	// ErrNotReady is returned before a dataset has been loaded. It matches
	// catalog.ErrDataUnavailable under errors.Is.
	ErrNotReady = fmt.Errorf("engine not ready: %w", catalog.ErrDataUnavailable)

	// ErrInvalidRequest is returned for requests that cannot be served.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)
