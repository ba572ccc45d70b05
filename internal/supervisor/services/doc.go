// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package services adapts long-running components to suture.Service.
//
//   - HTTPServerService: runs an *http.Server, shutting it down gracefully
//     when the supervisor stops it
//   - ReloadService: reloads the served dataset on a fixed interval
//
// Both services return ctx.Err() when stopped and implement fmt.Stringer so
// suture event logs name them.
package services
