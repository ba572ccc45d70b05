// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so article ids do not explode label cardinality
  - RequestID: X-Request-ID propagation into the logging context
  - Compression: gzip for JSON and text responses; images pass through
  - PerformanceMonitor: sliding window of recent requests with per-endpoint
    percentiles, served at /api/v1/stats/performance

The plain func(http.HandlerFunc) http.HandlerFunc middlewares are adapted to
chi with api.chiMiddleware:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

All components are safe for concurrent use.
*/
package middleware
