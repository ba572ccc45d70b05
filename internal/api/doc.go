// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package api provides the HTTP REST API for Outfitter.

Handlers sit on a Chi router and answer with a common JSON envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "..."},
	  "error": null
	}

Errors carry a machine readable code (VALIDATION_ERROR, ARTICLE_NOT_FOUND,
DATA_UNAVAILABLE, ...) and, for validation failures, the offending field.

# Endpoints

Health:
  - GET /api/v1/health/live: liveness
  - GET /api/v1/health/ready: 503 until the dataset is loaded

Catalog:
  - GET /api/v1/articles: filter by macro, gender, exclude; paginated
  - GET /api/v1/articles/{id}: one article with derived attributes
  - GET /api/v1/articles/{id}/partners: co-purchase partners by count
  - GET /api/v1/articles/{id}/image: local image or redirect

Outfits:
  - GET /api/v1/outfits/{id}: outfit around a catalog article
  - POST /api/v1/outfits: outfit for a JSON request, optionally an upload

Signals:
  - GET /api/v1/weather?place=: current weather and outfit condition
  - POST /api/v1/photo-color: dominant colour of a multipart "image"

Stats:
  - GET /api/v1/stats/performance: per-route latency percentiles
  - GET /api/v1/stats/engine: recommendation counters and dataset sizes

Prometheus metrics are served on /metrics.

# Middleware

Every request gets a request ID, real client IP resolution (restricted to
trusted proxies when configured), panic recovery, CORS, gzip compression
and latency sampling. API groups add per-IP rate limiting, security
headers and Prometheus instrumentation. Photo uploads have a stricter
limit of their own.
*/
package api
