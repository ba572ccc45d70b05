// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - http_request_duration_seconds: Request latency (histogram)
  - http_requests_in_flight: Active requests (gauge)
  - http_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - outfitter_recommendations_total: Requests by outcome (ok, empty, not_found, error)
  - outfitter_recommendation_duration_seconds: Engine latency (histogram)
  - outfitter_candidates_total: Returned items by provenance (direct, similar, fallback)
  - outfitter_recommend_cache_hits_total / outfitter_recommend_cache_misses_total

Data Metrics:
  - outfitter_catalog_articles, outfitter_copurchase_pairs: sizes set at load
  - outfitter_data_load_duration_seconds: Load latency by source (csv, snapshot)
  - outfitter_data_last_load_timestamp

Weather Metrics:
  - outfitter_weather_requests_total: Lookups by result (success, failure, rejected)
  - outfitter_weather_circuit_state: 0=closed, 1=half-open, 2=open
  - outfitter_weather_circuit_transitions_total

ETL Metrics:
  - outfitter_etl_step_duration_seconds, outfitter_etl_rows_written_total

# Usage

The recommendation engine reports through RecommendObserver:

	engine.SetObserver(metrics.RecommendObserver{})

HTTP handlers are instrumented by the middleware package.
*/
package metrics
