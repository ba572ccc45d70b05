// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitter_recommendations_total",
			Help: "Total number of outfit recommendations by outcome",
		},
		[]string{"outcome"}, // ok, empty, not_found, error
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfitter_recommendation_duration_seconds",
			Help:    "Duration of outfit recommendations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
	)

	CandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitter_candidates_total",
			Help: "Total number of returned outfit items by provenance",
		},
		[]string{"provenance"}, // direct, similar, fallback
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfitter_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfitter_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Data Metrics
	CatalogArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outfitter_catalog_articles",
			Help: "Number of articles in the loaded catalog",
		},
	)

	CopurchasePairs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outfitter_copurchase_pairs",
			Help: "Number of co-purchase pair records in the loaded index",
		},
	)

	DataLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfitter_data_load_duration_seconds",
			Help:    "Duration of catalog and co-purchase loads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"source"}, // csv, snapshot
	)

	DataLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outfitter_data_last_load_timestamp",
			Help: "Unix timestamp of the last successful data load",
		},
	)

	// Weather Metrics
	WeatherRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitter_weather_requests_total",
			Help: "Total number of weather lookups by result",
		},
		[]string{"result"}, // success, failure, rejected, not_found
	)

	WeatherCircuitState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outfitter_weather_circuit_state",
			Help: "Weather circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	WeatherCircuitTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitter_weather_circuit_transitions_total",
			Help: "Total number of weather circuit breaker state transitions",
		},
		[]string{"from_state", "to_state"},
	)

	// ETL Metrics
	ETLStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfitter_etl_step_duration_seconds",
			Help:    "Duration of ETL steps in seconds",
			Buckets: []float64{0.1, 1, 5, 30, 60, 300, 900},
		},
		[]string{"step"},
	)

	ETLRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitter_etl_rows_written_total",
			Help: "Total number of rows written by ETL steps",
		},
		[]string{"step"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDataLoad records a completed data load and the sizes it produced.
func RecordDataLoad(source string, articles, pairs int, duration time.Duration) {
	DataLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	CatalogArticles.Set(float64(articles))
	CopurchasePairs.Set(float64(pairs))
	DataLastLoad.Set(float64(time.Now().Unix()))
}

// RecordETLStep records one ETL step.
func RecordETLStep(step string, rows int64, duration time.Duration) {
	ETLStepDuration.WithLabelValues(step).Observe(duration.Seconds())
	ETLRowsWritten.WithLabelValues(step).Add(float64(rows))
}

// RecordWeatherRequest counts a weather lookup. result is one of success,
// failure, rejected or not_found.
func RecordWeatherRequest(result string) {
	WeatherRequests.WithLabelValues(result).Inc()
}

// RecordWeatherCircuitTransition records a breaker state change. States use
// the gauge encoding closed=0, half-open=1, open=2.
func RecordWeatherCircuitTransition(from, to string, toValue float64) {
	WeatherCircuitState.Set(toValue)
	WeatherCircuitTransitions.WithLabelValues(from, to).Inc()
}

// RecommendObserver reports recommendation engine events to Prometheus.
// It satisfies recommend.Observer.
type RecommendObserver struct{}

// ObserveRecommendation records the outcome and latency of one request.
func (RecommendObserver) ObserveRecommendation(outcome string, d time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(d.Seconds())
}

// ObserveCandidates counts returned items of one provenance.
func (RecommendObserver) ObserveCandidates(provenance string, n int) {
	if n <= 0 {
		return
	}
	CandidatesTotal.WithLabelValues(provenance).Add(float64(n))
}

// ObserveCache records a response cache lookup.
func (RecommendObserver) ObserveCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}
