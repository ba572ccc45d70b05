// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/outfitter/internal/middleware"
)

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	wantErrorCode(t, s.get(t, "/api/v1/nothing-here"), http.StatusNotFound, CodeNotFound)
	wantErrorCode(t, s.do(t, http.MethodDelete, "/api/v1/articles", nil, nil), http.StatusMethodNotAllowed, CodeMethodNotAllowed)
	wantErrorCode(t, s.get(t, "/api/v1/outfits"), http.StatusMethodNotAllowed, CodeMethodNotAllowed)
}

func TestRouterRequestID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	rec := s.do(t, http.MethodGet, "/api/v1/health/live", nil, map[string]string{middleware.RequestIDHeader: "trace-123"})
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-123" {
		t.Errorf("%s = %q, want trace-123", middleware.RequestIDHeader, got)
	}
	env := decodeEnvelope(t, rec, http.StatusOK)
	if env.Metadata.RequestID != "trace-123" {
		t.Errorf("metadata request_id = %q", env.Metadata.RequestID)
	}

	rec = s.get(t, "/api/v1/health/live")
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing generated request id")
	}
}

func TestRouterETagAndCompression(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	rec := s.do(t, http.MethodGet, "/api/v1/articles/108775015", nil, map[string]string{"Accept-Encoding": "gzip"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	if etag := rec.Header().Get("ETag"); !strings.HasPrefix(etag, "\"") {
		t.Errorf("ETag = %q, want a quoted tag", etag)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	rec := s.get(t, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output is missing the default go collectors")
	}
}

func TestStatsEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	for i := 0; i < 3; i++ {
		decodeEnvelope(t, s.get(t, "/api/v1/outfits/108775015"), http.StatusOK)
	}

	t.Run("performance", func(t *testing.T) {
		var got struct {
			Endpoints []middleware.EndpointStats `json:"endpoints"`
			Recent    []middleware.RequestSample `json:"recent"`
		}
		decodeData(t, decodeEnvelope(t, s.get(t, "/api/v1/stats/performance?recent=2"), http.StatusOK), &got)

		if len(got.Recent) != 2 {
			t.Errorf("recent = %d samples, want 2", len(got.Recent))
		}
		var found bool
		for _, e := range got.Endpoints {
			if e.Endpoint == "GET /api/v1/outfits/{id}" {
				found = true
				if e.RequestCount != 3 {
					t.Errorf("outfit request count = %d, want 3", e.RequestCount)
				}
			}
		}
		if !found {
			t.Errorf("endpoints = %+v, want GET /api/v1/outfits/{id}", got.Endpoints)
		}
	})

	t.Run("engine", func(t *testing.T) {
		var got struct {
			Metrics struct {
				RequestCount int64 `json:"request_count"`
				CacheHits    int64 `json:"cache_hits"`
			} `json:"metrics"`
			ColorModel  string         `json:"color_model"`
			Articles    int            `json:"articles"`
			WithHistory int            `json:"articles_with_history"`
			MacroCounts map[string]int `json:"macro_counts"`
		}
		decodeData(t, decodeEnvelope(t, s.get(t, "/api/v1/stats/engine"), http.StatusOK), &got)

		if got.Metrics.RequestCount != 3 || got.Metrics.CacheHits != 2 {
			t.Errorf("metrics = %+v, want 3 requests with 2 cache hits", got.Metrics)
		}
		if got.ColorModel != "hue_wheel" || got.Articles != 4 || got.WithHistory != 3 {
			t.Errorf("stats = %+v", got)
		}
		if got.MacroCounts["BOTTOM"] != 1 {
			t.Errorf("macro_counts = %v", got.MacroCounts)
		}
	})
}
