// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/middleware"
	"github.com/tomtom215/outfitter/internal/recommend"
)

type performanceStats struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Recent    []middleware.RequestSample `json:"recent"`
}

type engineStats struct {
	Metrics     recommend.Metrics     `json:"metrics"`
	ColorModel  string                `json:"color_model"`
	Articles    int                   `json:"articles"`
	Records     int                   `json:"copurchase_records"`
	WithHistory int                   `json:"articles_with_history"`
	MacroCounts map[catalog.Macro]int `json:"macro_counts"`
	Source      string                `json:"source"`
}

// PerformanceStats returns per-endpoint latency percentiles over the
// recent request window and the last "recent" samples (default 20).
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	n, err := getIntParam(r, "recent", 20)
	if err != nil {
		h.respondParamError(w, r, err)
		return
	}
	respondData(w, r, performanceStats{
		Endpoints: h.perfMon.Stats(),
		Recent:    h.perfMon.Recent(n),
	})
}

// EngineStats returns recommendation counters and dataset sizes.
func (h *Handler) EngineStats(w http.ResponseWriter, r *http.Request) {
	ds, err := h.engine.Dataset()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, r, engineStats{
		Metrics:     h.engine.GetMetrics(),
		ColorModel:  h.engine.GetConfig().Scoring.ColorModel,
		Articles:    ds.Catalog.Len(),
		Records:     ds.Index.Records(),
		WithHistory: ds.Index.Articles(),
		MacroCounts: ds.Catalog.MacroCounts(),
		Source:      ds.Source,
	})
}
