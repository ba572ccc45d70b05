// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests. It succeeds as long as the
// process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. It returns 503 until the
// catalog and co-purchase index are loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"ready_to_serve": false,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if h.weather != nil {
		data["weather_circuit"] = h.weather.State()
	}

	ds, err := h.engine.Dataset()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:   "not_ready",
			Data:     data,
			Metadata: newMetadata(r),
		})
		return
	}

	data["ready_to_serve"] = true
	data["articles"] = ds.Catalog.Len()
	data["copurchase_records"] = ds.Index.Records()
	data["source"] = ds.Source
	data["loaded_at"] = ds.LoadedAt

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "ready",
		Data:     data,
		Metadata: newMetadata(r),
	})
}
