// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/outfitter/internal/signals/photocolor"
)

// photoFormField is the multipart field holding the uploaded image.
const photoFormField = "image"

// WeatherRequest holds the validated query of GET /weather.
type WeatherRequest struct {
	Place string `json:"place" validate:"required,max=100"`
}

// Weather reports the current weather and outfit condition for a place.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	req := WeatherRequest{Place: r.URL.Query().Get("place")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if h.weather == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeWeatherDown, "Weather service is not configured", nil)
		return
	}

	report, err := h.weather.Lookup(r.Context(), req.Place)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, r, report)
}

// PhotoColor detects the dominant colour of an uploaded JPEG or PNG sent
// as multipart field "image". The result's colour group can be used as the
// colour of an outfit upload.
func (h *Handler) PhotoColor(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Image exceeds the upload limit", nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Request must be multipart/form-data", err)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, _, err := r.FormFile(photoFormField)
	if err != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, &APIError{
			Code:    CodeValidation,
			Message: "image is required",
			Details: map[string]interface{}{"field": photoFormField, "tag": "required"},
		}, nil)
		return
	}
	defer file.Close()

	result, err := photocolor.Detect(file)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, r, result)
}
