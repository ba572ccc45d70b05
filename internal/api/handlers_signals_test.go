// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/tomtom215/outfitter/internal/recommend/scoring"
	"github.com/tomtom215/outfitter/internal/signals/weather"
)

func TestWeather(t *testing.T) {
	t.Parallel()

	t.Run("report", func(t *testing.T) {
		t.Parallel()

		fw := &fakeWeather{report: &weather.Report{Place: "Oslo", Temperature: -3, Condition: scoring.ConditionSnow}}
		s := newTestServer(t, serverOptions{weather: fw})

		var got weather.Report
		decodeData(t, decodeEnvelope(t, s.get(t, "/api/v1/weather?place=Oslo"), http.StatusOK), &got)
		if got.Place != "Oslo" || got.Condition != scoring.ConditionSnow || got.Temperature != -3 {
			t.Errorf("report = %+v", got)
		}
	})

	t.Run("missing place", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{weather: &fakeWeather{}})
		wantErrorCode(t, s.get(t, "/api/v1/weather"), http.StatusBadRequest, CodeValidation)
	})

	t.Run("unknown place", func(t *testing.T) {
		t.Parallel()

		fw := &fakeWeather{err: fmt.Errorf("%w: Atlantis", weather.ErrPlaceNotFound)}
		s := newTestServer(t, serverOptions{weather: fw})
		wantErrorCode(t, s.get(t, "/api/v1/weather?place=Atlantis"), http.StatusNotFound, CodeWeatherNotFound)
	})

	t.Run("upstream down", func(t *testing.T) {
		t.Parallel()

		fw := &fakeWeather{err: errors.Join(weather.ErrUnavailable, errors.New("circuit open"))}
		s := newTestServer(t, serverOptions{weather: fw})
		wantErrorCode(t, s.get(t, "/api/v1/weather?place=Oslo"), http.StatusServiceUnavailable, CodeWeatherDown)
	})

	t.Run("not configured", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		wantErrorCode(t, s.get(t, "/api/v1/weather?place=Oslo"), http.StatusServiceUnavailable, CodeWeatherDown)
	})
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestPhotoColor(t *testing.T) {
	t.Parallel()

	t.Run("red", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		body, ct := multipartBody(t, "image", solidPNG(t, color.RGBA{200, 0, 0, 255}))
		rec := s.do(t, http.MethodPost, "/api/v1/photo-color", body, map[string]string{"Content-Type": ct})
		env := decodeEnvelope(t, rec, http.StatusOK)
		var got struct {
			Label       string         `json:"label"`
			ColourGroup string         `json:"colour_group"`
			Weights     map[string]int `json:"weights"`
		}
		decodeData(t, env, &got)
		if got.Label != "red" {
			t.Errorf("label = %q, want red", got.Label)
		}
		if got.ColourGroup == "" || got.Weights["red"] == 0 {
			t.Errorf("result = %+v", got)
		}
	})

	t.Run("wrong field", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		body, ct := multipartBody(t, "file", solidPNG(t, color.RGBA{200, 0, 0, 255}))
		rec := s.do(t, http.MethodPost, "/api/v1/photo-color", body, map[string]string{"Content-Type": ct})
		wantErrorCode(t, rec, http.StatusBadRequest, CodeValidation)
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		wantErrorCode(t, s.postJSON(t, "/api/v1/photo-color", `{}`), http.StatusBadRequest, CodeValidation)
	})

	t.Run("undecodable", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		body, ct := multipartBody(t, "image", []byte("definitely not an image"))
		rec := s.do(t, http.MethodPost, "/api/v1/photo-color", body, map[string]string{"Content-Type": ct})
		wantErrorCode(t, rec, http.StatusUnprocessableEntity, CodeUndecodableImage)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{maxUploadBytes: 1024})
		body, ct := multipartBody(t, "image", bytes.Repeat([]byte{0x42}, 8192))
		rec := s.do(t, http.MethodPost, "/api/v1/photo-color", body, map[string]string{"Content-Type": ct})
		wantErrorCode(t, rec, http.StatusRequestEntityTooLarge, CodePayloadTooLarge)
	})
}
