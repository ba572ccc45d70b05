// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"time"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/middleware"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
	"github.com/tomtom215/outfitter/internal/signals/weather"
)

// WeatherService is the weather signal used by the outfit and weather
// endpoints. *weather.Client implements it.
type WeatherService interface {
	Lookup(ctx context.Context, place string) (*weather.Report, error)
	Condition(ctx context.Context, place string) scoring.Condition
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_articles.go: catalog browsing, partners, images
//   - handlers_outfits.go: outfit recommendations
//   - handlers_signals.go: weather and photo colour
//   - handlers_stats.go: request and engine statistics
type Handler struct {
	engine         *recommend.Engine
	weather        WeatherService
	images         catalog.ImageResolver
	maxUploadBytes int64
	startTime      time.Time
	perfMon        *middleware.PerformanceMonitor
}

// NewHandler creates a handler serving from engine. weatherSvc may be nil,
// in which case the weather endpoint reports the service as unavailable
// and the place parameter of outfit requests is ignored.
func NewHandler(engine *recommend.Engine, weatherSvc WeatherService, cfg *config.Config) *Handler {
	return &Handler{
		engine:         engine,
		weather:        weatherSvc,
		images:         cfg.Images.Resolver(),
		maxUploadBytes: cfg.Security.MaxUploadBytes,
		startTime:      time.Now(),
		perfMon:        middleware.NewPerformanceMonitor(1000, time.Second),
	}
}

// PerformanceMonitor returns the monitor fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// articleView is an article with its code and image location.
type articleView struct {
	*catalog.Article
	ArticleCode string `json:"code"`
	ImageURL    string `json:"image_url,omitempty"`
}

func (h *Handler) viewArticle(a *catalog.Article) articleView {
	v := articleView{Article: a}
	if a.ID == 0 {
		return v
	}
	v.ArticleCode = a.Code()
	v.ImageURL = h.imageURL(a.ID)
	return v
}

// imageURL prefers the local image endpoint and falls back to the remote
// base URL; "" when neither has the image.
func (h *Handler) imageURL(id int64) string {
	if _, ok := h.images.LocalPath(id); ok {
		return "/api/v1/articles/" + catalog.Code(id) + "/image"
	}
	return h.images.URL(id)
}
