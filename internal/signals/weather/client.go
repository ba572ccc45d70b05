// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/hashicorp/golang-lru/v2/expirable"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

const breakerName = "open-meteo"

var (
	// ErrUnavailable is returned when no weather signal could be obtained.
	// Callers treat it as "no weather".
	ErrUnavailable = errors.New("weather unavailable")

	// ErrPlaceNotFound is returned when geocoding has no result for the
	// place. It does not count against the circuit breaker.
	ErrPlaceNotFound = fmt.Errorf("place not found: %w", ErrUnavailable)
)

// Config configures the open-meteo client.
type Config struct {
	GeocodingURL      string        `koanf:"geocoding_url"`
	ForecastURL       string        `koanf:"forecast_url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	CacheSize         int           `koanf:"cache_size"`
}

// DefaultConfig returns the public open-meteo endpoints.
func DefaultConfig() Config {
	return Config{
		GeocodingURL:      "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:       "https://api.open-meteo.com/v1/forecast",
		Language:          "en",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
		CacheTTL:          10 * time.Minute,
		CacheSize:         256,
	}
}

// Report is the current weather at a place.
type Report struct {
	Place       string            `json:"place"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Temperature float64           `json:"temperature"`
	WeatherCode int               `json:"weather_code"`
	Condition   scoring.Condition `json:"condition"`
	ObservedAt  string            `json:"observed_at,omitempty"`
}

// Client looks up current weather by place name.
//
// Calls go through a token-bucket limiter and a circuit breaker. The breaker
// opens after 60% failures over at least 10 requests in a one-minute window
// and retries after two minutes. Results are cached per place.
//
// Thread Safety: Safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*Report]
	cache   *expirable.LRU[string, *Report]
	logger  zerolog.Logger
}

// NewClient creates a client. Zero fields of cfg take their defaults.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	def := DefaultConfig()
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = def.GeocodingURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = def.ForecastURL
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger.With().Str("component", "weather").Logger(),
	}
	if cfg.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, *Report](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	metrics.WeatherCircuitState.Set(0)
	c.cb = gobreaker.NewCircuitBreaker[*Report](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				c.logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("Opening weather circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			c.logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Weather circuit state transition")
			metrics.RecordWeatherCircuitTransition(stateToString(from), stateToString(to), stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrPlaceNotFound) || errors.Is(err, context.Canceled)
		},
	})
	return c
}

// Lookup geocodes place and fetches its current weather. Every failure
// wraps ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, place string) (*Report, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("%w: empty place", ErrPlaceNotFound)
	}
	key := strings.ToLower(place)
	if c.cache != nil {
		if r, ok := c.cache.Get(key); ok {
			cp := *r
			return &cp, nil
		}
	}

	r, err := c.execute(func() (*Report, error) {
		return c.lookup(ctx, place)
	})
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if c.cache != nil {
		c.cache.Add(key, r)
	}
	cp := *r
	return &cp, nil
}

// Condition is Lookup reduced to its condition. Any failure yields
// scoring.ConditionNone.
func (c *Client) Condition(ctx context.Context, place string) scoring.Condition {
	r, err := c.Lookup(ctx, place)
	if err != nil {
		c.logger.Debug().Err(err).Str("place", place).Msg("No weather signal")
		return scoring.ConditionNone
	}
	return r.Condition
}

// State returns the circuit breaker state name.
func (c *Client) State() string {
	return stateToString(c.cb.State())
}

func (c *Client) execute(fn func() (*Report, error)) (*Report, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.RecordWeatherRequest("rejected")
			c.logger.Warn().Err(err).Msg("Weather request rejected")
		case errors.Is(err, ErrPlaceNotFound):
			metrics.RecordWeatherRequest("not_found")
		default:
			metrics.RecordWeatherRequest("failure")
		}
		return nil, err
	}
	metrics.RecordWeatherRequest("success")
	return result, nil
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

func (c *Client) lookup(ctx context.Context, place string) (*Report, error) {
	q := url.Values{}
	q.Set("name", place)
	q.Set("count", "1")
	q.Set("language", c.cfg.Language)
	q.Set("format", "json")

	var geo geocodingResponse
	if err := c.getJSON(ctx, c.cfg.GeocodingURL, q, &geo); err != nil {
		return nil, fmt.Errorf("geocoding: %w", err)
	}
	if len(geo.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPlaceNotFound, place)
	}
	loc := geo.Results[0]

	q = url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
	q.Set("current_weather", "true")

	var fc forecastResponse
	if err := c.getJSON(ctx, c.cfg.ForecastURL, q, &fc); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if fc.CurrentWeather == nil {
		return nil, errors.New("forecast: response has no current_weather")
	}

	name := loc.Name
	if name == "" {
		name = place
	}
	cw := fc.CurrentWeather
	return &Report{
		Place:       name,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Temperature: cw.Temperature,
		WeatherCode: cw.WeatherCode,
		Condition:   ConditionFor(cw.Temperature, cw.WeatherCode),
		ObservedAt:  cw.Time,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, base string, q url.Values, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readBodyForError reads up to 64KB of a response body for error messages.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return "(failed to read body)"
	}
	return strings.TrimSpace(string(body))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
