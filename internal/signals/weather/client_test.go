// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

func TestConditionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		temp float64
		code int
		want scoring.Condition
	}{
		{"mild and clear", 20, 0, scoring.ConditionNormal},
		{"mild drizzle", 18, 51, scoring.ConditionRain},
		{"mild heavy rain", 18, 65, scoring.ConditionRain},
		{"mild snow", 16, 71, scoring.ConditionSnow},
		{"cold and clear", 5, 1, scoring.ConditionCold},
		{"cold rain is cold", 10, 61, scoring.ConditionCold},
		{"cold snow is cold", -2, 75, scoring.ConditionCold},
		{"hot and clear", 30, 0, scoring.ConditionHot},
		{"hot thunderstorm is hot", 28, 95, scoring.ConditionHot},
		{"boundary 15 is not cold", 15, 0, scoring.ConditionNormal},
		{"boundary 25 is not hot", 25, 0, scoring.ConditionNormal},
		{"code 50 is not rain", 20, 50, scoring.ConditionNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ConditionFor(tt.temp, tt.code); got != tt.want {
				t.Errorf("ConditionFor(%v, %d) = %q, want %q", tt.temp, tt.code, got, tt.want)
			}
		})
	}
}

type fakeMeteo struct {
	geocodeStatus int
	noResults     bool
	temperature   float64
	code          int
	hits          atomic.Int64
}

func (f *fakeMeteo) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if f.geocodeStatus != 0 {
			http.Error(w, "upstream broken", f.geocodeStatus)
			return
		}
		if r.URL.Query().Get("count") != "1" {
			http.Error(w, "count must be 1", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.noResults {
			fmt.Fprint(w, `{"generationtime_ms":0.5}`)
			return
		}
		fmt.Fprintf(w, `{"results":[{"name":%q,"latitude":52.52,"longitude":13.41,"country":"Germany"}]}`,
			r.URL.Query().Get("name"))
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if r.URL.Query().Get("current_weather") != "true" {
			http.Error(w, "current_weather required", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"current_weather":{"temperature":%v,"windspeed":10.2,"weathercode":%d,"time":"2026-01-10T12:00"}}`,
			f.temperature, f.code)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, cacheTTL bool) *Client {
	cfg := Config{
		GeocodingURL:      srv.URL + "/v1/search",
		ForecastURL:       srv.URL + "/v1/forecast",
		RequestsPerSecond: 1000,
		Burst:             100,
	}
	if cacheTTL {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		temp float64
		code int
		want scoring.Condition
	}{
		{"hot", 31.5, 0, scoring.ConditionHot},
		{"rain", 18, 63, scoring.ConditionRain},
		{"cold", 3, 3, scoring.ConditionCold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := &fakeMeteo{temperature: tt.temp, code: tt.code}
			c := newTestClient(f.server(t), false)

			r, err := c.Lookup(context.Background(), "Berlin")
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if r.Place != "Berlin" || r.Temperature != tt.temp || r.WeatherCode != tt.code {
				t.Errorf("report = %+v", r)
			}
			if r.Condition != tt.want {
				t.Errorf("condition = %q, want %q", r.Condition, tt.want)
			}
			if got := c.Condition(context.Background(), "Berlin"); got != tt.want {
				t.Errorf("Condition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_PlaceNotFound(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{noResults: true}
	c := newTestClient(f.server(t), false)

	_, err := c.Lookup(context.Background(), "Atlantis")
	if !errors.Is(err, ErrPlaceNotFound) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Lookup() error = %v, want ErrPlaceNotFound", err)
	}
	if got := c.Condition(context.Background(), "Atlantis"); got != scoring.ConditionNone {
		t.Errorf("Condition() = %q, want none", got)
	}

	if _, err := c.Lookup(context.Background(), "  "); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("Lookup(blank) error = %v, want ErrPlaceNotFound", err)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{geocodeStatus: http.StatusBadGateway}
	c := newTestClient(f.server(t), false)

	_, err := c.Lookup(context.Background(), "Berlin")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Lookup() error = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("upstream failure reported as place not found")
	}
}

func TestClient_CircuitOpens(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{geocodeStatus: http.StatusInternalServerError}
	c := newTestClient(f.server(t), false)

	for i := 0; i < 10; i++ {
		if _, err := c.Lookup(context.Background(), fmt.Sprintf("place-%d", i)); err == nil {
			t.Fatalf("call %d succeeded", i)
		}
	}
	if c.State() != "open" {
		t.Fatalf("State() = %q, want open", c.State())
	}

	hits := f.hits.Load()
	_, err := c.Lookup(context.Background(), "Berlin")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Lookup() error = %v, want ErrUnavailable", err)
	}
	if f.hits.Load() != hits {
		t.Errorf("open circuit still reached upstream")
	}
}

func TestClient_NotFoundKeepsCircuitClosed(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{noResults: true}
	c := newTestClient(f.server(t), false)

	for i := 0; i < 12; i++ {
		_, _ = c.Lookup(context.Background(), fmt.Sprintf("nowhere-%d", i))
	}
	if c.State() != "closed" {
		t.Errorf("State() = %q, want closed", c.State())
	}
}

func TestClient_Cache(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{temperature: 20}
	c := newTestClient(f.server(t), true)

	first, err := c.Lookup(context.Background(), "Hamburg")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	hits := f.hits.Load()

	second, err := c.Lookup(context.Background(), "hamburg ")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if f.hits.Load() != hits {
		t.Errorf("cached lookup reached upstream")
	}
	if first == second {
		t.Errorf("cache returned a shared report")
	}
	if *first != *second {
		t.Errorf("cached report = %+v, want %+v", second, first)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	f := &fakeMeteo{temperature: 20}
	c := newTestClient(f.server(t), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Lookup(ctx, "Berlin"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Lookup() error = %v, want ErrUnavailable", err)
	}
}
