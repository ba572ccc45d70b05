// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/outfitter/internal/catalog"
)

type articleResult struct {
	ID       int64         `json:"article_id"`
	Code     string        `json:"code"`
	Macro    catalog.Macro `json:"macro_category"`
	Gender   string        `json:"gender"`
	ImageURL string        `json:"image_url"`
}

func TestListArticles(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	tests := []struct {
		name      string
		query     string
		wantIDs   []int64
		wantTotal int
	}{
		{name: "all", query: "", wantIDs: []int64{teeID, jeansID, sneakersID, dressID}, wantTotal: 4},
		{name: "macro any case", query: "?macro=bottom", wantIDs: []int64{jeansID}, wantTotal: 1},
		{name: "gender", query: "?gender=Women&limit=2", wantIDs: []int64{teeID, jeansID}, wantTotal: 4},
		{name: "other gender", query: "?gender=men", wantIDs: []int64{}, wantTotal: 0},
		{name: "exclude", query: "?exclude=108775015,300000001", wantIDs: []int64{jeansID, sneakersID}, wantTotal: 2},
		{name: "offset", query: "?offset=3", wantIDs: []int64{dressID}, wantTotal: 4},
		{name: "offset past end", query: "?offset=10", wantIDs: []int64{}, wantTotal: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := decodeEnvelope(t, s.get(t, "/api/v1/articles"+tt.query), http.StatusOK)
			var got []articleResult
			decodeData(t, env, &got)

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d articles, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("article[%d] = %d, want %d", i, got[i].ID, id)
				}
			}
			if env.Metadata.Pagination == nil || env.Metadata.Pagination.Total != tt.wantTotal {
				t.Errorf("pagination = %+v, want total %d", env.Metadata.Pagination, tt.wantTotal)
			}
		})
	}
}

func TestListArticlesRejectsBadQuery(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	for _, query := range []string{
		"?macro=HATS",
		"?gender=robots",
		"?limit=abc",
		"?limit=0",
		"?limit=501",
		"?offset=-1",
		"?exclude=1,x",
		"?exclude=0",
	} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()
			wantErrorCode(t, s.get(t, "/api/v1/articles"+query), http.StatusBadRequest, CodeValidation)
		})
	}
}

func TestListArticlesNotReady(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{unloaded: true})
	wantErrorCode(t, s.get(t, "/api/v1/articles"), http.StatusServiceUnavailable, CodeDataUnavailable)
}

func TestGetArticle(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{imageBaseURL: "https://img.example/images"})

	t.Run("local image", func(t *testing.T) {
		t.Parallel()

		env := decodeEnvelope(t, s.get(t, "/api/v1/articles/0108775015"), http.StatusOK)
		var got articleResult
		decodeData(t, env, &got)
		if got.ID != teeID || got.Code != "0108775015" || got.Macro != catalog.MacroTop || got.Gender != "women" {
			t.Errorf("article = %+v", got)
		}
		if got.ImageURL != "/api/v1/articles/0108775015/image" {
			t.Errorf("image_url = %q", got.ImageURL)
		}
	})

	t.Run("remote image", func(t *testing.T) {
		t.Parallel()

		env := decodeEnvelope(t, s.get(t, "/api/v1/articles/108775044"), http.StatusOK)
		var got articleResult
		decodeData(t, env, &got)
		if got.ImageURL != "https://img.example/images/010/0108775044.jpg" {
			t.Errorf("image_url = %q", got.ImageURL)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		wantErrorCode(t, s.get(t, "/api/v1/articles/999"), http.StatusNotFound, CodeArticleNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		wantErrorCode(t, s.get(t, "/api/v1/articles/tee"), http.StatusBadRequest, CodeValidation)
	})
}

func TestArticlePartners(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	type partner struct {
		ID      int64          `json:"article_id"`
		Count   int64          `json:"count"`
		Article *articleResult `json:"article"`
	}

	env := decodeEnvelope(t, s.get(t, "/api/v1/articles/108775015/partners"), http.StatusOK)
	var got []partner
	decodeData(t, env, &got)
	if len(got) != 2 {
		t.Fatalf("got %d partners, want 2", len(got))
	}
	if got[0].ID != jeansID || got[0].Count != 5 || got[1].ID != sneakersID || got[1].Count != 1 {
		t.Errorf("partners = %+v, want jeans(5) then sneakers(1)", got)
	}
	if got[0].Article == nil || got[0].Article.Macro != catalog.MacroBottom {
		t.Errorf("partner article = %+v", got[0].Article)
	}

	env = decodeEnvelope(t, s.get(t, "/api/v1/articles/108775015/partners?limit=1"), http.StatusOK)
	got = nil
	decodeData(t, env, &got)
	if len(got) != 1 || got[0].ID != jeansID {
		t.Errorf("limited partners = %+v", got)
	}

	wantErrorCode(t, s.get(t, "/api/v1/articles/108775015/partners?limit=1000"), http.StatusBadRequest, CodeValidation)

	env = decodeEnvelope(t, s.get(t, "/api/v1/articles/300000001/partners"), http.StatusOK)
	got = nil
	decodeData(t, env, &got)
	if len(got) != 0 {
		t.Errorf("dress partners = %+v, want none", got)
	}
}

func TestArticleImage(t *testing.T) {
	t.Parallel()

	t.Run("local file", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		rec := s.get(t, "/api/v1/articles/108775015/image")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("Content-Type = %q", ct)
		}
		if rec.Header().Get("Content-Encoding") != "" {
			t.Error("image must not be gzip encoded")
		}
	})

	t.Run("remote redirect", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{imageBaseURL: "https://img.example/images/"})
		rec := s.get(t, "/api/v1/articles/110065001/image")
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "https://img.example/images/011/0110065001.jpg" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, serverOptions{})
		wantErrorCode(t, s.get(t, "/api/v1/articles/110065001/image"), http.StatusNotFound, CodeImageNotFound)
	})
}
