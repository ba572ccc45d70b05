// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

func article(id int64, productType, name, colour string) catalog.Article {
	return catalog.Article{
		ID:                    id,
		Name:                  name,
		ProductType:           productType,
		ProductGroup:          "Garment",
		IndexName:             "Ladieswear",
		ColourGroup:           colour,
		PerceivedColourMaster: colour,
	}
}

// threePieceDataset is a black top co-purchased with white jeans (5) and
// black sneakers (1).
func threePieceDataset() Dataset {
	return Dataset{
		Catalog: catalog.New([]catalog.Article{
			article(1, "T-shirt", "Basic tee", "Black"),
			article(2, "Jeans", "Denim jeans", "White"),
			article(3, "Sneakers", "Court sneakers", "Black"),
		}),
		Index: copurchase.NewIndex([]copurchase.Pair{
			{A: 1, B: 2, Count: 5},
			{A: 1, B: 3, Count: 1},
		}),
		Source: "test",
	}
}

// coldStartDataset has a pair of jeans without any co-purchase history and
// tops that only appear in an unrelated pair.
func coldStartDataset(tops int) Dataset {
	colours := []string{"Black", "Red", "Green", "Yellow", "White", "Pink"}
	arts := []catalog.Article{article(99, "Jeans", "Blue jeans", "Denim Blue")}
	for i := 0; i < tops; i++ {
		arts = append(arts, article(int64(2000+i), "T-shirt", "Basic tee", colours[i%len(colours)]))
	}
	return Dataset{
		Catalog: catalog.New(arts),
		Index:   copurchase.NewIndex([]copurchase.Pair{{A: 2000, B: 2001, Count: 4}}),
		Source:  "test",
	}
}

// similarDataset: top 1 has a direct bottom partner 2; top 4 is its only
// neighbor and was bought with 2, 5, and sneakers 6.
func similarDataset() Dataset {
	return Dataset{
		Catalog: catalog.New([]catalog.Article{
			article(1, "T-shirt", "Basic tee", "Black"),
			article(4, "T-shirt", "Basic tee", "White"),
			article(2, "Jeans", "Denim jeans", "White"),
			article(5, "Jeans", "Denim jeans", "Black"),
			article(6, "Sneakers", "Court sneakers", "Black"),
		}),
		Index: copurchase.NewIndex([]copurchase.Pair{
			{A: 1, B: 2, Count: 5},
			{A: 4, B: 2, Count: 3},
			{A: 4, B: 5, Count: 2},
			{A: 4, B: 6, Count: 1},
		}),
		Source: "test",
	}
}

//nolint:gocritic // hugeParam: test helper
func newTestEngine(t *testing.T, cfg *Config, ds Dataset) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := e.Load(ds); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

func ids(cs []Candidate) []int64 {
	out := make([]int64, len(cs))
	for i := range cs {
		out[i] = cs[i].Article.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testScorer() *scoring.Scorer {
	return scoring.New(scoring.HueWheel{}, scoring.DefaultStyleWeight)
}
