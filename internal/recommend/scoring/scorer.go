// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import "github.com/tomtom215/outfitter/internal/catalog"

// DefaultStyleWeight multiplies the style score in the hybrid score.
const DefaultStyleWeight = 1.5

// Breakdown holds the components of one compatibility score.
type Breakdown struct {
	Style   float64 `json:"style"`
	Color   float64 `json:"color"`
	Penalty float64 `json:"penalty"`
	Weather float64 `json:"weather,omitempty"`
	Hybrid  float64 `json:"hybrid"`
}

// Scorer combines style, color, and functional penalty into the hybrid
// score. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	color       ColorModel
	styleWeight float64
}

// New returns a scorer. A nil model selects the hue wheel and a
// non-positive weight selects DefaultStyleWeight.
func New(model ColorModel, styleWeight float64) *Scorer {
	if model == nil {
		model = HueWheel{}
	}
	if styleWeight <= 0 {
		styleWeight = DefaultStyleWeight
	}
	return &Scorer{color: model, styleWeight: styleWeight}
}

// ColorModel returns the scorer's color model.
func (s *Scorer) ColorModel() ColorModel {
	return s.color
}

// Score returns the full breakdown of a candidate against a base.
func (s *Scorer) Score(base, candidate *catalog.Article) Breakdown {
	b := Breakdown{
		Style:   StyleScore(base.Style, candidate.Style),
		Color:   s.color.Score(base, candidate),
		Penalty: FunctionalPenalty(base.Functional, candidate.Functional),
	}
	b.Hybrid = b.Style*s.styleWeight + b.Color + b.Penalty
	return b
}

// ScoreInWeather is Score plus the weather adjustment of the candidate.
func (s *Scorer) ScoreInWeather(base, candidate *catalog.Article, c Condition) Breakdown {
	b := s.Score(base, candidate)
	b.Weather = WeatherAdjustment(c, candidate)
	b.Hybrid += b.Weather
	return b
}

// Hybrid returns only the hybrid score.
func (s *Scorer) Hybrid(base, candidate *catalog.Article) float64 {
	return s.Score(base, candidate).Hybrid
}
