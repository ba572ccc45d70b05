// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import (
	"fmt"
	"strings"

	"github.com/tomtom215/outfitter/internal/catalog"
)

// Verdict is the outcome of a color compatibility check.
type Verdict int

const (
	NotRecommended Verdict = iota
	Conditional
	Allowed
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allowed"
	case Conditional:
		return "conditional"
	default:
		return "not_recommended"
	}
}

// Points returns the color score of a verdict.
func (v Verdict) Points() float64 {
	switch v {
	case Allowed:
		return 5
	case Conditional:
		return 2
	default:
		return -5
	}
}

// ColorModel scores the color compatibility of a candidate with a base.
type ColorModel interface {
	Name() string
	Score(base, candidate *catalog.Article) float64
}

// Color model names accepted by ModelByName.
const (
	ModelHueWheel = "hue_wheel"
	ModelPalette  = "palette"
)

// ModelByName returns the color model registered under name. An empty name
// selects the hue wheel.
func ModelByName(name string) (ColorModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModelHueWheel:
		return HueWheel{}, nil
	case ModelPalette:
		return NewPalette(), nil
	default:
		return nil, fmt.Errorf("unknown color model %q", name)
	}
}

// hueWheel is the circular ordering of chromatic matching families.
var hueWheel = []catalog.MatchFamily{
	catalog.FamilyRed, catalog.FamilyOrange, catalog.FamilyYellow, catalog.FamilyOlive,
	catalog.FamilyGreen, catalog.FamilyTurquoise, catalog.FamilyBlue, catalog.FamilyPurple,
	catalog.FamilyPink,
}

var huePosition = func() map[catalog.MatchFamily]int {
	m := make(map[catalog.MatchFamily]int, len(hueWheel))
	for i, f := range hueWheel {
		m[f] = i
	}
	return m
}()

func isNeutralFamily(f catalog.MatchFamily) bool {
	switch f {
	case catalog.FamilyBlack, catalog.FamilyWhite, catalog.FamilyGrey, catalog.FamilyBrown:
		return true
	}
	return false
}

// HueWheel is the reference color model. It compares matching families:
// neutrals go with everything (brown against grey only conditionally),
// equal families and blue always go, and chromatic families are judged by
// their distance on the hue wheel. The model is symmetric.
type HueWheel struct{}

// Name implements ColorModel.
func (HueWheel) Name() string { return ModelHueWheel }

// Classify returns the verdict for two matching families.
func (HueWheel) Classify(a, b catalog.MatchFamily) Verdict {
	if isNeutralFamily(a) || isNeutralFamily(b) {
		if (a == catalog.FamilyBrown && b == catalog.FamilyGrey) || (a == catalog.FamilyGrey && b == catalog.FamilyBrown) {
			return Conditional
		}
		return Allowed
	}
	if a == b {
		return Allowed
	}
	if a == catalog.FamilyBlue || b == catalog.FamilyBlue {
		return Allowed
	}

	pa, okA := huePosition[a]
	pb, okB := huePosition[b]
	if !okA || !okB {
		return NotRecommended
	}
	d := pa - pb
	if d < 0 {
		d = -d
	}
	if n := len(hueWheel); n-d < d {
		d = n - d
	}
	switch {
	case d <= 1:
		return Allowed
	case d == 2:
		return Conditional
	default:
		return NotRecommended
	}
}

// Score implements ColorModel.
func (h HueWheel) Score(base, candidate *catalog.Article) float64 {
	return h.Classify(base.MatchFamily, candidate.MatchFamily).Points()
}
