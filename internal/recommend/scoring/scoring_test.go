// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import (
	"testing"

	"github.com/tomtom215/outfitter/internal/catalog"
)

var allFamilies = []catalog.MatchFamily{
	catalog.FamilyBlack, catalog.FamilyWhite, catalog.FamilyGrey, catalog.FamilyBrown,
	catalog.FamilyBlue, catalog.FamilyRed, catalog.FamilyPink, catalog.FamilyOrange,
	catalog.FamilyYellow, catalog.FamilyOlive, catalog.FamilyGreen, catalog.FamilyTurquoise,
	catalog.FamilyPurple, catalog.FamilyOther, catalog.FamilyMulti,
}

var allStyles = []catalog.Style{
	catalog.StyleSport, catalog.StyleElegant, catalog.StyleStreetwear, catalog.StyleSummer, catalog.StyleCasual,
}

var allFunctional = []catalog.Functional{
	catalog.FunctionalHeavyOuter, catalog.FunctionalWinterAcc, catalog.FunctionalWinterShoes,
	catalog.FunctionalWinterTop, catalog.FunctionalSummerShoes, catalog.FunctionalSummerAcc,
	catalog.FunctionalSummerWear, catalog.FunctionalLeggings, catalog.FunctionalFormalLayer,
	catalog.FunctionalStandard,
}

func TestHueWheelClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b catalog.MatchFamily
		want Verdict
	}{
		{catalog.FamilyBlack, catalog.FamilyRed, Allowed},
		{catalog.FamilyWhite, catalog.FamilyOther, Allowed},
		{catalog.FamilyBrown, catalog.FamilyGrey, Conditional},
		{catalog.FamilyGrey, catalog.FamilyBrown, Conditional},
		{catalog.FamilyRed, catalog.FamilyRed, Allowed},
		{catalog.FamilyMulti, catalog.FamilyMulti, Allowed},
		{catalog.FamilyBlue, catalog.FamilyPink, Allowed},
		{catalog.FamilyRed, catalog.FamilyOrange, Allowed},
		{catalog.FamilyRed, catalog.FamilyPink, Allowed},
		{catalog.FamilyRed, catalog.FamilyYellow, Conditional},
		{catalog.FamilyPurple, catalog.FamilyRed, Conditional},
		{catalog.FamilyRed, catalog.FamilyGreen, NotRecommended},
		{catalog.FamilyOrange, catalog.FamilyTurquoise, NotRecommended},
		{catalog.FamilyOther, catalog.FamilyRed, NotRecommended},
		{catalog.FamilyMulti, catalog.FamilyGreen, NotRecommended},
	}

	var h HueWheel
	for _, tt := range tests {
		if got := h.Classify(tt.a, tt.b); got != tt.want {
			t.Errorf("Classify(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHueWheelSymmetric(t *testing.T) {
	t.Parallel()

	var h HueWheel
	for _, a := range allFamilies {
		for _, b := range allFamilies {
			x := &catalog.Article{MatchFamily: a}
			y := &catalog.Article{MatchFamily: b}
			if h.Score(x, y) != h.Score(y, x) {
				t.Errorf("Score(%s, %s) = %v but Score(%s, %s) = %v", a, b, h.Score(x, y), b, a, h.Score(y, x))
			}
		}
	}
}

func TestVerdictPoints(t *testing.T) {
	t.Parallel()

	if Allowed.Points() != 5 || Conditional.Points() != 2 || NotRecommended.Points() != -5 {
		t.Errorf("points = %v/%v/%v", Allowed.Points(), Conditional.Points(), NotRecommended.Points())
	}
}

func TestPaletteScore(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	art := func(group, master, value string) *catalog.Article {
		return &catalog.Article{ColourGroup: group, PerceivedColourMaster: master, PerceivedColourValue: value}
	}

	tests := []struct {
		name            string
		base, candidate *catalog.Article
		want            float64
	}{
		{"clash by group", art("Black", "", ""), art("Dark Blue", "", ""), ClashScore},
		{"clash by master", art("Off White", "Red", ""), art("Light Beige", "Orange", ""), ClashScore},
		{"palette, contrast and value", art("Dark Blue", "Blue", "Dark"), art("White", "White", "Light"), 8},
		{"palette without reverse", art("Black", "", ""), art("Gold", "", ""), 7},
		{"reverse has no palette", art("Gold", "", ""), art("Black", "", ""), 2},
		{"tone on tone colored", art("Red", "Red", "Medium"), art("Red", "Red", "Medium"), 1.5},
		{"tone on tone neutral", art("Black", "Black", ""), art("Black", "Black", ""), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.Score(tt.base, tt.candidate); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaletteIsNeutral(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	for _, name := range []string{"black", "Light Grey", "navy blue", "cream", "greyish beige"} {
		if !p.IsNeutral(name) {
			t.Errorf("IsNeutral(%q) = false", name)
		}
	}
	for _, name := range []string{"red", "dark green", ""} {
		if p.IsNeutral(name) {
			t.Errorf("IsNeutral(%q) = true", name)
		}
	}
}

func TestModelByName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{"": ModelHueWheel, "hue_wheel": ModelHueWheel, "Palette": ModelPalette} {
		m, err := ModelByName(name)
		if err != nil {
			t.Fatalf("ModelByName(%q) error = %v", name, err)
		}
		if m.Name() != want {
			t.Errorf("ModelByName(%q).Name() = %q, want %q", name, m.Name(), want)
		}
	}
	if _, err := ModelByName("rainbow"); err == nil {
		t.Error("ModelByName(rainbow) accepted")
	}
}

func TestStyleScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b catalog.Style
		want float64
	}{
		{catalog.StyleCasual, catalog.StyleCasual, 5},
		{catalog.StyleElegant, catalog.StyleCasual, 3},
		{catalog.StyleSport, catalog.StyleStreetwear, 4},
		{catalog.StyleCasual, catalog.StyleStreetwear, 4},
		{catalog.StyleCasual, catalog.StyleSummer, 3},
		{catalog.StyleStreetwear, catalog.StyleSummer, 2},
		{catalog.StyleSport, catalog.StyleElegant, -10},
		{catalog.StyleSummer, catalog.StyleElegant, -5},
		{catalog.StyleSport, catalog.StyleCasual, 0},
		{catalog.StyleSport, catalog.StyleSummer, 0},
	}

	for _, tt := range tests {
		if got := StyleScore(tt.a, tt.b); got != tt.want {
			t.Errorf("StyleScore(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	for _, a := range allStyles {
		for _, b := range allStyles {
			if StyleScore(a, b) != StyleScore(b, a) {
				t.Errorf("StyleScore(%s, %s) is not symmetric", a, b)
			}
		}
	}
}

func TestFunctionalPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b catalog.Functional
		want float64
	}{
		{catalog.FunctionalHeavyOuter, catalog.FunctionalSummerWear, -10},
		{catalog.FunctionalSummerShoes, catalog.FunctionalWinterTop, -10},
		{catalog.FunctionalWinterShoes, catalog.FunctionalSummerWear, -10},
		{catalog.FunctionalLeggings, catalog.FunctionalHeavyOuter, -10},
		{catalog.FunctionalSummerShoes, catalog.FunctionalLeggings, -5},
		{catalog.FunctionalLeggings, catalog.FunctionalFormalLayer, -3},
		{catalog.FunctionalHeavyOuter, catalog.FunctionalHeavyOuter, -10},
		{catalog.FunctionalWinterTop, catalog.FunctionalWinterAcc, 0},
		{catalog.FunctionalSummerAcc, catalog.FunctionalSummerWear, 0},
		{catalog.FunctionalLeggings, catalog.FunctionalLeggings, 0},
	}

	for _, tt := range tests {
		if got := FunctionalPenalty(tt.a, tt.b); got != tt.want {
			t.Errorf("FunctionalPenalty(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFunctionalPenaltyStandardIsZero(t *testing.T) {
	t.Parallel()

	for _, f := range allFunctional {
		if got := FunctionalPenalty(catalog.FunctionalStandard, f); got != 0 {
			t.Errorf("FunctionalPenalty(STANDARD, %s) = %v", f, got)
		}
		if got := FunctionalPenalty(f, catalog.FunctionalStandard); got != 0 {
			t.Errorf("FunctionalPenalty(%s, STANDARD) = %v", f, got)
		}
		for _, g := range allFunctional {
			if FunctionalPenalty(f, g) > 0 {
				t.Errorf("FunctionalPenalty(%s, %s) is positive", f, g)
			}
		}
	}
}

func TestWeatherAdjustment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cond        Condition
		productType string
		want        float64
	}{
		{ConditionCold, "Coat", 3},
		{ConditionRain, "Boots", 3},
		{ConditionSnow, "Shorts", -5},
		{ConditionCold, "T-shirt", 0},
		{ConditionHot, "Shorts", 3},
		{ConditionHot, "Coat", -5},
		{ConditionHot, "Jeans", 0},
		{ConditionNormal, "Coat", 0},
		{ConditionNone, "Sandals", 0},
	}

	for _, tt := range tests {
		a := &catalog.Article{ProductType: tt.productType}
		if got := WeatherAdjustment(tt.cond, a); got != tt.want {
			t.Errorf("WeatherAdjustment(%q, %s) = %v, want %v", tt.cond, tt.productType, got, tt.want)
		}
	}
}

func TestParseCondition(t *testing.T) {
	t.Parallel()

	if c, err := ParseCondition(" snow "); err != nil || c != ConditionSnow {
		t.Errorf("ParseCondition(snow) = %q, %v", c, err)
	}
	if c, err := ParseCondition(""); err != nil || c != ConditionNone {
		t.Errorf("ParseCondition(\"\") = %q, %v", c, err)
	}
	if _, err := ParseCondition("hail"); err == nil {
		t.Error("ParseCondition(hail) accepted")
	}
}

func TestScorer(t *testing.T) {
	t.Parallel()

	base := &catalog.Article{Style: catalog.StyleElegant, MatchFamily: catalog.FamilyBlack, Functional: catalog.FunctionalStandard}
	coat := &catalog.Article{
		ProductType: "Coat", Style: catalog.StyleCasual, MatchFamily: catalog.FamilyWhite,
		Functional: catalog.FunctionalHeavyOuter,
	}

	s := New(nil, 0)
	b := s.Score(base, coat)
	if b.Style != 3 || b.Color != 5 || b.Penalty != 0 || b.Hybrid != 9.5 {
		t.Errorf("Score() = %+v", b)
	}
	if s.Hybrid(base, coat) != 9.5 {
		t.Errorf("Hybrid() = %v", s.Hybrid(base, coat))
	}

	w := s.ScoreInWeather(base, coat, ConditionHot)
	if w.Weather != -5 || w.Hybrid != 4.5 {
		t.Errorf("ScoreInWeather() = %+v", w)
	}

	if got := New(nil, 1).Hybrid(base, coat); got != 8 {
		t.Errorf("weight 1 Hybrid() = %v, want 8", got)
	}
	if New(NewPalette(), 0).ColorModel().Name() != ModelPalette {
		t.Error("ColorModel() did not keep the palette model")
	}
}
