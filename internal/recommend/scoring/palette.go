// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package scoring

import (
	"strings"

	"github.com/tomtom215/outfitter/internal/cache"
	"github.com/tomtom215/outfitter/internal/catalog"
)

type colorSet map[string]struct{}

func newColorSet(names ...string) colorSet {
	s := make(colorSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s colorSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

type clashPair struct {
	a, b colorSet
}

// Palette scores colors by raw color names: a table of colors that go well
// with each base color, a veto list of clashing pairs, and small bonuses for
// neutral contrast, tone-on-tone, and light/dark contrast. The palette table
// is keyed by the base color, so the model is not symmetric.
type Palette struct {
	palettes map[string]colorSet
	clashes  []clashPair
	neutrals *cache.Automaton[struct{}]
}

// ClashScore is returned for clashing pairs regardless of other signals.
const ClashScore = -10.0

// NewPalette returns the palette model with the built-in tables.
func NewPalette() *Palette {
	p := &Palette{
		palettes: map[string]colorSet{
			"beige":      newColorSet("dark green", "dark blue", "denim blue", "white", "black", "brown", "khaki"),
			"black":      newColorSet("white", "beige", "grey", "light grey", "silver", "gold", "red", "light blue"),
			"white":      newColorSet("black", "blue", "dark blue", "beige", "grey", "silver", "denim blue", "khaki", "pink"),
			"off white":  newColorSet("black", "blue", "dark blue", "beige", "brown", "khaki", "grey"),
			"grey":       newColorSet("white", "black", "light pink", "pink", "blue", "denim blue", "dark blue", "red", "purple"),
			"dark grey":  newColorSet("white", "black", "light pink", "yellow", "light blue"),
			"blue":       newColorSet("white", "beige", "grey", "black", "yellow", "orange", "silver"),
			"dark blue":  newColorSet("white", "beige", "grey", "yellow", "gold", "red", "denim blue"),
			"light blue": newColorSet("dark blue", "white", "beige", "pink", "silver", "grey"),
			"red":        newColorSet("black", "white", "dark blue", "denim blue", "beige", "grey"),
			"dark red":   newColorSet("black", "beige", "grey", "white", "dark blue"),
			"pink":       newColorSet("grey", "white", "dark blue", "denim blue", "black", "silver"),
			"green":      newColorSet("beige", "white", "black", "navy", "denim blue", "yellow"),
			"dark green": newColorSet("beige", "gold", "brown", "white", "black", "grey"),
			"khaki":      newColorSet("white", "black", "orange", "red", "denim blue"),
			"yellow":     newColorSet("blue", "grey", "white", "black", "navy", "denim blue"),
			"orange":     newColorSet("blue", "white", "black", "grey", "khaki"),
			"brown":      newColorSet("beige", "white", "blue", "denim blue", "green", "dark green"),
		},
		clashes: []clashPair{
			{newColorSet("black"), newColorSet("dark blue", "navy")},
			{newColorSet("black"), newColorSet("brown", "dark beige", "yellowish brown")},
			{newColorSet("grey", "dark grey", "light grey", "silver"), newColorSet("beige", "brown", "gold", "yellowish brown", "mustard")},
			{newColorSet("red", "dark red"), newColorSet("pink", "light pink", "dark pink", "purple", "lilac purple")},
			{newColorSet("red", "dark red"), newColorSet("orange", "dark orange")},
		},
		neutrals: cache.NewKeywordSet(
			"black", "white", "off white", "grey", "gray", "light grey", "dark grey",
			"silver", "transparent", "unknown", "navy", "beige", "cream",
		),
	}
	return p
}

// Name implements ColorModel.
func (p *Palette) Name() string { return ModelPalette }

func (p *Palette) clash(a, b string) bool {
	for _, c := range p.clashes {
		if (c.a.has(a) && c.b.has(b)) || (c.b.has(a) && c.a.has(b)) {
			return true
		}
	}
	return false
}

// IsNeutral reports whether a color name is, or contains, a neutral color.
func (p *Palette) IsNeutral(name string) bool {
	return p.neutrals.Contains(name)
}

func (p *Palette) inPalette(base, candidate string) bool {
	return p.palettes[base].has(candidate)
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Score implements ColorModel.
func (p *Palette) Score(base, candidate *catalog.Article) float64 {
	bGroup, cGroup := norm(base.ColourGroup), norm(candidate.ColourGroup)
	bMaster, cMaster := norm(base.PerceivedColourMaster), norm(candidate.PerceivedColourMaster)
	bValue, cValue := norm(base.PerceivedColourValue), norm(candidate.PerceivedColourValue)

	if p.clash(bGroup, cGroup) || p.clash(bMaster, cMaster) {
		return ClashScore
	}

	score := 0.0
	bNeutral, cNeutral := p.IsNeutral(bGroup), p.IsNeutral(cGroup)

	if p.inPalette(bGroup, cGroup) || p.inPalette(bGroup, cMaster) ||
		p.inPalette(bMaster, cGroup) || p.inPalette(bMaster, cMaster) {
		score += 5
	}

	if bNeutral != cNeutral {
		score += 2
	}

	if bMaster != "" && bMaster == cMaster {
		if bNeutral {
			score++
		} else {
			score += 1.5
		}
	}

	if bValue != "" && cValue != "" && bValue != cValue {
		bDark, bLight := strings.Contains(bValue, "dark"), strings.Contains(bValue, "light")
		cDark, cLight := strings.Contains(cValue, "dark"), strings.Contains(cValue, "light")
		if (bDark && cLight) || (bLight && cDark) {
			score++
		}
	}

	return score
}
