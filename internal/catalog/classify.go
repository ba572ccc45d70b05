// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"strings"
	"unicode"

	"github.com/tomtom215/outfitter/internal/cache"
)

// Derivation tables. Every automaton below is built once at package
// initialization and only read afterwards.

var macroByProductType = map[string]Macro{
	"Hoodie":          MacroTop,
	"Sweater":         MacroTop,
	"Top":             MacroTop,
	"T-shirt":         MacroTop,
	"Shirt":           MacroTop,
	"Polo shirt":      MacroTop,
	"Blouse":          MacroTop,
	"Cardigan":        MacroTop,
	"Vest top":        MacroTop,
	"Sweatshirt":      MacroTop,
	"Long sleeve top": MacroTop,
	"Longsleeve":      MacroTop,

	"Trousers":        MacroBottom,
	"Jeans":           MacroBottom,
	"Shorts":          MacroBottom,
	"Skirt":           MacroBottom,
	"Leggings/Tights": MacroBottom,

	"Jacket": MacroOuterwear,
	"Coat":   MacroOuterwear,
	"Blazer": MacroOuterwear,

	"Sneakers":       MacroShoes,
	"Boots":          MacroShoes,
	"Bootie":         MacroShoes,
	"Ballerinas":     MacroShoes,
	"Moccasins":      MacroShoes,
	"Pumps":          MacroShoes,
	"Heels":          MacroShoes,
	"Heeled sandals": MacroShoes,
	"Sandals":        MacroShoes,
	"Flat shoe":      MacroShoes,
	"Flat shoes":     MacroShoes,
	"Flip flop":      MacroShoes,
	"Other shoe":     MacroShoes,

	"Cap":         MacroAccessory,
	"Beanie":      MacroAccessory,
	"Headband":    MacroAccessory,
	"Hat/beanie":  MacroAccessory,
	"Hat/brim":    MacroAccessory,
	"Straw hat":   MacroAccessory,
	"Felt hat":    MacroAccessory,
	"Bucket hat":  MacroAccessory,
	"Bag":         MacroAccessory,
}

// MacroFor maps a product type name to its macro-category by exact match.
func MacroFor(productType string) Macro {
	return macroByProductType[productType]
}

// ProductTypes returns the product types of the macro table.
func ProductTypes() []string {
	out := make([]string, 0, len(macroByProductType))
	for pt := range macroByProductType {
		out = append(out, pt)
	}
	return out
}

// GenderFor derives the department segment from an index name.
func GenderFor(indexName string) Gender {
	switch {
	case strings.Contains(indexName, "Menswear"):
		return GenderMen
	case strings.Contains(indexName, "Baby"), strings.Contains(indexName, "Children"):
		return GenderKids
	default:
		return GenderWomen
	}
}

// Ordered substring rules: the first listed key contained in the color name wins.
var matchFamilies = cache.NewAutomatonFromPairs(
	[]string{
		"greenish khaki", "khaki", "olive", "yellowish green", "lime",
		"bluish green", "turquoise", "teal", "aqua",
		"yellowish brown", "bronze", "copper", "gold", "mustard", "lilac", "mole",
		"black",
		"white", "off white", "transparent",
		"grey", "silver", "metal",
		"beige", "brown",
		"blue", "red", "pink", "orange", "yellow", "green", "purple",
		"undefined", "unknown", "other",
		"multi",
	},
	[]MatchFamily{
		FamilyOlive, FamilyOlive, FamilyOlive, FamilyOlive, FamilyOlive,
		FamilyTurquoise, FamilyTurquoise, FamilyTurquoise, FamilyTurquoise,
		FamilyBrown, FamilyOrange, FamilyOrange, FamilyYellow, FamilyYellow, FamilyPurple, FamilyBrown,
		FamilyBlack,
		FamilyWhite, FamilyWhite, FamilyWhite,
		FamilyGrey, FamilyGrey, FamilyGrey,
		FamilyBrown, FamilyBrown,
		FamilyBlue, FamilyRed, FamilyPink, FamilyOrange, FamilyYellow, FamilyGreen, FamilyPurple,
		FamilyOther, FamilyOther, FamilyOther,
		FamilyMulti,
	},
)

// MatchFamilyOf maps one color name to a matching family.
func MatchFamilyOf(name string) MatchFamily {
	if f, ok := matchFamilies.FirstByPriority(name); ok {
		return f
	}
	return FamilyOther
}

// MatchFamilyFor resolves the matching family from the color group name,
// falling back to the perceived master color when the group is
// uninformative.
func MatchFamilyFor(colourGroup, perceivedMaster string) MatchFamily {
	f := MatchFamilyOf(colourGroup)
	if f == FamilyOther || f == FamilyMulti {
		f = MatchFamilyOf(perceivedMaster)
	}
	return f
}

var uiColorFamilies = map[string]string{
	"beige":           "Beige/Brown",
	"dark beige":      "Beige/Brown",
	"light beige":     "Beige/Brown",
	"greyish beige":   "Beige/Brown",
	"yellowish brown": "Beige/Brown",
	"brown":           "Beige/Brown",
	"dark brown":      "Beige/Brown",
	"light brown":     "Beige/Brown",
	"khaki":           "Beige/Brown",

	"black":      "Black",
	"white":      "White",
	"off white":  "White",
	"grey":       "Grey",
	"gray":       "Grey",
	"dark grey":  "Grey",
	"light grey": "Grey",

	"blue":       "Blue",
	"dark blue":  "Blue",
	"light blue": "Blue",
	"navy":       "Blue",
	"denim blue": "Blue",

	"red":        "Red",
	"dark red":   "Red",
	"light red":  "Red",
	"other red":  "Red",
	"pink":       "Pink",
	"dark pink":  "Pink",
	"light pink": "Pink",
	"other pink": "Pink",

	"green":       "Green",
	"dark green":  "Green",
	"light green": "Green",
	"other green": "Green",
	"lime":        "Green",
	"olive":       "Green",

	"yellow":       "Yellow",
	"dark yellow":  "Yellow",
	"light yellow": "Yellow",
	"other yellow": "Yellow",

	"orange":       "Orange",
	"dark orange":  "Orange",
	"light orange": "Orange",
	"other orange": "Orange",

	"purple":       "Purple",
	"dark purple":  "Purple",
	"light purple": "Purple",
	"lilac":        "Purple",

	"turquoise":       "Turquoise",
	"dark turquoise":  "Turquoise",
	"light turquoise": "Turquoise",

	"gold":        "Metallic",
	"silver":      "Metallic",
	"metallic":    "Metallic",
	"transparent": "Transparent",

	"multi":          "Multicolour",
	"multicolour":    "Multicolour",
	"multi coloured": "Multicolour",
	"other":          "Other/Unknown",
	"unknown":        "Other/Unknown",
}

// ColorFamilyFor returns the shopper-facing color family of a color group
// name. Names outside the table are title-cased.
func ColorFamilyFor(colourGroup string) string {
	name := strings.ToLower(strings.TrimSpace(colourGroup))
	if name == "" {
		return "Other/Unknown"
	}
	if f, ok := uiColorFamilies[name]; ok {
		return f
	}
	return titleCase(name)
}

// titleCase upper-cases every letter that follows a non-letter.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

type styleWeight struct {
	style  Style
	weight float64
}

// styleOrder breaks ties: the earlier style wins.
var styleOrder = []Style{StyleSport, StyleElegant, StyleStreetwear, StyleSummer, StyleCasual}

var styleKeywords = func() *cache.Automaton[styleWeight] {
	table := []struct {
		style    Style
		keywords []string
		weights  []float64
	}{
		{StyleSport, []string{"sport", "running", "gym", "seamless", "dry", "leggings", "bra"}, []float64{3, 3, 3, 2, 2, 1, 1}},
		{StyleElegant, []string{"blazer", "suit", "tailored", "satin", "silk", "blouse", "pump", "loafer"}, []float64{3, 3, 3, 2, 2, 2, 3, 3}},
		{StyleStreetwear, []string{"hoodie", "sweatshirt", "oversized", "relaxed", "cargo", "sneakers", "cap", "bucket"}, []float64{3, 3, 2, 1, 2, 2, 2, 2}},
		{StyleSummer, []string{"linen", "bikini", "swim", "shorts", "sandal", "straw", "hat"}, []float64{3, 3, 3, 2, 3, 3, 1}},
		{StyleCasual, []string{"denim", "jeans", "t-shirt", "basic", "jersey", "cardigan", "knit"}, []float64{2, 2, 2, 2, 1, 1, 1}},
	}

	ac := cache.NewAutomaton[styleWeight]()
	for _, row := range table {
		for i, kw := range row.keywords {
			ac.Add(kw, styleWeight{style: row.style, weight: row.weights[i]})
		}
	}
	ac.Build()
	return ac
}()

// StyleFor scores every style by the summed weights of its keywords found in
// the product type, name, description, and index name, and returns the
// best. Articles with no keyword at all are CASUAL.
func StyleFor(a *Article) Style {
	text := strings.Join([]string{a.ProductType, a.Name, a.Description, a.IndexName}, " ")

	scores := make(map[Style]float64, len(styleOrder))
	for _, idx := range styleKeywords.Distinct(text) {
		sw := styleKeywords.Value(idx)
		scores[sw.style] += sw.weight
	}

	best := StyleCasual
	bestScore := 0.0
	for _, s := range styleOrder {
		if scores[s] > bestScore {
			best, bestScore = s, scores[s]
		}
	}
	return best
}

var (
	sportKeywords  = cache.NewKeywordSet("sport", "running", "training", "gym", "racer", "seamless", "leggings", "bra", "technical", "yoga")
	loungeKeywords = cache.NewKeywordSet("pyjama", "robe", "sleep", "night", "fleece", "soft", "home", "slipper", "jogger", "hoodie")
	partyKeywords  = cache.NewKeywordSet("sequin", "glitter", "sparkle", "metallic", "satin", "velvet", "tuxedo", "suit", "dressy", "party", "rhinestone")
	antiBusiness   = cache.NewKeywordSet("jogger", "sweat", "runner", "loose", "relaxed", "cargo", "denim", "jeans")

	businessTypes = map[string]struct{}{
		"Blazer": {}, "Shirt": {}, "Blouse": {}, "Trousers": {}, "Skirt": {}, "Coat": {},
		"Pumps": {}, "Heels": {}, "Loafers": {}, "Boots": {}, "Polo shirt": {},
	}
)

// LookFor derives the shopper-facing look from the index, product type,
// name, and color group.
func LookFor(a *Article) Look {
	idx := a.IndexName
	if strings.Contains(idx, "Baby") || strings.Contains(idx, "Children") {
		return LookKids
	}
	if strings.Contains(idx, "Sport") || a.ProductType == "Sneakers" || a.ProductType == "Leggings/Tights" ||
		sportKeywords.Contains(a.Name) {
		return LookSport
	}
	if loungeKeywords.Contains(a.Name) {
		return LookLounge
	}
	if partyKeywords.Contains(a.Name) || strings.Contains(strings.ToLower(a.ColourGroup), "gold") {
		return LookParty
	}
	if _, ok := businessTypes[a.ProductType]; ok {
		if strings.Contains(idx, "Divided") || antiBusiness.Contains(a.Name) {
			return LookCasual
		}
		return LookBusiness
	}
	return LookCasual
}

var (
	heavyJacketWords = cache.NewKeywordSet("padded", "down", "wool", "warm", "lined", "puffer", "heavy", "faux fur", "shearling")
	warmKnitWords    = cache.NewKeywordSet("wool", "cashmere", "knit", "heavy", "warm", "mohair")
	summerSkirtWords = cache.NewKeywordSet("linen", "short", "mini")
	summerDressWords = cache.NewKeywordSet("linen", "sleeveless", "straps", "viscose", "beach")
)

// FunctionalFor derives the functional tag from the product type and
// description. Rules are evaluated in order; the first that applies wins.
func FunctionalFor(productType, description string) Functional {
	pt := strings.ToLower(productType)
	desc := strings.ToLower(description)

	switch pt {
	case "coat":
		return FunctionalHeavyOuter
	case "jacket":
		if heavyJacketWords.Contains(desc) {
			return FunctionalHeavyOuter
		}
	}

	switch pt {
	case "beanie", "hat/beanie", "scarf", "gloves":
		return FunctionalWinterAcc
	case "boots", "bootie":
		return FunctionalWinterShoes
	case "sweater", "cardigan":
		if warmKnitWords.Contains(desc) {
			return FunctionalWinterTop
		}
	}

	switch pt {
	case "sandals", "flip flop", "heeled sandals", "mules":
		return FunctionalSummerShoes
	case "straw hat", "cap", "bucket hat", "visor":
		return FunctionalSummerAcc
	case "shorts", "vest top", "crop top", "bikini", "swimsuit":
		return FunctionalSummerWear
	case "skirt":
		if summerSkirtWords.Contains(desc) {
			return FunctionalSummerWear
		}
	case "dress":
		if summerDressWords.Contains(desc) {
			return FunctionalSummerWear
		}
	}

	if strings.Contains(desc, "linen") {
		return FunctionalSummerWear
	}
	if strings.Contains(pt, "leggings") || strings.Contains(pt, "tights") {
		return FunctionalLeggings
	}
	if pt == "blazer" || pt == "suit" {
		return FunctionalFormalLayer
	}
	return FunctionalStandard
}

var outerwearWords = cache.NewKeywordSet(
	"jacket", "coat", "parka", "anorak", "blazer", "outerwear", "puffer", "down jacket", "windbreaker",
)

// IsOuterwearLike reports whether an article reads as outerwear by category,
// product type, or name.
func IsOuterwearLike(a *Article) bool {
	if a.Macro == MacroOuterwear {
		return true
	}
	return outerwearWords.Contains(a.ProductType) || outerwearWords.Contains(a.Name)
}

// derive fills every derived attribute except Macro, which is settled by
// the macro table and reclassification first.
func derive(a *Article) {
	a.Gender = GenderFor(a.IndexName)
	a.ColorFamily = ColorFamilyFor(a.ColourGroup)
	a.MatchFamily = MatchFamilyFor(a.ColourGroup, a.PerceivedColourMaster)
	a.Style = StyleFor(a)
	a.Look = LookFor(a)
	a.Functional = FunctionalFor(a.ProductType, a.Description)
	a.OuterwearLike = IsOuterwearLike(a)
}
