// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"fmt"
	"strings"
)

// Macro is the coarse garment slot an article fills in an outfit.
type Macro string

const (
	MacroTop       Macro = "TOP"
	MacroBottom    Macro = "BOTTOM"
	MacroOuterwear Macro = "OUTERWEAR"
	MacroShoes     Macro = "SHOES"
	MacroAccessory Macro = "ACCESSORY"

	// MacroUndefined marks product types outside the macro table. Such
	// articles can be a base item but are never recommended.
	MacroUndefined Macro = ""
)

// DisplayOrder lists the macro-categories head to toe, the order in which
// outfit slots are built and returned.
var DisplayOrder = []Macro{MacroAccessory, MacroTop, MacroOuterwear, MacroBottom, MacroShoes}

// Defined reports whether m is one of the five outfit slots.
func (m Macro) Defined() bool {
	switch m {
	case MacroTop, MacroBottom, MacroOuterwear, MacroShoes, MacroAccessory:
		return true
	}
	return false
}

// ParseMacro parses a macro-category name case-insensitively.
func ParseMacro(s string) (Macro, bool) {
	m := Macro(strings.ToUpper(strings.TrimSpace(s)))
	return m, m.Defined()
}

// Gender is the department segment derived from the index name.
type Gender string

const (
	GenderWomen Gender = "women"
	GenderMen   Gender = "men"
	GenderKids  Gender = "kids"
)

// ParseGender parses a gender segment case-insensitively.
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenderWomen, GenderMen, GenderKids:
		return g, true
	}
	return "", false
}

// Style is the keyword-derived style label used by the compatibility scorer.
type Style string

const (
	StyleSport      Style = "SPORT"
	StyleElegant    Style = "ELEGANT"
	StyleStreetwear Style = "STREETWEAR"
	StyleSummer     Style = "SUMMER"
	StyleCasual     Style = "CASUAL"
)

// Look is the coarse style shown to shoppers for filtering.
type Look string

const (
	LookKids     Look = "Kids"
	LookSport    Look = "Sport"
	LookLounge   Look = "Lounge"
	LookParty    Look = "Party"
	LookBusiness Look = "Business"
	LookCasual   Look = "Casual"
)

// Functional is the seasonal/functional tag used for conflict penalties.
type Functional string

const (
	FunctionalHeavyOuter  Functional = "HEAVY_OUTER"
	FunctionalWinterAcc   Functional = "WINTER_ACC"
	FunctionalWinterShoes Functional = "WINTER_SHOES"
	FunctionalWinterTop   Functional = "WINTER_TOP"
	FunctionalSummerShoes Functional = "SUMMER_SHOES"
	FunctionalSummerAcc   Functional = "SUMMER_ACC"
	FunctionalSummerWear  Functional = "SUMMER_WEAR"
	FunctionalLeggings    Functional = "LEGGINGS"
	FunctionalFormalLayer Functional = "FORMAL_LAYER"
	FunctionalStandard    Functional = "STANDARD"
)

// MatchFamily is the coarse color bucket used for color compatibility.
// It is distinct from the shopper-facing ColorFamily label.
type MatchFamily string

const (
	FamilyBlack     MatchFamily = "black"
	FamilyWhite     MatchFamily = "white"
	FamilyGrey      MatchFamily = "grey"
	FamilyBrown     MatchFamily = "brown"
	FamilyBlue      MatchFamily = "blue"
	FamilyRed       MatchFamily = "red"
	FamilyPink      MatchFamily = "pink"
	FamilyOrange    MatchFamily = "orange"
	FamilyYellow    MatchFamily = "yellow"
	FamilyOlive     MatchFamily = "olive"
	FamilyGreen     MatchFamily = "green"
	FamilyTurquoise MatchFamily = "turquoise"
	FamilyPurple    MatchFamily = "purple"
	FamilyOther     MatchFamily = "other"
	FamilyMulti     MatchFamily = "multi"
)

// Article is a catalog entry. The source attributes come from the catalog
// file; the derived attributes are filled once by the catalog at load and
// are never modified afterwards.
type Article struct {
	ID                    int64  `json:"article_id"`
	Name                  string `json:"prod_name"`
	ProductType           string `json:"product_type_name"`
	ProductGroup          string `json:"product_group_name"`
	IndexName             string `json:"index_name"`
	ColourGroup           string `json:"colour_group_name"`
	PerceivedColourValue  string `json:"perceived_colour_value_name"`
	PerceivedColourMaster string `json:"perceived_colour_master_name"`
	Description           string `json:"detail_desc"`

	Macro         Macro       `json:"macro_category"`
	Gender        Gender      `json:"gender"`
	ColorFamily   string      `json:"color_family"`
	MatchFamily   MatchFamily `json:"match_family"`
	Style         Style       `json:"style"`
	Look          Look        `json:"look"`
	Functional    Functional  `json:"functional_type"`
	OuterwearLike bool        `json:"outerwear_like"`
}

// Code returns the zero-padded 10-digit identifier used for image paths.
func (a *Article) Code() string {
	return Code(a.ID)
}

// Code formats an article identifier as a zero-padded 10-digit string.
func Code(id int64) string {
	return fmt.Sprintf("%010d", id)
}
