// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import "testing"

func TestMacroFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		productType string
		want        Macro
	}{
		{"Hoodie", MacroTop},
		{"Leggings/Tights", MacroBottom},
		{"Blazer", MacroOuterwear},
		{"Flip flop", MacroShoes},
		{"Bucket hat", MacroAccessory},
		{"Dress", MacroUndefined},
		{"hoodie", MacroUndefined}, // exact match only
	}

	for _, tt := range tests {
		if got := MacroFor(tt.productType); got != tt.want {
			t.Errorf("MacroFor(%q) = %q, want %q", tt.productType, got, tt.want)
		}
	}
}

func TestGenderFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index string
		want  Gender
	}{
		{"Menswear", GenderMen},
		{"Children Sizes 92-140", GenderKids},
		{"Baby Sizes 50-98", GenderKids},
		{"Ladieswear", GenderWomen},
		{"Divided", GenderWomen},
		{"", GenderWomen},
	}

	for _, tt := range tests {
		if got := GenderFor(tt.index); got != tt.want {
			t.Errorf("GenderFor(%q) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestMatchFamilyFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		group, master string
		want          MatchFamily
	}{
		{"Black", "", FamilyBlack},
		{"Greenish Khaki", "", FamilyOlive},
		{"Dark Blue", "", FamilyBlue},
		{"Light Turquoise", "", FamilyTurquoise},
		{"Off White", "", FamilyWhite},
		{"Gold", "", FamilyYellow},
		{"Yellowish Brown", "", FamilyBrown},
		{"Beige", "", FamilyBrown},
		{"Dark Green", "", FamilyGreen},
		{"Other", "Red", FamilyRed},
		{"Multi", "Blue", FamilyBlue},
		{"Unknown", "Undefined", FamilyOther},
		{"", "", FamilyOther},
	}

	for _, tt := range tests {
		if got := MatchFamilyFor(tt.group, tt.master); got != tt.want {
			t.Errorf("MatchFamilyFor(%q, %q) = %q, want %q", tt.group, tt.master, got, tt.want)
		}
	}
}

func TestColorFamilyFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		group string
		want  string
	}{
		{"Dark Blue", "Blue"},
		{"khaki", "Beige/Brown"},
		{"Silver", "Metallic"},
		{"", "Other/Unknown"},
		{"greenish khaki", "Greenish Khaki"},
		{"off-white", "Off-White"},
	}

	for _, tt := range tests {
		if got := ColorFamilyFor(tt.group); got != tt.want {
			t.Errorf("ColorFamilyFor(%q) = %q, want %q", tt.group, got, tt.want)
		}
	}
}

func TestStyleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Article
		want Style
	}{
		{"streetwear keywords", Article{ProductType: "Hoodie", Name: "Oversized hoodie"}, StyleStreetwear},
		{"elegant keywords", Article{ProductType: "Blazer", Name: "Tailored blazer"}, StyleElegant},
		{"no keyword is casual", Article{ProductType: "Trousers", Name: "Plain"}, StyleCasual},
		{"repeated keyword counts once", Article{ProductType: "Jeans", Name: "Slim jeans"}, StyleCasual},
		{"tie goes to earlier style", Article{ProductType: "Top", Name: "Gym hoodie"}, StyleSport},
		{"summer keywords", Article{ProductType: "Sandals", Name: "Straw sandals"}, StyleSummer},
		{"description counts", Article{ProductType: "Top", Name: "Vest", Description: "Seamless running top"}, StyleSport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := tt.a
			if got := StyleFor(&a); got != tt.want {
				t.Errorf("StyleFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Article
		want Look
	}{
		{"baby index", Article{IndexName: "Baby Sizes 50-98", ProductType: "Top", Name: "Sport top"}, LookKids},
		{"sport index", Article{IndexName: "Sport", ProductType: "Top", Name: "Tank"}, LookSport},
		{"sneakers", Article{IndexName: "Ladieswear", ProductType: "Sneakers", Name: "Chunky"}, LookSport},
		{"lounge keyword", Article{IndexName: "Ladieswear", ProductType: "Top", Name: "Soft pyjama top"}, LookLounge},
		{"party keyword", Article{IndexName: "Ladieswear", ProductType: "Top", Name: "Sequin top"}, LookParty},
		{"gold colour", Article{IndexName: "Ladieswear", ProductType: "Top", Name: "Shiny top", ColourGroup: "Gold"}, LookParty},
		{"business type", Article{IndexName: "Ladieswear", ProductType: "Blazer", Name: "Slim blazer"}, LookBusiness},
		{"business type in Divided", Article{IndexName: "Divided", ProductType: "Blazer", Name: "Slim blazer"}, LookCasual},
		{"anti business keyword", Article{IndexName: "Ladieswear", ProductType: "Trousers", Name: "Relaxed trousers"}, LookCasual},
		{"default casual", Article{IndexName: "Ladieswear", ProductType: "Top", Name: "Basic top"}, LookCasual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := tt.a
			if got := LookFor(&a); got != tt.want {
				t.Errorf("LookFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFunctionalFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		productType, desc string
		want              Functional
	}{
		{"Coat", "", FunctionalHeavyOuter},
		{"Jacket", "Padded jacket with a hood", FunctionalHeavyOuter},
		{"Jacket", "Denim jacket", FunctionalStandard},
		{"Beanie", "", FunctionalWinterAcc},
		{"Boots", "", FunctionalWinterShoes},
		{"Sweater", "Soft wool blend", FunctionalWinterTop},
		{"Sweater", "Cotton", FunctionalStandard},
		{"Sandals", "", FunctionalSummerShoes},
		{"Cap", "", FunctionalSummerAcc},
		{"Shorts", "", FunctionalSummerWear},
		{"Skirt", "Mini skirt", FunctionalSummerWear},
		{"Skirt", "Pleated midi", FunctionalStandard},
		{"Dress", "Sleeveless dress", FunctionalSummerWear},
		{"Trousers", "Linen trousers", FunctionalSummerWear},
		{"Leggings/Tights", "", FunctionalLeggings},
		{"Blazer", "", FunctionalFormalLayer},
		{"T-shirt", "", FunctionalStandard},
	}

	for _, tt := range tests {
		if got := FunctionalFor(tt.productType, tt.desc); got != tt.want {
			t.Errorf("FunctionalFor(%q, %q) = %q, want %q", tt.productType, tt.desc, got, tt.want)
		}
	}
}

func TestIsOuterwearLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Article
		want bool
	}{
		{"outerwear macro", Article{Macro: MacroOuterwear, ProductType: "Blazer"}, true},
		{"parka in name", Article{Macro: MacroTop, ProductType: "Top", Name: "Lightweight parka"}, true},
		{"windbreaker type", Article{Macro: MacroUndefined, ProductType: "Windbreaker"}, true},
		{"plain top", Article{Macro: MacroTop, ProductType: "Top", Name: "Jersey top"}, false},
	}

	for _, tt := range tests {
		a := tt.a
		if got := IsOuterwearLike(&a); got != tt.want {
			t.Errorf("%s: IsOuterwearLike() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
