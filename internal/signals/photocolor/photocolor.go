// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package photocolor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"golang.org/x/image/draw"
)

// ErrUndecodable is returned when the input is not a JPEG or PNG image.
var ErrUndecodable = errors.New("image could not be decoded")

// DefaultLabel is reported when no pixel could be classified.
const DefaultLabel = "grey"

const (
	sampleSize = 50
	cropLow    = sampleSize * 2 / 10 // 20%
	cropHigh   = sampleSize * 8 / 10 // 80%
)

type swatch struct {
	label   string
	r, g, b int
}

// palette is ordered; on equal distance the earlier entry wins.
var palette = []swatch{
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"grey", 128, 128, 128},
	{"red", 255, 0, 0},
	{"blue", 0, 0, 255},
	{"navy", 0, 0, 128},
	{"green", 0, 128, 0},
	{"yellow", 255, 255, 0},
	{"beige", 245, 245, 220},
	{"brown", 165, 42, 42},
	{"pink", 255, 192, 203},
	{"orange", 255, 165, 0},
	{"purple", 128, 0, 128},
	{"turquoise", 64, 224, 208},
}

var neutral = map[string]bool{"white": true, "grey": true, "black": true, "beige": true}

// colourGroups maps labels to catalog colour group names.
var colourGroups = map[string]string{
	"black":     "Black",
	"white":     "White",
	"grey":      "Grey",
	"red":       "Red",
	"blue":      "Blue",
	"navy":      "Dark Blue",
	"green":     "Green",
	"yellow":    "Yellow",
	"beige":     "Beige",
	"brown":     "Brown",
	"pink":      "Pink",
	"orange":    "Orange",
	"purple":    "Purple",
	"turquoise": "Turquoise",
}

// Result is the outcome of a detection.
type Result struct {
	// Label is the dominant palette label, e.g. "navy".
	Label string `json:"label"`

	// ColourGroup is the catalog colour group name for Label.
	ColourGroup string `json:"colour_group"`

	// Weights holds the weighted pixel count of every label seen.
	Weights map[string]int `json:"weights"`
}

// Detect decodes a JPEG or PNG image and returns its dominant colour.
func Detect(r io.Reader) (*Result, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}
	return Analyze(img), nil
}

// Analyze returns the dominant colour of img.
//
// The image is downscaled to 50x50 and cropped to its central 20-80% box.
// Each pixel votes for its nearest palette colour by RGB distance; saturated
// mid-brightness pixels of a non-neutral colour vote three times. The
// heaviest label wins, the first seen on a tie.
func Analyze(img image.Image) *Result {
	res := &Result{Label: DefaultLabel, Weights: map[string]int{}}
	if img == nil || img.Bounds().Empty() {
		res.ColourGroup = colourGroups[res.Label]
		return res
	}

	small := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.CatmullRom.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	var order []string
	for y := cropLow; y < cropHigh; y++ {
		for x := cropLow; x < cropHigh; x++ {
			c := small.RGBAAt(x, y)
			label := nearest(c)
			if _, seen := res.Weights[label]; !seen {
				order = append(order, label)
			}
			res.Weights[label] += weight(c, label)
		}
	}

	best := 0
	for _, label := range order {
		if w := res.Weights[label]; w > best {
			best = w
			res.Label = label
		}
	}
	res.ColourGroup = colourGroups[res.Label]
	return res
}

// ColourGroup returns the catalog colour group name of a palette label, or
// "" for an unknown label.
func ColourGroup(label string) string {
	return colourGroups[label]
}

// Labels returns the palette labels in palette order.
func Labels() []string {
	out := make([]string, len(palette))
	for i, s := range palette {
		out[i] = s.label
	}
	return out
}

func nearest(c color.RGBA) string {
	best := palette[0].label
	bestDist := -1
	for _, s := range palette {
		dr := int(c.R) - s.r
		dg := int(c.G) - s.g
		db := int(c.B) - s.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = s.label
		}
	}
	return best
}

func weight(c color.RGBA, label string) int {
	s, v := saturationValue(c)
	if s > 0.1 && v > 0.2 && v < 0.9 && !neutral[label] {
		return 3
	}
	return 1
}

// saturationValue returns the HSV saturation and value of c in [0,1].
func saturationValue(c color.RGBA) (s, v float64) {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	if hi == 0 {
		return 0, 0
	}
	return float64(hi-lo) / float64(hi), float64(hi) / 255
}
