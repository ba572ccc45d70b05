// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package photocolor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// split paints columns [0, at) with left and the rest with right.
func split(w, h, at int, left, right color.RGBA) *image.RGBA {
	img := solid(w, h, left)
	for y := 0; y < h; y++ {
		for x := at; x < w; x++ {
			img.SetRGBA(x, y, right)
		}
	}
	return img
}

// framed paints a border of frame around a centre of centre.
func framed(size, border int, frame, centre color.RGBA) *image.RGBA {
	img := solid(size, size, frame)
	for y := border; y < size-border; y++ {
		for x := border; x < size-border; x++ {
			img.SetRGBA(x, y, centre)
		}
	}
	return img
}

var (
	white    = color.RGBA{255, 255, 255, 255}
	black    = color.RGBA{0, 0, 0, 255}
	midBlue  = color.RGBA{0, 0, 200, 255}
	midRed   = color.RGBA{200, 0, 0, 255}
	midGrey  = color.RGBA{128, 128, 128, 255}
	deepNavy = color.RGBA{10, 10, 120, 255}
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		img  image.Image
		want string
	}{
		{"solid grey", solid(80, 80, midGrey), "grey"},
		{"solid navy", solid(64, 48, deepNavy), "navy"},
		{"tiny image is upscaled", solid(1, 1, midRed), "red"},
		{"border is cropped away", framed(100, 20, white, midRed), "red"},
		{"saturated pixels outweigh neutrals", split(100, 100, 60, white, midBlue), "blue"},
		{"neutral majority without saturation", split(100, 100, 60, white, black), "white"},
		{"half black half red", split(100, 100, 50, black, midRed), "red"},
		{"empty image", image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Analyze(tt.img)
			if got.Label != tt.want {
				t.Errorf("Label = %q, want %q (weights %v)", got.Label, tt.want, got.Weights)
			}
			if got.ColourGroup != ColourGroup(tt.want) {
				t.Errorf("ColourGroup = %q, want %q", got.ColourGroup, ColourGroup(tt.want))
			}
		})
	}
}

func TestAnalyze_Weights(t *testing.T) {
	t.Parallel()

	got := Analyze(solid(50, 50, midRed))
	// 30x30 crop, every pixel saturated and mid-bright.
	if got.Weights["red"] != 900*3 {
		t.Errorf("red weight = %d, want %d", got.Weights["red"], 900*3)
	}

	got = Analyze(solid(50, 50, midGrey))
	if got.Weights["grey"] != 900 {
		t.Errorf("grey weight = %d, want 900", got.Weights["grey"])
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, framed(60, 10, white, deepNavy)); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	var jpgBuf bytes.Buffer
	if err := jpeg.Encode(&jpgBuf, solid(40, 40, midGrey), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{name: "png", data: pngBuf.Bytes(), want: "navy"},
		{name: "jpeg", data: jpgBuf.Bytes(), want: "grey"},
		{name: "not an image", data: []byte("definitely not pixels"), wantErr: ErrUndecodable},
		{name: "empty", data: nil, wantErr: ErrUndecodable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Detect(bytes.NewReader(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got.Label != tt.want {
				t.Errorf("Label = %q, want %q", got.Label, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	labels := Labels()
	if len(labels) != 14 {
		t.Fatalf("len(Labels()) = %d, want 14", len(labels))
	}
	for _, l := range labels {
		if ColourGroup(l) == "" {
			t.Errorf("label %q has no colour group", l)
		}
		if strings.ToLower(l) != l {
			t.Errorf("label %q is not lowercase", l)
		}
	}
	if ColourGroup("chartreuse") != "" {
		t.Error("unknown label mapped to a colour group")
	}
}
