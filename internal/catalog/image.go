// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// ImageResolver locates product images laid out as {prefix}/{code}.jpg,
// where code is the 10-digit article identifier and prefix its first three
// digits.
type ImageResolver struct {
	// Root is a local image directory. Empty disables local lookup.
	Root string

	// BaseURL is a remote image location. Empty disables URLs.
	BaseURL string
}

// RelativePath returns the image path relative to an image root.
func RelativePath(id int64) string {
	code := Code(id)
	return filepath.Join(code[:3], code+".jpg")
}

// LocalPath returns the local file path for id and whether the file exists.
// A missing image is a normal outcome.
func (r ImageResolver) LocalPath(id int64) (string, bool) {
	if r.Root == "" {
		return "", false
	}
	p := filepath.Join(r.Root, RelativePath(id))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

// URL returns the remote image URL for id, or "" when no base URL is set.
func (r ImageResolver) URL(id int64) string {
	if r.BaseURL == "" {
		return ""
	}
	code := Code(id)
	return strings.TrimRight(r.BaseURL, "/") + "/" + code[:3] + "/" + code + ".jpg"
}
