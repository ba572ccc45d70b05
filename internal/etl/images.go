// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/outfitter/internal/catalog"
)

// ImageStats describes an image copy.
type ImageStats struct {
	Copied   int `json:"copied"`
	Existing int `json:"existing"`
	Missing  int `json:"missing"`
}

// Images copies the product image of every article of a catalog file from
// srcRoot to dstRoot, keeping the {prefix}/{code}.jpg layout. Images already
// present in dstRoot are left alone; missing sources are counted, not
// errors.
func (r *Runner) Images(ctx context.Context, catalogPath, srcRoot, dstRoot string) (Result, ImageStats, error) {
	start := time.Now()
	if srcRoot == "" || dstRoot == "" {
		return Result{}, ImageStats{}, fmt.Errorf("%w: image roots must be set", ErrInvalidInput)
	}

	ids, err := r.ArticleIDs(ctx, catalogPath)
	if err != nil {
		return Result{}, ImageStats{}, err
	}

	var stats ImageStats
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return Result{}, stats, err
		}
		rel := catalog.RelativePath(id)
		src := filepath.Join(srcRoot, rel)
		dst := filepath.Join(dstRoot, rel)

		if _, err := os.Stat(dst); err == nil {
			stats.Existing++
			continue
		}
		copied, err := copyFile(src, dst)
		if err != nil {
			return Result{}, stats, err
		}
		if !copied {
			r.logger.Debug().Str("article", catalog.Code(id)).Str("path", src).Msg("Image not found")
			stats.Missing++
			continue
		}
		stats.Copied++
	}

	r.logger.Info().
		Int("copied", stats.Copied).
		Int("existing", stats.Existing).
		Int("missing", stats.Missing).
		Str("destination", dstRoot).
		Msg("Image sample copied")
	return r.finish(StepImages, int64(stats.Copied), []string{dstRoot}, start), stats, nil
}

// copyFile copies src to dst with its modification time. A missing src
// returns false and no error.
func copyFile(src, dst string) (bool, error) {
	in, err := os.Open(src) //nolint:gosec // operator-supplied image root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640) //nolint:gosec // operator-supplied image root
	if err != nil {
		return false, fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", dst, err)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return true, nil
}
