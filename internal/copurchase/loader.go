// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package copurchase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Column names of a co-purchase shard.
const (
	ColArticleID1 = "article_id_1"
	ColArticleID2 = "article_id_2"
	ColCount      = "count"
)

// LoadStats describes a shard load.
type LoadStats struct {
	Shards  int `json:"shards"`
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// LoadShards loads every shard file matching a glob pattern. Shards are read
// in lexical order; since counts are summed the order does not change the
// result. No matching file yields ErrDataUnavailable.
func LoadShards(pattern string) (*Index, LoadStats, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w: glob %q: %w", ErrDataUnavailable, pattern, err)
	}
	if len(paths) == 0 {
		return nil, LoadStats{}, fmt.Errorf("%w: no shard matches %q", ErrDataUnavailable, pattern)
	}
	sort.Strings(paths)
	return LoadFiles(paths...)
}

// LoadFiles loads the given shard files into one index.
func LoadFiles(paths ...string) (*Index, LoadStats, error) {
	if len(paths) == 0 {
		return nil, LoadStats{}, fmt.Errorf("%w: no shard files", ErrDataUnavailable)
	}

	b := NewBuilder()
	var stats LoadStats
	for _, p := range paths {
		if err := loadFile(b, p, &stats); err != nil {
			return nil, stats, err
		}
	}
	return b.Index(), stats, nil
}

func loadFile(b *Builder, path string, stats *LoadStats) error {
	f, err := os.Open(path) //nolint:gosec // operator-supplied data path
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrDataUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	rows, skipped, err := Read(f, b)
	stats.Shards++
	stats.Rows += rows
	stats.Skipped += skipped
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Read adds the pair records of one shard to b and returns the row and
// skipped-row counts. The header selects columns by name.
func Read(r io.Reader, b *Builder) (rows, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("%w: header: %w", ErrDataUnavailable, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	idx := make([]int, 3)
	for i, name := range []string{ColArticleID1, ColArticleID2, ColCount} {
		pos, ok := cols[name]
		if !ok {
			return 0, 0, fmt.Errorf("%w: missing column %q", ErrDataUnavailable, name)
		}
		idx[i] = pos
	}

	parse := func(rec []string, i int) (int64, bool) {
		if idx[i] >= len(rec) {
			return 0, false
		}
		v, err := strconv.ParseInt(strings.TrimSpace(rec[idx[i]]), 10, 64)
		return v, err == nil
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, skipped, nil
		}
		if err != nil {
			return rows, skipped, fmt.Errorf("%w: row %d: %w", ErrDataUnavailable, rows+1, err)
		}
		rows++

		a, okA := parse(rec, 0)
		bID, okB := parse(rec, 1)
		count, okC := parse(rec, 2)
		if !okA || !okB || !okC || !b.Add(Pair{A: a, B: bID, Count: count}) {
			skipped++
		}
	}
}
