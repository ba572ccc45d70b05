// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names of the catalog source file.
const (
	ColArticleID             = "article_id"
	ColProdName              = "prod_name"
	ColProductType           = "product_type_name"
	ColProductGroup          = "product_group_name"
	ColIndexName             = "index_name"
	ColColourGroup           = "colour_group_name"
	ColPerceivedColourValue  = "perceived_colour_value_name"
	ColPerceivedColourMaster = "perceived_colour_master_name"
	ColDetailDesc            = "detail_desc"
)

// Columns lists the catalog source columns in file order.
var Columns = []string{
	ColArticleID, ColProdName, ColProductType, ColProductGroup, ColIndexName,
	ColColourGroup, ColPerceivedColourValue, ColPerceivedColourMaster, ColDetailDesc,
}

// LoadStats describes a catalog load.
type LoadStats struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// LoadFile reads a catalog CSV file. A missing or unreadable file yields an
// error wrapping ErrDataUnavailable.
func LoadFile(path string) (*Catalog, LoadStats, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied data path
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w: open %s: %w", ErrDataUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()

	c, stats, err := Read(f)
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	return c, stats, nil
}

// Read parses catalog CSV from r. The header row selects columns by name;
// article_id and product_type_name are required, the rest default to empty.
// Rows whose identifier does not parse are skipped and counted.
func Read(r io.Reader) (*Catalog, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, LoadStats{}, fmt.Errorf("%w: empty catalog", ErrDataUnavailable)
		}
		return nil, LoadStats{}, fmt.Errorf("%w: header: %w", ErrDataUnavailable, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{ColArticleID, ColProductType} {
		if _, ok := cols[required]; !ok {
			return nil, LoadStats{}, fmt.Errorf("%w: missing column %q", ErrDataUnavailable, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		raw   []Article
		stats LoadStats
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: row %d: %w", ErrDataUnavailable, stats.Rows+1, err)
		}
		stats.Rows++

		id, err := strconv.ParseInt(field(rec, ColArticleID), 10, 64)
		if err != nil || id <= 0 {
			stats.Skipped++
			continue
		}

		raw = append(raw, Article{
			ID:                    id,
			Name:                  field(rec, ColProdName),
			ProductType:           field(rec, ColProductType),
			ProductGroup:          field(rec, ColProductGroup),
			IndexName:             field(rec, ColIndexName),
			ColourGroup:           field(rec, ColColourGroup),
			PerceivedColourValue:  field(rec, ColPerceivedColourValue),
			PerceivedColourMaster: field(rec, ColPerceivedColourMaster),
			Description:           field(rec, ColDetailDesc),
		})
	}

	return New(raw), stats, nil
}
