// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, in-memory article table. All methods are safe
// for concurrent use because nothing mutates a Catalog after New returns.
type Catalog struct {
	articles []Article
	byID     map[int64]int
	byMacro  map[Macro][]int
}

// New builds a catalog from raw rows. Rows are prepared (macro table,
// reclassification, derived attributes) and deduplicated by identifier,
// keeping the first occurrence. Source order is preserved.
func New(raw []Article) *Catalog {
	prepared := Prepare(raw)

	c := &Catalog{
		articles: make([]Article, 0, len(prepared)),
		byID:     make(map[int64]int, len(prepared)),
		byMacro:  make(map[Macro][]int, len(DisplayOrder)+1),
	}
	for i := range prepared {
		a := prepared[i]
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		pos := len(c.articles)
		c.articles = append(c.articles, a)
		c.byID[a.ID] = pos
		c.byMacro[a.Macro] = append(c.byMacro[a.Macro], pos)
	}
	return c
}

// Len returns the number of articles.
func (c *Catalog) Len() int {
	return len(c.articles)
}

// Lookup returns the article with the given identifier, or an error
// wrapping ErrNotFound. The returned article is shared and must not be
// modified.
func (c *Catalog) Lookup(id int64) (*Article, error) {
	pos, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return &c.articles[pos], nil
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// Filter selects articles. Zero-valued fields do not constrain the result.
type Filter struct {
	// Macro restricts to one macro-category.
	Macro Macro

	// Gender restricts to one department segment.
	Gender Gender

	// IndexName restricts to one index/department name, case-insensitively.
	IndexName string

	// ProductType restricts to one exact product type name.
	ProductType string

	// Exclude lists identifiers never returned.
	Exclude map[int64]struct{}
}

// Filter returns matching articles in catalog order.
func (c *Catalog) Filter(f Filter) []*Article {
	var positions []int
	if f.Macro != MacroUndefined {
		positions = c.byMacro[f.Macro]
	}

	var out []*Article
	match := func(a *Article) {
		if f.Gender != "" && a.Gender != f.Gender {
			return
		}
		if f.IndexName != "" && !strings.EqualFold(a.IndexName, f.IndexName) {
			return
		}
		if f.ProductType != "" && a.ProductType != f.ProductType {
			return
		}
		if _, skip := f.Exclude[a.ID]; skip {
			return
		}
		out = append(out, a)
	}

	if f.Macro != MacroUndefined {
		for _, pos := range positions {
			match(&c.articles[pos])
		}
		return out
	}
	for i := range c.articles {
		match(&c.articles[i])
	}
	return out
}

// MacroCounts returns the number of articles per macro-category, with
// undefined articles under MacroUndefined.
func (c *Catalog) MacroCounts() map[Macro]int {
	out := make(map[Macro]int, len(c.byMacro))
	for m, positions := range c.byMacro {
		out[m] = len(positions)
	}
	return out
}
