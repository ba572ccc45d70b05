// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/etl"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOutfit writes one table row per recommended item.
func printOutfit(w io.Writer, resp *recommend.Response) {
	base := resp.Base
	fmt.Fprintf(w, "Base %s  %s (%s, %s, %s)\n\n",
		base.Code(), base.Name, base.ProductType, base.ColourGroup, base.Macro)

	if resp.Empty {
		fmt.Fprintln(w, "No recommendations.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tARTICLE\tNAME\tCOLOUR\tSOURCE\tCOUNT\tSCORE\tDISPLAY")
	for _, cat := range resp.Categories {
		for _, c := range cat.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.1f\t%.2f\n",
				cat.Macro, c.Article.Code(), c.Article.Name, c.Article.ColourGroup,
				c.Provenance, c.Count, c.Score.Hybrid, c.Display)
		}
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nseed %d, colour model %s, %d ms\n",
		resp.Metadata.Seed, resp.Metadata.ColorModel, resp.Metadata.LatencyMS)
}

// printResult writes a one-line summary of an ETL step.
func printResult(w io.Writer, r etl.Result) {
	fmt.Fprintf(w, "%s: %d rows in %s\n", r.Step, r.Rows, r.Duration.Round(1e6))
	for _, out := range r.Outputs {
		fmt.Fprintf(w, "  %s\n", out)
	}
}
