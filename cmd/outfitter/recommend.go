// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/dataset"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

var recommendFlags struct {
	perCategory  int
	targets      []string
	exclude      []int64
	seed         int64
	weather      string
	mergeSimilar bool
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	f := recommendCmd.Flags()
	f.IntVarP(&recommendFlags.perCategory, "per-category", "n", 0, "Items per category (default from config)")
	f.StringSliceVar(&recommendFlags.targets, "targets", nil, "Categories to fill, e.g. TOP,SHOES")
	f.Int64SliceVar(&recommendFlags.exclude, "exclude", nil, "Article ids never to return")
	f.Int64Var(&recommendFlags.seed, "seed", 0, "Seed of the fallback draw (default from config)")
	f.StringVar(&recommendFlags.weather, "weather", "", "Weather condition: Cold, Hot, Rain, Snow or Normal")
	f.BoolVar(&recommendFlags.mergeSimilar, "merge-similar", false, "Also merge co-purchases of similar items")
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <article-id>",
	Short: "Recommend an outfit around a catalog article",
	Long: `Load the catalog and co-purchase data named by the configuration and
print the outfit recommended for one base article.

Example:
  outfitter recommend 108775015 --per-category 3 --weather Cold --human`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	baseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || baseID <= 0 {
		return &exitError{code: ExitError, err: fmt.Errorf("invalid article id %q", args[0])}
	}
	req, err := buildRequest(baseID)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.WithComponent("recommend")
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return err
	}
	if err := dataset.NewLoader(dataset.SourcesFromConfig(cfg), engine, logger).Reload(cmd.Context()); err != nil {
		return err
	}

	resp, err := engine.Recommend(cmd.Context(), req)
	if errors.Is(err, catalog.ErrNotFound) {
		return &exitError{code: ExitNotFound, err: err}
	}
	if err != nil {
		return err
	}

	if humanOutput {
		printOutfit(cmd.OutOrStdout(), resp)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}

// buildRequest turns the recommend flags into an engine request.
func buildRequest(baseID int64) (recommend.Request, error) {
	req := recommend.Request{
		BaseID:       baseID,
		Exclude:      recommendFlags.exclude,
		PerCategory:  recommendFlags.perCategory,
		Seed:         recommendFlags.seed,
		MergeSimilar: recommendFlags.mergeSimilar,
	}
	for _, t := range recommendFlags.targets {
		m, ok := catalog.ParseMacro(t)
		if !ok {
			return recommend.Request{}, fmt.Errorf("unknown category %q", t)
		}
		req.Targets = append(req.Targets, m)
	}
	cond, err := scoring.ParseCondition(recommendFlags.weather)
	if err != nil {
		return recommend.Request{}, err
	}
	req.Weather = cond
	return req, nil
}
