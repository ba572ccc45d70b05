// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/outfitter/internal/etl"
	"github.com/tomtom215/outfitter/internal/logging"
)

// workDB is the DuckDB file the ETL steps stage their tables in; empty
// keeps everything in memory.
var workDB string

func init() {
	rootCmd.AddCommand(etlCmd)
	etlCmd.PersistentFlags().StringVar(&workDB, "work-db", "", "DuckDB file for staging (default: in memory)")

	etlCmd.AddCommand(etlArticlesCmd, etlPairsCmd, etlSplitCmd, etlImagesCmd, etlSnapshotCmd)

	etlPairsCmd.Flags().Int("min-count", etl.DefaultMinCount, "Drop pairs bought together fewer times")
	etlSplitCmd.Flags().Int("parts", etl.DefaultShards, "Number of shards")
	etlSnapshotCmd.Flags().String("glob", "", "Shard glob (default: COPURCHASE_GLOB)")
	etlSnapshotCmd.Flags().String("out", "", "Snapshot directory (default: COPURCHASE_SNAPSHOT_PATH)")
}

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Build the catalog and co-purchase inputs",
	Long: `Offline steps that turn a raw article export and transaction log into
the files the service reads:

  articles  raw articles CSV   -> filtered catalog CSV
  pairs     catalog + txns CSV -> co-purchase pair counts
  split     pair counts        -> copurchase_part_{i}.csv shards
  images    catalog + images   -> sampled image tree
  snapshot  shards             -> badger snapshot`,
}

var etlArticlesCmd = &cobra.Command{
	Use:   "articles <raw-articles.csv> <output.csv>",
	Short: "Filter the raw article export to outfit product types",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(r *etl.Runner) (etl.Result, error) {
			return r.Articles(cmd.Context(), args[0], args[1])
		})
	},
}

var etlPairsCmd = &cobra.Command{
	Use:   "pairs <catalog.csv> <transactions.csv> <output.csv>",
	Short: "Count same-customer same-day co-purchases",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		minCount, err := cmd.Flags().GetInt("min-count")
		if err != nil {
			return err
		}
		return withRunner(cmd, func(r *etl.Runner) (etl.Result, error) {
			return r.Pairs(cmd.Context(), etl.PairsOptions{
				Articles:     args[0],
				Transactions: args[1],
				Output:       args[2],
				MinCount:     minCount,
			})
		})
	},
}

var etlSplitCmd = &cobra.Command{
	Use:   "split <pairs.csv> <output-dir>",
	Short: "Split a pair file into shards",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts, err := cmd.Flags().GetInt("parts")
		if err != nil {
			return err
		}
		return withRunner(cmd, func(r *etl.Runner) (etl.Result, error) {
			return r.Split(cmd.Context(), args[0], args[1], parts)
		})
	},
}

var etlImagesCmd = &cobra.Command{
	Use:   "images <catalog.csv> <source-root> <sample-root>",
	Short: "Copy the images of catalog articles",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var stats etl.ImageStats
		err := withRunner(cmd, func(r *etl.Runner) (etl.Result, error) {
			res, s, err := r.Images(cmd.Context(), args[0], args[1], args[2])
			stats = s
			return res, err
		})
		if err == nil && humanOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "  copied %d, existing %d, missing %d\n",
				stats.Copied, stats.Existing, stats.Missing)
		}
		return err
	},
}

var etlSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Aggregate the shards into a badger snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		glob, _ := cmd.Flags().GetString("glob")
		out, _ := cmd.Flags().GetString("out")
		if glob == "" || out == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if glob == "" {
				glob = cfg.Copurchase.Glob
			}
			if out == "" {
				out = cfg.Copurchase.SnapshotPath
			}
		}

		meta, err := etl.Snapshot(cmd.Context(), glob, out, logging.Logger())
		if err != nil {
			return err
		}
		if humanOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot: %d articles, %d records -> %s\n", meta.Articles, meta.Records, out)
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), meta)
	},
}

// withRunner opens a DuckDB runner, runs step and prints its result.
func withRunner(cmd *cobra.Command, step func(*etl.Runner) (etl.Result, error)) error {
	r, err := etl.Open(workDB, logging.WithComponent("etl"))
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	res, err := step(r)
	if err != nil {
		return err
	}
	if humanOutput {
		printResult(cmd.OutOrStdout(), res)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), res)
}
