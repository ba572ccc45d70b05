// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if humanOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "outfitter %s (%s)\n", Version, runtime.Version())
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"version": Version,
			"go":      runtime.Version(),
		})
	},
}
