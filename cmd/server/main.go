// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	rootCmd := &cobra.Command{
		Use:   "reelmatch",
		Short: "Item-based movie recommendation service",
		Long: `reelmatch recommends movies similar to a selection of titles, using
item-item cosine similarity over a user rating matrix.

Without a subcommand it runs the HTTP server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "Path to config file (overrides CONFIG_PATH)")
	pf.String("source", "", "Source kind: file or duckdb")
	pf.String("movies", "", "Movie file path")
	pf.String("ratings", "", "Rating file path")
	pf.String("duckdb", "", "DuckDB database path")
	pf.String("log-level", "", "Log level: trace, debug, info, warn or error")
	rootCmd.Flags().Int("port", 0, "HTTP listen port")

	rootCmd.AddCommand(
		serve,
		newTitlesCmd(),
		newRecommendCmd(),
	)
	return rootCmd
}
