// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newTitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "Print the sorted, deduplicated title listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			titles := engine.Titles()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(titles)
			}
			for _, title := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as a JSON array")
	return cmd
}

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [title...]",
		Short: "Print recommendations for a selection of titles",
		Long: `Print up to recommend.top_n titles similar to the selection.

Titles may be given as arguments or with repeated --title flags. Unknown
titles are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagTitles, _ := cmd.Flags().GetStringArray("title")
			selection := append(flagTitles, args...)
			if len(selection) == 0 {
				return errors.New("at least one title is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			scores, _ := cmd.Flags().GetBool("scores")

			if scores {
				ranking := engine.Explain(selection)
				if jsonOut {
					return json.NewEncoder(out).Encode(ranking.Items)
				}
				for _, item := range ranking.Items {
					fmt.Fprintf(out, "%.6f\t%s\n", item.Score, item.Title)
				}
				return nil
			}

			result := engine.Recommend(cmd.Context(), selection)
			if jsonOut {
				return json.NewEncoder(out).Encode(result)
			}
			for _, title := range result.Recommendations {
				fmt.Fprintln(out, title)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayP("title", "t", nil, "Selected title (repeatable)")
	cmd.Flags().Bool("scores", false, "Include aggregate similarity scores")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
