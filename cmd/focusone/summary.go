package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/summary"
)

const histogramCols = 30

var kpiAttrs = map[string]color.Attribute{
	"total":   color.FgWhite,
	"active":  color.FgCyan,
	"blocked": color.FgRed,
	"done":    color.FgGreen,
}

func addSummary(topLevel *cobra.Command, a *app) {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print goal counts and distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := a.store.All()
			counts := summary.Compute(goals)
			byCategory := summary.ByCategory(goals)
			byPriority := summary.ByPriority(goals)

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), struct {
					Counts     summary.Counts    `json:"counts"`
					ByCategory summary.Histogram `json:"byCategory"`
					ByPriority summary.Histogram `json:"byPriority"`
				}{counts, byCategory, byPriority})
			}

			out := cmd.OutOrStdout()
			var strip []string
			for _, k := range counts.KPIs() {
				strip = append(strip, fmt.Sprintf("%s %s", k.Label, color.New(kpiAttrs[k.Key], color.Bold).Sprint(k.Value)))
			}
			fmt.Fprintln(out, strings.Join(strip, "  "))
			fmt.Fprintln(out)
			printHistogram(out, "By category", byCategory, func(key string) *color.Color {
				return categoryColor(goal.Category(key))
			})
			fmt.Fprintln(out)
			printHistogram(out, "By priority", byPriority, func(string) *color.Color {
				return color.New(color.FgYellow)
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print counts and histograms as JSON")
	topLevel.AddCommand(cmd)
}

func printHistogram(w io.Writer, title string, h summary.Histogram, paint func(key string) *color.Color) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range h.Buckets {
		n := int(b.Ratio(h.Peak)*histogramCols + 0.5)
		if b.Count > 0 {
			n = max(n, 1)
		}
		tbl.AddRow(b.Label, paint(b.Key).Sprint(strings.Repeat("█", n)), b.Count)
	}
	fmt.Fprintln(w, tbl)
}
