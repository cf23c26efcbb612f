package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/transfer"
)

func addList(topLevel *cobra.Command, a *app) {
	var (
		filters filterFlags
		group   string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals in date order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			visible := filter.Visible(a.store.All(), spec)
			if jsonOut {
				return transfer.Export(cmd.OutOrStdout(), visible)
			}
			if len(visible) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals match.")
				return nil
			}
			today := a.today()
			for i, sec := range filter.Group(visible, filter.ParseGroupMode(group)) {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", color.New(color.Bold).Sprint(sec.Label), len(sec.Goals))
				fmt.Fprintln(cmd.OutOrStdout(), goalTable(sec.Goals, today))
			}
			return nil
		},
	}
	filters.register(cmd.Flags())
	cmd.Flags().StringVarP(&group, "group", "g", string(filter.GroupByStatus), "section by status, priority or flow")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print goals as a JSON array")
	topLevel.AddCommand(cmd)
}

func goalTable(goals []goal.Goal, today goal.Date) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	for _, g := range goals {
		due := g.EndDate.String()
		if g.IsOverdue(today) {
			due = color.RedString("%s !", due)
		}
		tbl.AddRow(
			g.ID,
			categoryColor(g.Category).Sprint(g.Category.Label()),
			g.Priority.Label(),
			g.Status.Label(),
			g.StartDate.String(),
			due,
			g.DisplayTitle(),
		)
	}
	return tbl
}

var categoryAttrs = map[goal.Category]color.Attribute{
	goal.CategoryStrategy: color.FgMagenta,
	goal.CategoryVision:   color.FgBlue,
	goal.CategoryTactical: color.FgGreen,
	goal.CategoryProject:  color.FgYellow,
	goal.CategoryDaily:    color.FgCyan,
}

func categoryColor(c goal.Category) *color.Color {
	if attr, ok := categoryAttrs[c]; ok {
		return color.New(attr)
	}
	return color.New(color.Reset)
}
