package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/timeline"
	"github.com/stefanpenner/focusone/pkg/tui"
)

func addTimeline(topLevel *cobra.Command, a *app) {
	var (
		filters filterFlags
		width   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the timeline of the visible goals",
		Long: `Print the timeline of the visible goals.

--width sets the output width in columns. --json prints the computed layout
instead, at --width-px/--height-px when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			visible := filter.Visible(a.store.All(), spec)
			preset := a.cfg.Preset()
			cfg := a.cfg.LayoutConfig()

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), timeline.Compute(visible, preset, cfg, a.today()))
			}

			if !cmd.Flags().Changed("width-px") {
				cfg.WidthPx = tui.WidthPx(tui.TrackCols(cfg.Mode, width))
			}
			l := timeline.Compute(visible, preset, cfg, a.today())
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s .. %s  %d goals\n",
				color.New(color.Bold).Sprint(l.Preset.Label()), l.Range.Start, l.Range.End, len(l.Bars))
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTimeline(l, tui.RenderOptions{
				Width: width,
				Color: !color.NoColor,
			}))
			return nil
		},
	}
	filters.register(cmd.Flags())
	cmd.Flags().String("preset", "", "range preset: fit, this-month, 6-months, year-to-date, next-year-to-date or 5-years")
	cmd.Flags().String("density", "", "row density: comfortable, balanced or compact")
	cmd.Flags().String("mode", "", "row mode: lanes or flat")
	cmd.Flags().IntVarP(&width, "width", "w", 100, "output width in columns")
	cmd.Flags().Float64("width-px", 0, "layout width in pixels")
	cmd.Flags().Float64("height-px", 0, "target row area height in pixels")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the layout as JSON")
	topLevel.AddCommand(cmd)
}
