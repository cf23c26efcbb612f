package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/store"
)

// goalFlags edit the fields of one goal. Only flags set on the command line
// are applied.
type goalFlags struct {
	title    string
	start    string
	end      string
	category string
	priority string
	status   string
	notes    string
}

func (f *goalFlags) register(fs *pflag.FlagSet, withTitle bool) {
	if withTitle {
		fs.StringVar(&f.title, "title", "", "goal title")
	}
	fs.StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	fs.StringVarP(&f.category, "category", "c", "", "STRATEGY, VISION, TACTICAL, PROJECT or DAILY")
	fs.StringVarP(&f.priority, "priority", "p", "", "low, medium, high or critical")
	fs.StringVarP(&f.status, "status", "s", "", "open, in-progress, blocked or done")
	fs.StringVar(&f.notes, "notes", "", "markdown notes")
}

func (f *goalFlags) apply(fs *pflag.FlagSet, g *goal.Goal) error {
	var errs []error
	if fs.Changed("title") {
		g.Title = f.title
	}
	if fs.Changed("start") {
		d, err := goal.ParseDate(f.start)
		errs = append(errs, err)
		g.StartDate = d
	}
	if fs.Changed("end") {
		d, err := goal.ParseDate(f.end)
		errs = append(errs, err)
		g.EndDate = d
	}
	if fs.Changed("category") {
		c, ok := goal.ParseCategory(f.category)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown category %q", f.category))
		}
		g.Category = c
	}
	if fs.Changed("priority") {
		p, ok := goal.ParsePriority(f.priority)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown priority %q", f.priority))
		}
		g.Priority = p
	}
	if fs.Changed("status") {
		s, ok := goal.ParseStatus(f.status)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown status %q", f.status))
		}
		g.Status = s
	}
	if fs.Changed("notes") {
		g.Notes = f.notes
	}
	return errors.Join(errs...)
}

func (a *app) lookup(id string) (goal.Goal, error) {
	g, ok := a.store.Get(id)
	if !ok {
		return goal.Goal{}, fmt.Errorf("goal %q: %w", id, store.ErrNotFound)
	}
	return g, nil
}

func addAdd(topLevel *cobra.Command, a *app) {
	var flags goalFlags
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := goal.NewDefault(a.today())
			draft.Title = strings.Join(args, " ")
			if err := flags.apply(cmd.Flags(), &draft); err != nil {
				return err
			}
			if err := goal.Validate(draft); err != nil {
				return err
			}
			g := a.store.Create(draft)
			if err := a.persisted(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s %s\n", g.ID, g.DisplayTitle())
			return nil
		},
	}
	flags.register(cmd.Flags(), false)
	topLevel.AddCommand(cmd)
}

func addUpdate(topLevel *cobra.Command, a *app) {
	var flags goalFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), &g); err != nil {
				return err
			}
			if err := goal.Validate(g); err != nil {
				return err
			}
			a.store.Update(g)
			if err := a.persisted(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s %s\n", g.ID, g.DisplayTitle())
			return nil
		},
	}
	flags.register(cmd.Flags(), true)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			a.store.Delete(g.ID)
			if err := a.persisted(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s %s\n", g.ID, g.DisplayTitle())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addMilestone(topLevel *cobra.Command, a *app) {
	var label, date, start, end, markColor string
	cmd := &cobra.Command{
		Use:       "milestone <id> point|window|none",
		Short:     "Set or clear the milestone of a goal",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"point", "window", "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.lookup(args[0])
			if err != nil {
				return err
			}

			var ms *goal.Milestone
			switch kind := strings.ToLower(args[1]); kind {
			case "none":
			case "point", "window":
				ms = &goal.Milestone{Type: goal.MilestoneType(kind), Label: label, Color: markColor}
				var errs []error
				if kind == "point" {
					ms.Date, err = parseOptionalDate(date)
					errs = append(errs, err)
				} else {
					ms.WindowStart, err = parseOptionalDate(start)
					errs = append(errs, err)
					ms.WindowEnd, err = parseOptionalDate(end)
					errs = append(errs, err)
				}
				errs = append(errs, goal.ValidateMilestone(*ms)...)
				if err := errors.Join(errs...); err != nil {
					return err
				}
				ms.ID = goal.NewID()
				if g.Milestone != nil {
					ms.ID = g.Milestone.ID
				}
			default:
				return fmt.Errorf("unknown milestone type %q (want point, window or none)", args[1])
			}

			g.Milestone = ms
			a.store.Update(g)
			if err := a.persisted(); err != nil {
				return err
			}
			if ms == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared milestone of %s\n", g.DisplayTitle())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Milestone of %s: %s\n", g.DisplayTitle(), ms.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "milestone label")
	cmd.Flags().StringVar(&date, "date", "", "point milestone date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&markColor, "color", "", "marker color, e.g. #f59e0b")
	topLevel.AddCommand(cmd)
}

// parseOptionalDate leaves an empty value zero so validation can report it.
func parseOptionalDate(s string) (goal.Date, error) {
	if strings.TrimSpace(s) == "" {
		return goal.Date{}, nil
	}
	return goal.ParseDate(s)
}
