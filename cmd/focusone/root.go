package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagLookup is the part of *cobra.Command that config loading needs.
type flagLookup interface {
	Flags() *pflag.FlagSet
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "focusone",
		Short:         "Plan goals on a timeline from the terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), cmd, !cmd.HasParent(), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default focusone.yaml in the user config dir)")
	pf.String("data-dir", "", "directory holding the goal store")
	pf.String("backend", "", "storage backend: diskv, sqlite or memory")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	addList(cmd, a)
	addAdd(cmd, a)
	addUpdate(cmd, a)
	addDelete(cmd, a)
	addMilestone(cmd, a)
	addTimeline(cmd, a)
	addSummary(cmd, a)
	addImport(cmd, a)
	addExport(cmd, a)
	return cmd
}
