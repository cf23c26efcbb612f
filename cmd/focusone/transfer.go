package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/focusone/pkg/transfer"
)

// formatFor picks the --format value, or guesses from the file extension.
func formatFor(flag, path string) (transfer.Format, error) {
	if flag == "" {
		flag = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if flag != "yaml" && flag != "yml" {
			flag = "json"
		}
	}
	return transfer.ParseFormat(flag)
}

func addImport(topLevel *cobra.Command, a *app) {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all goals with the contents of a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, args[0])
			if err != nil {
				return err
			}
			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading import: %w", err)
			}
			goals, err := transfer.ImportAs(data, f, a.today())
			if err != nil {
				return err
			}
			a.store.ReplaceAll(goals)
			if err := a.persisted(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d goals\n", len(goals))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, a *app) {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write all goals as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			f, err := formatFor(format, path)
			if err != nil {
				return err
			}
			if path == "" {
				return transfer.ExportAs(cmd.OutOrStdout(), f, a.store.All())
			}

			out, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export: %w", err)
			}
			if err := transfer.ExportAs(out, f, a.store.All()); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d goals to %s\n", a.store.Len(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")
	topLevel.AddCommand(cmd)
}
