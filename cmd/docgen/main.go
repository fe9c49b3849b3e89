// Package main provides the entry point for the docgen CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2026-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color flag against TTY detection on stdout.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	sess := &session{}
	cmd := newRootCmdWith(sess)
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	if closeErr := sess.close(); closeErr != nil && err == nil {
		err = output.NewSystemErrorWithCause("failed to close store", closeErr)
	}
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the docgen CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(&session{})
}

// newRootCmdWith creates the root command around sess. A session that
// already holds a store is used as-is, which lets tests inject one.
func newRootCmdWith(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docgen",
		Short: "Fill form-letter templates and export them",
		Long: `docgen - fill {Name} placeholders in a form-letter template and export the result.

The current template, its variable values and your saved templates persist
between runs. Values are kept by variable name, so they survive template edits.

Typical session:
  docgen vars                         # list placeholders and what is filled
  docgen set Nome "Ana Souza" CPF 123 # fill values
  docgen preview                      # check the merged document
  docgen export --format pdf          # write contrato_sell.pdf

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'docgen --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Config file (default: config.yaml in the docgen config dir)")
	cmd.PersistentFlags().String("store", "", "Override store.driver: file, sqlite, redis or memory")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, sess)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "output", Title: "Output Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "templates", Title: "Template Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, sess *session) {
	addGroupedCommand(cmd, newVarsCmd(sess), "core")
	addGroupedCommand(cmd, newSetCmd(sess), "core")
	addGroupedCommand(cmd, newUnsetCmd(sess), "core")
	addGroupedCommand(cmd, newValuesCmd(sess), "core")
	addGroupedCommand(cmd, newFillCmd(sess), "core")
	addGroupedCommand(cmd, newEditCmd(sess), "core")

	addGroupedCommand(cmd, newPreviewCmd(sess), "output")
	addGroupedCommand(cmd, newRenderCmd(sess), "output")
	addGroupedCommand(cmd, newExportCmd(sess), "output")

	addGroupedCommand(cmd, newTemplateCmd(sess), "templates")

	addGroupedCommand(cmd, newConfigCmd(sess), "admin")
	addGroupedCommand(cmd, newServeCmd(sess), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
