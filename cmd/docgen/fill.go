package main

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/variable"
)

func newFillCmd(sess *session) *cobra.Command {
	var missingFlag bool
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill variables in an interactive form",
		Long: `Open a form with one input per variable of the current template, prefilled
with the stored values. Submitting stores every answer.

Examples:
  docgen fill            # all variables
  docgen fill --missing  # only unfilled variables`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			if printer.IsJSON() || !output.IsTTY(cmd.InOrStdin()) {
				return output.NewUserError("fill needs an interactive terminal; use 'docgen set NAME VALUE' instead")
			}

			ctx := cmd.Context()
			doc, err := sess.store.Resolve(ctx)
			if err != nil {
				return err
			}
			names := doc.Variables
			if missingFlag {
				names = doc.Missing
			}
			if len(names) == 0 {
				return printer.Success(map[string]any{"message": "Nothing to fill"})
			}

			answers := make([]string, len(names))
			fields := make([]huh.Field, len(names))
			for i, name := range names {
				answers[i] = doc.Values[name]
				fields[i] = huh.NewInput().
					Title(name).
					Placeholder(variable.Unfilled(name)).
					Value(&answers[i])
			}

			if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return output.NewUserError("fill cancelled, nothing stored")
				}
				return err
			}

			updates := make(map[string]string, len(names))
			for i, name := range names {
				updates[name] = answers[i]
			}
			if err := sess.store.SetValues(ctx, updates); err != nil {
				return err
			}
			return printer.Success(map[string]any{"message": "Stored values for " + pluralize(len(names), "variable")})
		}),
	}
	cmd.Flags().BoolVar(&missingFlag, "missing", false, "Only ask for unfilled variables")
	return cmd
}
