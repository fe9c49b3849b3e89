package main

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/envfile"
	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/variable"
)

func newSetCmd(sess *session) *cobra.Command {
	var fromFlag string
	cmd := &cobra.Command{
		Use:   "set NAME VALUE [NAME VALUE...]",
		Short: "Set variable values",
		Long: `Set one or more variable values. Names match placeholders exactly,
including spaces and accents. An empty value is stored and renders as [Name].

--from reads NAME=VALUE lines from a file, or stdin with --from -. Pairs
given as arguments override values from the file.

Examples:
  docgen set Nome_Cliente "Ana Souza"
  docgen set CPF_Cliente 123.456.789-00 Cidade "São Paulo"
  docgen set Observacao ""
  docgen set --from cliente.env`,
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			if len(args)%2 != 0 || (len(args) == 0 && fromFlag == "") {
				return output.NewUserError("set takes NAME VALUE pairs or --from FILE")
			}
			ctx := cmd.Context()
			updates := make(map[string]string, len(args)/2)
			names := make([]string, 0, len(args)/2)
			if fromFlag != "" {
				entries, err := readValuesFile(cmd, fromFlag)
				if err != nil {
					return output.NewUserErrorWithCause("failed to read "+fromFlag, err)
				}
				names = append(names, envfile.Names(entries)...)
				maps.Copy(updates, envfile.Values(entries))
			}
			for i := 0; i < len(args); i += 2 {
				if args[i] == "" {
					return output.NewUserError("variable name cannot be empty")
				}
				if _, seen := updates[args[i]]; !seen {
					names = append(names, args[i])
				}
				updates[args[i]] = args[i+1]
			}
			if err := sess.store.SetValues(ctx, updates); err != nil {
				return err
			}

			template, err := sess.store.Template(ctx)
			if err != nil {
				return err
			}
			var unused []string
			known := variable.Extract(template)
			for _, name := range names {
				if !slices.Contains(known, name) {
					unused = append(unused, name)
				}
			}

			if printer.IsJSON() {
				return printer.Success(map[string]any{"set": names, "unused": nonNil(unused)})
			}
			if len(unused) > 0 {
				printer.Warn("not used by the current template: %s", strings.Join(unused, ", "))
			}
			if len(names) == 0 {
				return printer.Success(map[string]any{"message": "No values in " + fromFlag})
			}
			return printer.Success(map[string]any{"message": "Set " + strings.Join(names, ", ")})
		}),
	}
	cmd.Flags().StringVar(&fromFlag, "from", "", "Read NAME=VALUE lines from a file, or - for stdin")
	return cmd
}

// readValuesFile parses a values file, or the command's stdin when path is "-".
func readValuesFile(cmd *cobra.Command, path string) ([]envfile.Entry, error) {
	if path == "-" {
		return envfile.Parse(cmd.InOrStdin())
	}
	return envfile.Read(path)
}

func newUnsetCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "unset NAME [NAME...]",
		Short: "Remove variable values",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			for _, name := range args {
				if err := sess.store.UnsetValue(cmd.Context(), name); err != nil {
					return err
				}
			}
			if printer.IsJSON() {
				return printer.Success(map[string]any{"unset": args})
			}
			return printer.Success(map[string]any{"message": "Unset " + strings.Join(args, ", ")})
		}),
	}
}

func newValuesCmd(sess *session) *cobra.Command {
	var clearFlag, envFlag bool
	cmd := &cobra.Command{
		Use:   "values",
		Short: "Show or clear all stored values",
		Long: `Show every stored value, including values for names the current template
does not use. With --clear, remove them all. With --env, print NAME=VALUE
lines that 'docgen set --from' reads back.

Examples:
  docgen values
  docgen values --env > cliente.env
  docgen values --clear`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			ctx := cmd.Context()
			if clearFlag {
				if err := sess.store.ClearValues(ctx); err != nil {
					return err
				}
				if printer.IsJSON() {
					return printer.Success(map[string]any{"cleared": true})
				}
				return printer.Success(map[string]any{"message": "Cleared all values"})
			}

			values, err := sess.store.Values(ctx)
			if err != nil {
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(values)
			}
			if envFlag {
				if err := envfile.Write(printer.Writer(), values); err != nil {
					return output.NewUserErrorWithCause("values cannot be written as NAME=VALUE lines", err)
				}
				return nil
			}
			if len(values) == 0 {
				printer.Println("No values stored.")
				return nil
			}
			rows := make([][]string, 0, len(values))
			for _, name := range slices.Sorted(maps.Keys(values)) {
				rows = append(rows, []string{name, values[name]})
			}
			printer.Table([]string{"NAME", "VALUE"}, rows)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove all stored values")
	cmd.Flags().BoolVar(&envFlag, "env", false, "Print values as NAME=VALUE lines")
	return cmd
}

// nonNil returns an empty slice for nil so JSON output has [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
