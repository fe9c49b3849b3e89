package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/store"
)

// variableRow is one placeholder with its fill state.
type variableRow struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Filled bool   `json:"filled"`
}

// varsResult is the JSON shape of the vars command.
type varsResult struct {
	Variables []variableRow `json:"variables"`
	Missing   []string      `json:"missing"`
}

func newVarsCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "vars",
		Aliases: []string{"variables"},
		Short:   "List the template's variables and their values",
		Long: `List every {Name} placeholder of the current template in order of first
appearance, with its current value. Unfilled variables render as [Name].

Examples:
  docgen vars          # table of variables
  docgen vars --json   # variables, values and missing names as JSON`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			doc, err := sess.store.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			result := buildVarsResult(doc)

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}
			if len(result.Variables) == 0 {
				printer.Println("The current template has no {Name} placeholders.")
				return nil
			}

			rows := make([][]string, 0, len(result.Variables))
			for _, v := range result.Variables {
				status := "filled"
				if !v.Filled {
					status = printer.Styles().Warning.Render("missing")
				}
				rows = append(rows, []string{v.Name, v.Value, status})
			}
			printer.Table([]string{"VARIABLE", "VALUE", "STATUS"}, rows)
			printer.Stderr("\n%d variables, %d unfilled\n", len(result.Variables), len(result.Missing))
			return nil
		}),
	}
}

func buildVarsResult(doc *store.Document) varsResult {
	rows := make([]variableRow, 0, len(doc.Variables))
	for _, name := range doc.Variables {
		value := doc.Values[name]
		rows = append(rows, variableRow{Name: name, Value: value, Filled: value != ""})
	}
	return varsResult{Variables: rows, Missing: doc.Missing}
}

// describeMissing formats the unfilled-variable warning.
func describeMissing(missing []string) string {
	if len(missing) == 1 {
		return fmt.Sprintf("1 variable is unfilled and renders as [%s]", missing[0])
	}
	return fmt.Sprintf("%d variables are unfilled and render as [Name]", len(missing))
}
