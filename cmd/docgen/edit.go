package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/variable"
)

func newEditCmd(sess *session) *cobra.Command {
	var fileFlag string
	var resetFlag bool
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the current template",
		Long: `Replace the current template with the contents of a file, or of stdin with
--file -. A leading YAML frontmatter block with name, description or version
is dropped; any other text, including a leading --- rule, is kept as written.
Stored values are kept.

Examples:
  docgen edit --file contrato.md
  pbpaste | docgen edit --file -
  docgen edit --reset            # back to the built-in default template`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			ctx := cmd.Context()
			if resetFlag {
				if err := sess.store.ResetTemplate(ctx); err != nil {
					return err
				}
				return printer.Success(map[string]any{"message": "Template reset to " + library.DefaultName})
			}
			if fileFlag == "" {
				return output.NewUserError("specify --file PATH, --file - for stdin, or --reset")
			}

			raw, err := readSource(cmd, fileFlag)
			if err != nil {
				return output.NewUserErrorWithCause("failed to read "+fileFlag, err)
			}
			tmpl, err := library.Parse(string(raw))
			if err != nil {
				return output.NewUserErrorWithCause("invalid template frontmatter", err)
			}
			if err := sess.store.SetTemplate(ctx, tmpl.Content); err != nil {
				return err
			}

			names := variable.Extract(tmpl.Content)
			if printer.IsJSON() {
				return printer.Success(map[string]any{"variables": names})
			}
			return printer.Success(map[string]any{"message": "Template replaced, " + pluralize(len(names), "variable")})
		}),
	}
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Template file, or - for stdin")
	cmd.Flags().BoolVar(&resetFlag, "reset", false, "Restore the built-in default template")
	return cmd
}

// readSource reads path, or the command's stdin when path is "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
