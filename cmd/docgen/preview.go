package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/markup"
	"github.com/gorewood/docgen/internal/output"
)

func newPreviewCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the merged document in the terminal",
		Long: `Show the current template with every {Name} replaced by its value.
On a terminal, headings, bold and italic runs are styled and unfilled [Name]
markers are highlighted.

Examples:
  docgen preview
  docgen preview --color never | less`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			doc, err := sess.store.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(doc)
			}

			printer.Preview(doc.Resolved, doc.Missing)
			if len(doc.Missing) > 0 {
				printer.Warn("%s", describeMissing(doc.Missing))
			}
			return nil
		}),
	}
}

func newRenderCmd(sess *session) *cobra.Command {
	var stripFlag bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the resolved text to stdout",
		Long: `Print the current template with values substituted, unstyled, for piping.
With --strip, inline **bold** and *italic* markers and heading prefixes are removed.

Examples:
  docgen render > contrato.md
  docgen render --strip | wc -w`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			doc, err := sess.store.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			text := doc.Resolved
			if stripFlag {
				text = markup.Strip(text)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"text": text, "missing": doc.Missing})
			}
			printer.Println(text)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&stripFlag, "strip", false, "Remove inline markup and heading prefixes")
	return cmd
}
