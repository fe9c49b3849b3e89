package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/export"
	"github.com/gorewood/docgen/internal/output"
)

// exportResult is one written file.
type exportResult struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

func newExportCmd(sess *session) *cobra.Command {
	var formatFlag []string
	var outFlag, nameFlag, titleFlag string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the merged document to files",
		Long: `Write the merged document as pdf, docx, md, txt or json.

The file name comes from --name, a pattern with {name}, {date} and {format}
tags; the format extension is added when missing. {name} is --title, or
contrato_sell when no title is set. Unfilled variables are exported as [Name].

Examples:
  docgen export                                   # PDF in the configured export dir
  docgen export --format pdf,docx --out ./out
  docgen export --format md --name "{name}-{date}" --title carta-ana
  docgen export --format txt --out -              # write to stdout`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			formats, err := parseFormats(formatFlag, sess.cfg.Export.Format)
			if err != nil {
				return err
			}

			doc, err := sess.store.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			doc.Name = firstNonEmpty(titleFlag, sess.cfg.Export.Title)

			if outFlag == "-" {
				if len(formats) != 1 || printer.IsJSON() {
					return output.NewUserError("--out - writes a single format and cannot be combined with --json")
				}
				return sess.exporter.Render(cmd.OutOrStdout(), formats[0], doc)
			}

			dir := firstNonEmpty(outFlag, sess.cfg.Export.Dir)
			pattern := firstNonEmpty(nameFlag, sess.cfg.Export.Name)
			results := make([]exportResult, 0, len(formats))
			for _, format := range formats {
				path, err := sess.exporter.WriteFile(dir, pattern, format, doc)
				if err != nil {
					return err
				}
				results = append(results, exportResult{Format: string(format), Path: path})
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"files": results, "missing": doc.Missing})
			}
			for _, r := range results {
				printer.Println(printer.Styles().Success.Render("Exported") + " " + r.Path)
			}
			if len(doc.Missing) > 0 {
				printer.Warn("%s", describeMissing(doc.Missing))
			}
			return nil
		}),
	}
	cmd.Flags().StringSliceVarP(&formatFlag, "format", "F", nil, "Formats: pdf, docx, md, txt, json (comma separated)")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory, or - for stdout")
	cmd.Flags().StringVar(&nameFlag, "name", "", "File name pattern with {name}, {date} and {format}")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Document name used for {name} and the PDF title")
	return cmd
}

// parseFormats parses the --format values, falling back to def.
func parseFormats(values []string, def string) ([]export.Format, error) {
	if len(values) == 0 {
		values = []string{def}
	}
	formats := make([]export.Format, 0, len(values))
	for _, v := range values {
		format, err := export.ParseFormat(v)
		if err != nil {
			return nil, output.NewUserErrorWithCause(err.Error(), err)
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
