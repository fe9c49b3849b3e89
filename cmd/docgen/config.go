package main

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/docgen/internal/config"
	"github.com/gorewood/docgen/internal/output"
)

func newConfigCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file and
DOCGEN_* environment variables (DOCGEN_STORE_DRIVER, DOCGEN_PDF_FONT_SIZE, ...).`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(_ *cobra.Command, _ []string, printer *output.Printer) error {
			cfg := sess.cfg
			if printer.IsJSON() {
				return printer.WriteJSON(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			source := cfg.Source
			if source == "" {
				source = "defaults (no " + config.FileName + " in " + config.Dir() + ")"
			}
			printer.Println(printer.Styles().Muted.Render("# source: " + source))
			printer.Println(strings.TrimRight(string(data), "\n"))
			return nil
		}),
	}
}
