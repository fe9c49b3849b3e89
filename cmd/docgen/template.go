package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/store"
	"github.com/gorewood/docgen/internal/variable"
)

// templateRow is a saved template without its content.
type templateRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Variables int       `json:"variables"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newTemplateCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Manage saved and built-in templates",
		Long: `Save the current template under a name, load saved templates back, and
import template files. Saved templates are referenced by ID or name.

Examples:
  docgen template list
  docgen template save-as "Contrato padrão"
  docgen template load "Contrato padrão"
  docgen template import "modelos/**/*.md"
  docgen template builtin carta-simples`,
	}
	cmd.AddCommand(
		newTemplateListCmd(sess),
		newTemplateShowCmd(sess),
		newTemplateSaveCmd(sess),
		newTemplateSaveAsCmd(sess),
		newTemplateLoadCmd(sess),
		newTemplateDeleteCmd(sess),
		newTemplateImportCmd(sess),
		newTemplateBuiltinCmd(sess),
	)
	return cmd
}

func newTemplateListCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, printer *output.Printer) error {
			saved, err := sess.store.SavedTemplates(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]templateRow, 0, len(saved))
			for _, t := range saved {
				rows = append(rows, templateRow{
					ID:        t.ID,
					Name:      t.Name,
					Variables: len(variable.Extract(t.Content)),
					UpdatedAt: t.UpdatedAt,
				})
			}

			if printer.IsJSON() {
				return printer.WriteJSON(rows)
			}
			if len(rows) == 0 {
				printer.Println("No saved templates. Save the current one with 'docgen template save-as NAME'.")
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					shortID(r.ID), r.Name, fmt.Sprint(r.Variables), r.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			printer.Table([]string{"ID", "NAME", "VARS", "UPDATED"}, table)
			return nil
		}),
	}
}

func newTemplateShowCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID|NAME]",
		Short: "Print the current template, or a saved one",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			ctx := cmd.Context()
			name, content := "current", ""
			if len(args) == 1 {
				saved, err := sess.store.Find(ctx, args[0])
				if err != nil {
					return err
				}
				name, content = saved.Name, saved.Content
			} else {
				current, err := sess.store.Template(ctx)
				if err != nil {
					return err
				}
				content = current
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"name":      name,
					"content":   content,
					"variables": variable.Extract(content),
				})
			}
			printer.Println(content)
			return nil
		}),
	}
}

func newTemplateSaveCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "save ID|NAME",
		Short: "Overwrite a saved template with the current template",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			ctx := cmd.Context()
			current, err := sess.store.Template(ctx)
			if err != nil {
				return err
			}
			saved, err := sess.store.Save(ctx, args[0], current)
			if err != nil {
				return err
			}
			return printSaved(printer, "Saved", saved)
		}),
	}
}

func newTemplateSaveAsCmd(sess *session) *cobra.Command {
	var forceFlag bool
	cmd := &cobra.Command{
		Use:   "save-as NAME",
		Short: "Save the current template under a new name",
		Long: `Save the current template under NAME. Fails with exit code 3 when a saved
template already has that name, unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			ctx := cmd.Context()
			current, err := sess.store.Template(ctx)
			if err != nil {
				return err
			}
			saved, err := sess.store.SaveAs(ctx, args[0], current, forceFlag)
			if errors.Is(err, store.ErrNameTaken) {
				return output.NewConflictError(fmt.Sprintf("a saved template named %q exists (use --force to overwrite)", args[0]))
			}
			if err != nil {
				return err
			}
			return printSaved(printer, "Saved", saved)
		}),
	}
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite a saved template with the same name")
	return cmd
}

func newTemplateLoadCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "load ID|NAME",
		Short: "Make a saved template the current template",
		Long:  `Make a saved template the current template. Stored values are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			saved, err := sess.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSaved(printer, "Loaded", saved)
		}),
	}
}

func newTemplateDeleteCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID|NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a saved template",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			removed, err := sess.store.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSaved(printer, "Deleted", removed)
		}),
	}
}

func newTemplateImportCmd(sess *session) *cobra.Command {
	var forceFlag bool
	cmd := &cobra.Command{
		Use:   "import GLOB",
		Short: "Save template files as named templates",
		Long: `Save every .md, .txt or .markdown file matching GLOB as a saved template.
The name comes from the file's frontmatter, or from its file name. "**"
matches across directories. Existing names are skipped unless --force.

Examples:
  docgen template import contrato.md
  docgen template import "modelos/**/*.md" --force`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			files, err := library.Glob(args[0])
			if err != nil {
				return output.NewUserErrorWithCause(err.Error(), err)
			}
			if len(files) == 0 {
				return output.NewUserError("no template files match " + args[0])
			}

			var imported []templateRow
			skipped := []string{}
			for _, path := range files {
				tmpl, err := library.ReadFile(path)
				if err != nil {
					return output.NewUserErrorWithCause(err.Error(), err)
				}
				saved, err := sess.store.SaveAs(cmd.Context(), tmpl.Name, tmpl.Content, forceFlag)
				if errors.Is(err, store.ErrNameTaken) {
					skipped = append(skipped, tmpl.Name)
					continue
				}
				if err != nil {
					return err
				}
				imported = append(imported, templateRow{
					ID:        saved.ID,
					Name:      saved.Name,
					Variables: len(variable.Extract(saved.Content)),
					UpdatedAt: saved.UpdatedAt,
				})
			}

			if printer.IsJSON() {
				if imported == nil {
					imported = []templateRow{}
				}
				return printer.WriteJSON(map[string]any{"imported": imported, "skipped": skipped})
			}
			for _, r := range imported {
				printer.Println(printer.Styles().Success.Render("Imported") + " " + r.Name)
			}
			if len(skipped) > 0 {
				printer.Warn("skipped %s already saved (use --force to overwrite)", pluralize(len(skipped), "template"))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite saved templates with the same name")
	return cmd
}

func newTemplateBuiltinCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "builtin [NAME]",
		Short: "List built-in templates, or load one",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(sess, func(cmd *cobra.Command, args []string, printer *output.Printer) error {
			if len(args) == 0 {
				infos := library.Builtins()
				if printer.IsJSON() {
					return printer.WriteJSON(infos)
				}
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{info.Name, info.Description})
				}
				printer.Table([]string{"NAME", "DESCRIPTION"}, rows)
				return nil
			}

			tmpl, err := library.Builtin(args[0])
			if err != nil {
				return err
			}
			if err := sess.store.SetTemplate(cmd.Context(), tmpl.Content); err != nil {
				return err
			}
			if printer.IsJSON() {
				return printer.Success(map[string]any{"name": tmpl.Name, "variables": variable.Extract(tmpl.Content)})
			}
			return printer.Success(map[string]any{"message": "Loaded built-in " + tmpl.Name})
		}),
	}
}

// printSaved reports a single saved-template operation.
func printSaved(printer *output.Printer, verb string, t store.SavedTemplate) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"id":         t.ID,
			"name":       t.Name,
			"updated_at": t.UpdatedAt,
		})
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("%s %q (%s)", verb, t.Name, shortID(t.ID)),
	})
}

// shortID abbreviates a UUID for tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
