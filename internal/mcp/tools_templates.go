package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/store"
	"github.com/gorewood/docgen/internal/variable"
)

// TemplateRef is a saved template without its content.
type TemplateRef struct {
	ID        string `json:"id"         jsonschema:"saved template ID"`
	Name      string `json:"name"       jsonschema:"saved template name"`
	UpdatedAt string `json:"updated_at" jsonschema:"last save timestamp (RFC 3339)"`
}

// --- List templates tool ---

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct{}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Saved    []TemplateRef  `json:"saved"    jsonschema:"saved templates in save order"`
	Builtins []library.Info `json:"builtins" jsonschema:"templates shipped with docgen"`
}

func handleListTemplates(s *store.Store) mcp.ToolHandlerFor[ListTemplatesInput, ListTemplatesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListTemplatesInput) (*mcp.CallToolResult, ListTemplatesOutput, error) {
		saved, err := s.SavedTemplates(ctx)
		if err != nil {
			return nil, ListTemplatesOutput{}, fmt.Errorf("listing saved templates: %w", err)
		}
		refs := make([]TemplateRef, 0, len(saved))
		for _, t := range saved {
			refs = append(refs, toTemplateRef(t))
		}
		return nil, ListTemplatesOutput{Saved: refs, Builtins: library.Builtins()}, nil
	}
}

func toTemplateRef(t store.SavedTemplate) TemplateRef {
	return TemplateRef{ID: t.ID, Name: t.Name, UpdatedAt: t.UpdatedAt.Format(time.RFC3339)}
}

// --- Load template tool ---

// LoadTemplateInput is the input for the load_template tool.
type LoadTemplateInput struct {
	Ref     string `json:"ref"               jsonschema:"saved template ID or name, or built-in name with builtin=true"`
	Builtin bool   `json:"builtin,omitempty" jsonschema:"load a built-in template instead of a saved one"`
}

// LoadTemplateOutput is the output for the load_template tool.
type LoadTemplateOutput struct {
	ID        string   `json:"id,omitempty" jsonschema:"saved template ID (empty for built-ins)"`
	Name      string   `json:"name"         jsonschema:"loaded template name"`
	Variables []string `json:"variables"    jsonschema:"placeholders of the loaded template"`
}

func handleLoadTemplate(s *store.Store) mcp.ToolHandlerFor[LoadTemplateInput, LoadTemplateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LoadTemplateInput) (*mcp.CallToolResult, LoadTemplateOutput, error) {
		ref := strings.TrimSpace(input.Ref)
		if ref == "" {
			return nil, LoadTemplateOutput{}, errors.New("ref is required")
		}

		if input.Builtin {
			tmpl, err := library.Builtin(ref)
			if err != nil {
				return nil, LoadTemplateOutput{}, err
			}
			if err := s.SetTemplate(ctx, tmpl.Content); err != nil {
				return nil, LoadTemplateOutput{}, fmt.Errorf("setting template: %w", err)
			}
			return nil, LoadTemplateOutput{Name: tmpl.Name, Variables: variable.Extract(tmpl.Content)}, nil
		}

		saved, err := s.Load(ctx, ref)
		if err != nil {
			return nil, LoadTemplateOutput{}, fmt.Errorf("loading %q: %w", ref, err)
		}
		return nil, LoadTemplateOutput{
			ID:        saved.ID,
			Name:      saved.Name,
			Variables: variable.Extract(saved.Content),
		}, nil
	}
}

// --- Save template tool ---

// SaveTemplateInput is the input for the save_template tool.
type SaveTemplateInput struct {
	Name    string `json:"name"              jsonschema:"name to save under"`
	Content string `json:"content,omitempty" jsonschema:"template text; defaults to the current template"`
	Replace bool   `json:"replace,omitempty" jsonschema:"overwrite a saved template with the same name"`
}

// SaveTemplateOutput is the output for the save_template tool.
type SaveTemplateOutput struct {
	Template  TemplateRef `json:"template"  jsonschema:"the saved template"`
	Variables []string    `json:"variables" jsonschema:"placeholders of the saved content"`
}

func handleSaveTemplate(s *store.Store) mcp.ToolHandlerFor[SaveTemplateInput, SaveTemplateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SaveTemplateInput) (*mcp.CallToolResult, SaveTemplateOutput, error) {
		content := input.Content
		if content == "" {
			current, err := s.Template(ctx)
			if err != nil {
				return nil, SaveTemplateOutput{}, fmt.Errorf("reading current template: %w", err)
			}
			content = current
		}

		saved, err := s.SaveAs(ctx, input.Name, content, input.Replace)
		if err != nil {
			return nil, SaveTemplateOutput{}, fmt.Errorf("saving template: %w", err)
		}
		return nil, SaveTemplateOutput{
			Template:  toTemplateRef(saved),
			Variables: variable.Extract(saved.Content),
		}, nil
	}
}
