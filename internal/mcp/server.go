// Package mcp provides a Model Context Protocol server for docgen.
// It exposes the form-letter session as MCP tools that any MCP-capable agent
// can use: inspect variables, fill values, render, manage templates and export.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/docgen/internal/export"
	"github.com/gorewood/docgen/internal/store"
)

// Deps are the services the tools operate on.
type Deps struct {
	Store    *store.Store
	Exporter *export.Exporter

	// ExportDir, ExportName and ExportTitle are used when an export call
	// leaves them empty.
	ExportDir   string
	ExportName  string
	ExportTitle string
}

// NewServer creates an MCP server with all docgen tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "docgen",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that change session state.
func writeAnnotations(idempotent bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "variables",
		Description: "List the {Name} placeholders of the current template in order of first appearance, with their current values and whether each is filled.",
		Annotations: readOnlyAnnotations(),
	}, handleVariables(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_values",
		Description: "Set variable values by name and optionally unset others. Values are kept by name and survive template changes. An empty value renders as [Name].",
		Annotations: writeAnnotations(true),
	}, handleSetValues(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Return the current template with every {Name} replaced by its value, or [Name] when unfilled. Set strip=true to remove **bold** and *italic* markers and heading prefixes.",
		Annotations: readOnlyAnnotations(),
	}, handleRender(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List saved templates (id, name, last update) and the built-in templates shipped with docgen.",
		Annotations: readOnlyAnnotations(),
	}, handleListTemplates(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_template",
		Description: "Make a saved template (by id or name) or a built-in template (builtin=true) the current template. Variable values are kept.",
		Annotations: writeAnnotations(true),
	}, handleLoadTemplate(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_template",
		Description: "Save the current template, or the given content, under a name. Fails when the name exists unless replace=true.",
		Annotations: writeAnnotations(false),
	}, handleSaveTemplate(deps.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Render the current document and write it to a file as pdf, docx, md, txt or json. Returns the written path and any unfilled variables.",
		Annotations: writeAnnotations(false),
	}, handleExport(deps))
}
