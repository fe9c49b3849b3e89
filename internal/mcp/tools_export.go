package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/docgen/internal/export"
)

// ExportInput is the input for the export tool.
type ExportInput struct {
	Format string `json:"format"          jsonschema:"pdf, docx, md, txt or json"`
	Dir    string `json:"dir,omitempty"   jsonschema:"output directory; defaults to the configured export dir"`
	Name   string `json:"name,omitempty"  jsonschema:"file name pattern with {name}, {date} and {format} tags"`
	Title  string `json:"title,omitempty" jsonschema:"document name used for {name} and the PDF title"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Path    string   `json:"path"    jsonschema:"written file path"`
	Format  string   `json:"format"  jsonschema:"export format"`
	Missing []string `json:"missing" jsonschema:"variables exported as [Name] because they have no value"`
}

func handleExport(deps Deps) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		format, err := export.ParseFormat(input.Format)
		if err != nil {
			return nil, ExportOutput{}, err
		}

		doc, err := deps.Store.Resolve(ctx)
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("resolving document: %w", err)
		}
		doc.Name = input.Title
		if doc.Name == "" {
			doc.Name = deps.ExportTitle
		}

		dir := input.Dir
		if dir == "" {
			dir = deps.ExportDir
		}
		pattern := input.Name
		if pattern == "" {
			pattern = deps.ExportName
		}

		path, err := deps.Exporter.WriteFile(dir, pattern, format, doc)
		if err != nil {
			return nil, ExportOutput{}, err
		}
		return nil, ExportOutput{Path: path, Format: string(format), Missing: doc.Missing}, nil
	}
}
