package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/docgen/internal/markup"
	"github.com/gorewood/docgen/internal/store"
)

// --- Variables tool ---

// VariablesInput is the input for the variables tool (no parameters needed).
type VariablesInput struct{}

// VariableStatus is one placeholder and its value.
type VariableStatus struct {
	Name   string `json:"name"   jsonschema:"placeholder name as written between braces"`
	Value  string `json:"value"  jsonschema:"current value, empty when unset"`
	Filled bool   `json:"filled" jsonschema:"true when the value is non-empty"`
}

// VariablesOutput is the output for the variables tool.
type VariablesOutput struct {
	Variables []VariableStatus `json:"variables" jsonschema:"placeholders in first-appearance order"`
	Missing   []string         `json:"missing"   jsonschema:"names without a value"`
}

func handleVariables(s *store.Store) mcp.ToolHandlerFor[VariablesInput, VariablesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ VariablesInput) (*mcp.CallToolResult, VariablesOutput, error) {
		doc, err := s.Resolve(ctx)
		if err != nil {
			return nil, VariablesOutput{}, fmt.Errorf("resolving document: %w", err)
		}
		return nil, VariablesOutput{
			Variables: variableStatuses(doc),
			Missing:   doc.Missing,
		}, nil
	}
}

func variableStatuses(doc *store.Document) []VariableStatus {
	out := make([]VariableStatus, 0, len(doc.Variables))
	for _, name := range doc.Variables {
		value := doc.Values[name]
		out = append(out, VariableStatus{Name: name, Value: value, Filled: value != ""})
	}
	return out
}

// --- Set values tool ---

// SetValuesInput is the input for the set_values tool.
type SetValuesInput struct {
	Values map[string]string `json:"values,omitempty" jsonschema:"values to set, keyed by variable name"`
	Unset  []string          `json:"unset,omitempty"  jsonschema:"variable names whose values are removed"`
}

// SetValuesOutput is the output for the set_values tool.
type SetValuesOutput struct {
	Values  map[string]string `json:"values"  jsonschema:"all stored values after the update"`
	Missing []string          `json:"missing" jsonschema:"variables of the current template still without a value"`
}

func handleSetValues(s *store.Store) mcp.ToolHandlerFor[SetValuesInput, SetValuesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetValuesInput) (*mcp.CallToolResult, SetValuesOutput, error) {
		if len(input.Values) == 0 && len(input.Unset) == 0 {
			return nil, SetValuesOutput{}, errors.New("nothing to do: provide values or unset")
		}
		if len(input.Values) > 0 {
			if err := s.SetValues(ctx, input.Values); err != nil {
				return nil, SetValuesOutput{}, fmt.Errorf("storing values: %w", err)
			}
		}
		for _, name := range input.Unset {
			if err := s.UnsetValue(ctx, name); err != nil {
				return nil, SetValuesOutput{}, fmt.Errorf("unsetting %s: %w", name, err)
			}
		}

		doc, err := s.Resolve(ctx)
		if err != nil {
			return nil, SetValuesOutput{}, fmt.Errorf("resolving document: %w", err)
		}
		return nil, SetValuesOutput{Values: doc.Values, Missing: doc.Missing}, nil
	}
}

// --- Render tool ---

// RenderInput is the input for the render tool.
type RenderInput struct {
	Strip bool `json:"strip,omitempty" jsonschema:"remove inline markup and heading prefixes"`
}

// RenderOutput is the output for the render tool.
type RenderOutput struct {
	Text    string   `json:"text"    jsonschema:"resolved document text"`
	Missing []string `json:"missing" jsonschema:"variables rendered as [Name] because they have no value"`
}

func handleRender(s *store.Store) mcp.ToolHandlerFor[RenderInput, RenderOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
		doc, err := s.Resolve(ctx)
		if err != nil {
			return nil, RenderOutput{}, fmt.Errorf("resolving document: %w", err)
		}
		text := doc.Resolved
		if input.Strip {
			text = markup.Strip(text)
		}
		return nil, RenderOutput{Text: text, Missing: doc.Missing}, nil
	}
}
