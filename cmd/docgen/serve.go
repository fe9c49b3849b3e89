package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	docgenmcp "github.com/gorewood/docgen/internal/mcp"
	"github.com/gorewood/docgen/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run docgen as a Model Context Protocol (MCP) server over stdio.

The server works on the same store as the CLI, so an agent and a person can
share one session.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "docgen": {
        "command": "docgen",
        "args": ["serve"]
      }
    }
  }

Available tools: variables, set_values, render, list_templates, load_template,
save_template, export`,
		Args: cobra.NoArgs,
		RunE: withSession(sess, func(cmd *cobra.Command, _ []string, _ *output.Printer) error {
			server := docgenmcp.NewServer(buildVersion(), docgenmcp.Deps{
				Store:       sess.store,
				Exporter:    sess.exporter,
				ExportDir:   sess.cfg.Export.Dir,
				ExportName:  sess.cfg.Export.Name,
				ExportTitle: sess.cfg.Export.Title,
			})
			sess.logger.Info().Str("version", buildVersion()).Msg("mcp server starting")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		}),
	}
}
