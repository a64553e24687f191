// Package mcp exposes the shortcut store to agents over the Model Context
// Protocol.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "launchbar"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for launchbar.
type Server struct {
	mcpServer *mcpsdk.Server
	toolbar   Toolbar
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by tb.
func NewServer(tb Toolbar, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{toolbar: tb, logger: logger}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_shortcuts",
		Description: "List the launcher's quick shortcuts and categories in display order. Each shortcut carries the category and index used to launch, edit or remove it.",
	}, s.handleListShortcuts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launch_shortcut",
		Description: "Start a shortcut's program. Leave category empty for a quick shortcut. The program runs detached; only failure to start is reported.",
	}, s.handleLaunchShortcut)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_shortcut",
		Description: "Append a shortcut to the quick list or to an existing category and save the configuration.",
	}, s.handleAddShortcut)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_shortcut",
		Description: "Remove a shortcut by category and index and save the configuration.",
	}, s.handleRemoveShortcut)
}
