package mcp

import (
	"github.com/lukman83/vinted-relist/internal/app"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP stdio server with all tools registered.
func Serve(a *app.App) error {
	s := server.NewMCPServer(
		"vinted-relist",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, a)

	return server.ServeStdio(s)
}
