package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchgateMCPServer creates a new MCP server with all archgate tools and
// resources registered. The projectPath is the root directory of the project
// to audit.
func NewArchgateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"archgate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
