package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all TrustLens tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("trustlens", "1.0.0")
	client := NewTrustLensClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolScanText, h.HandleScanText)
	s.AddTool(ToolScanAppLink, h.HandleScanAppLink)
	s.AddTool(ToolCheckURL, h.HandleCheckURL)
	s.AddTool(ToolGetDashboardSummary, h.HandleGetDashboardSummary)
	s.AddTool(ToolListRecentScans, h.HandleListRecentScans)

	return s
}
