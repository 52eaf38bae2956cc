package engine

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPHost adapts an mcp-go server to the CapabilityHost interface. The
// underlying server emits tools/list_changed notifications to connected
// clients on both operations.
type MCPHost struct {
	srv *server.MCPServer
}

// NewMCPHost wraps srv as a capability host.
func NewMCPHost(srv *server.MCPServer) *MCPHost {
	return &MCPHost{srv: srv}
}

// Bind registers the tool and its handler.
func (h *MCPHost) Bind(tool mcp.Tool, handler server.ToolHandlerFunc) {
	h.srv.AddTool(tool, handler)
}

// Unbind removes the named tools.
func (h *MCPHost) Unbind(names ...string) {
	h.srv.DeleteTools(names...)
}
