// Package mcp exposes read-only waitlist tools to AI agents over the Model
// Context Protocol.
package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/waitdesk/waitdesk/internal/service"
)

// MCPServer wraps the mcp-go server with the waitlist tool and resource
// registrations.
type MCPServer struct {
	waitlist *service.WaitlistService
	loc      *time.Location
	logger   *slog.Logger
	server   *server.MCPServer
}

// NewMCPServer creates an MCPServer answering from waitlist. Bare filter
// dates are read in loc. The returned server is ready to serve over stdio or
// HTTP.
func NewMCPServer(waitlist *service.WaitlistService, loc *time.Location, version string, logger *slog.Logger) *MCPServer {
	if loc == nil {
		loc = time.UTC
	}
	if version == "" {
		version = "dev"
	}
	s := &MCPServer{
		waitlist: waitlist,
		loc:      loc,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"waitdesk",
		version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithInstructions(
			"Read-only access to the product waitlist. Start with waitlist_stats, "+
				"then page through signups with waitlist_query.",
		),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.server = mcpServer
	return s
}

// Server returns the underlying mcp-go MCPServer instance.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

// ServeStdio starts the MCP server in stdio mode, for clients that launch
// the server as a subprocess.
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeHTTP starts the MCP server in Streamable HTTP mode, listening on
// the given address (e.g. ":3001").
func (s *MCPServer) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.server)
	s.logger.Info("MCP HTTP server starting", "addr", addr)
	return httpServer.Start(addr)
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(true),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
