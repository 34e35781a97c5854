// Package server exposes the tool dispatcher as an MCP server over stdio.
package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/igorls/fontawesome-mcp/src/tools"
)

const (
	Name    = "fontawesome-mcp"
	Version = "1.0.0"
)

// Server binds every dispatcher tool to an MCP server.
type Server struct {
	mcp        *mcpserver.MCPServer
	dispatcher *tools.Dispatcher
	logger     *slog.Logger
}

// New registers the tools of d.
func New(d *tools.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mcp: mcpserver.NewMCPServer(Name, Version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
		dispatcher: d,
		logger:     logger,
	}

	defs := d.Tools()
	serverTools := make([]mcpserver.ServerTool, 0, len(defs))
	for _, t := range defs {
		serverTools = append(serverTools, mcpserver.ServerTool{
			Tool:    t.Definition(),
			Handler: s.handler(t.Name()),
		})
	}
	s.mcp.AddTools(serverTools...)
	logger.Debug("tools registered", "count", len(serverTools))
	return s
}

func (s *Server) handler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.dispatcher.Call(ctx, name, req.GetArguments()), nil
	}
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in/out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("serving MCP over stdio", "server", Name, "version", Version)
	return stdio.Listen(ctx, in, out)
}
