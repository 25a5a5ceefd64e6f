// ABOUTME: MCP server exposing the notebook to AI agents over stdio.
// ABOUTME: Provides tools, resources, and prompts for notes, todos and tags.

package mcp

import (
	"context"

	"github.com/harper/notebook/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	svc    *notebook.Service
}

func NewServer(svc *notebook.Service, version string) *Server {
	s := &Server{svc: svc}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notebook",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
