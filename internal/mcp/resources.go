// ABOUTME: MCP resources for exposing notes as readable markdown.
// ABOUTME: Notes are addressed as notebook://note/{id} and include their todos.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/todo"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "notebook://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	idStr, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || idStr == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	found, err := s.svc.FindNote(ctx, idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	note, err := s.svc.GetNote(ctx, found.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", note.Title)
	if len(note.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(note.Tags, ", "))
	}
	b.WriteString(note.Content)
	if len(note.Todos) > 0 {
		b.WriteString("\n\n---\n\n**Tracked todos:**\n")
		for _, td := range note.Todos {
			box := " "
			if td.Completed {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s%s (`%s`)\n", box, todo.FormatPriority(td.Priority), td.Text, td.ID)
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}
