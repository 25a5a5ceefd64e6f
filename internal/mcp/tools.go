// ABOUTME: MCP tools for note, todo and tag operations.
// ABOUTME: Maps the notebook service onto the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a note. List items under a '## TODO' heading become todos.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleAddNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, newest first. Search matches title or content, or 'tag:name' for tags.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Search text or tag:name"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note and its todos by ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title, content or tags. Todos are re-extracted and keep their completion state.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tag set"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note and its todos",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// list_todos
	s.server.AddTool(&mcp.Tool{
		Name:        "list_todos",
		Description: "List todos, open first and by priority",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Search text or tag:name"},
				"completed": {"type": "boolean", "description": "Filter by completion"},
				"note_id": {"type": "string", "description": "Only todos from this note (ID or prefix)"},
				"limit": {"type": "integer", "description": "Max results"}
			}
		}`),
	}, s.handleListTodos)

	// add_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "add_todo",
		Description: "Create a standalone todo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Todo text"},
				"priority": {"type": "string", "enum": ["low", "medium", "high"], "default": "medium"},
				"tags": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["text"]
		}`),
	}, s.handleAddTodo)

	// complete_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "complete_todo",
		Description: "Mark a todo done or open again",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or prefix"},
				"completed": {"type": "boolean", "default": true},
				"comment": {"type": "string", "description": "Optional completion comment"}
			},
			"required": ["id"]
		}`),
	}, s.handleCompleteTodo)

	// edit_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "edit_todo",
		Description: "Edit a todo. Note todos are rewritten in their note; standalone todos are updated directly.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or prefix"},
				"text": {"type": "string", "description": "New text"},
				"priority": {"type": "string", "enum": ["low", "medium", "high"]}
			},
			"required": ["id", "text"]
		}`),
	}, s.handleEditTodo)

	// delete_todo
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Todo ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteTodo)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List all tags with note and todo counts",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Content) == "" {
		return errorResult("note content cannot be empty"), nil
	}

	note, err := s.svc.CreateNote(ctx, notebook.NoteInput{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil && note == nil {
		return errorResult("failed to create note: %v", err), nil
	}
	if err != nil {
		return errorResult("created note %s but failed to sync todos: %v", note.ID, err), nil
	}

	return textResult(fmt.Sprintf("Created note %s with %d todos (%s)", note.ID, len(note.Todos), noteURI(note.ID))), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search string `json:"search"`
		Limit  int    `json:"limit"`
	}
	params.Limit = 20 // default
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	notes, err := s.svc.ListNotes(ctx, params.Search, params.Limit)
	if err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}
	return jsonResult(notes), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	found, err := s.svc.FindNote(ctx, params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	note, err := s.svc.GetNote(ctx, found.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string    `json:"id"`
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Tags    *[]string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.svc.FindNote(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	in := notebook.NoteInput{Title: note.Title, Content: note.Content, Tags: note.Tags}
	if params.Title != nil {
		in.Title = *params.Title
	}
	if params.Content != nil {
		if strings.TrimSpace(*params.Content) == "" {
			return errorResult("note content cannot be empty"), nil
		}
		in.Content = *params.Content
	}
	if params.Tags != nil {
		in.Tags = *params.Tags
	}

	updated, err := s.svc.UpdateNote(ctx, note.ID, in)
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Updated note %s with %d todos", updated.ID, len(updated.Todos))), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.svc.FindNote(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if err := s.svc.DeleteNote(ctx, note.ID); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted note %s", note.ID)), nil
}

func (s *Server) handleListTodos(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search    string `json:"search"`
		Completed *bool  `json:"completed"`
		NoteID    string `json:"note_id"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	filter := db.TodoFilter{Search: params.Search, Completed: params.Completed, Limit: params.Limit}
	if params.NoteID != "" {
		note, err := s.svc.FindNote(ctx, params.NoteID)
		if err != nil {
			return errorResult("failed to find note: %v", err), nil
		}
		id := note.ID
		filter.NoteID = &id
	}

	todos, err := s.svc.ListTodos(ctx, filter)
	if err != nil {
		return errorResult("failed to list todos: %v", err), nil
	}
	return jsonResult(todos), nil
}

func (s *Server) handleAddTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Text     string   `json:"text"`
		Priority string   `json:"priority"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	td, err := s.svc.CreateTodo(ctx, notebook.TodoInput{
		Text:     params.Text,
		Priority: models.Priority(params.Priority),
		Tags:     params.Tags,
	})
	if err != nil {
		return errorResult("failed to create todo: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created todo %s", td.ID)), nil
}

func (s *Server) handleCompleteTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := struct {
		ID        string  `json:"id"`
		Completed bool    `json:"completed"`
		Comment   *string `json:"comment"`
	}{Completed: true}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	td, err := s.svc.FindTodo(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find todo: %v", err), nil
	}
	td, err = s.svc.UpdateTodo(ctx, td.ID, notebook.TodoPatch{
		Completed:         &params.Completed,
		CompletionComment: params.Comment,
	})
	if err != nil {
		return errorResult("failed to update todo: %v", err), nil
	}

	state := "open"
	if td.Completed {
		state = "done"
	}
	return textResult(fmt.Sprintf("Marked todo %s %s", td.ID, state)), nil
}

func (s *Server) handleEditTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	td, err := s.svc.FindTodo(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find todo: %v", err), nil
	}

	priority := td.Priority
	if params.Priority != "" {
		priority = models.Priority(params.Priority)
	}

	if td.Standalone() {
		td, err = s.svc.UpdateTodo(ctx, td.ID, notebook.TodoPatch{Text: &params.Text, Priority: &priority})
	} else {
		td, err = s.svc.EditTodo(ctx, td.ID, params.Text, priority)
	}
	if err != nil {
		return errorResult("failed to edit todo: %v", err), nil
	}
	return jsonResult(td), nil
}

func (s *Server) handleDeleteTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	td, err := s.svc.FindTodo(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find todo: %v", err), nil
	}
	if err := s.svc.DeleteTodo(ctx, td.ID); err != nil {
		return errorResult("failed to delete todo: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted todo %s", td.ID)), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.ListTags(ctx)
	if err != nil {
		return errorResult("failed to list tags: %v", err), nil
	}
	return jsonResult(tags), nil
}

// noteURI is the resource address for a note.
func noteURI(id uuid.UUID) string {
	return noteURIPrefix + id.String()
}
