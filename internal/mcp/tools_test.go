package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewServer(notebook.New(conn), "test")
}

func callTool(t *testing.T, handler mcp.ToolHandler, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := handler(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAddNoteAndListTodos(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s.handleAddNote, `{"title":"Sprint","content":"## TODO\n- [H] Fix bug\n- Write docs\n","tags":["work"]}`)
	require.False(t, res.IsError, resultText(t, res))
	require.Contains(t, resultText(t, res), "with 2 todos")

	res = callTool(t, s.handleListTodos, `{"search":"tag:work"}`)
	require.False(t, res.IsError)
	var todos []*models.Todo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &todos))
	require.Len(t, todos, 2)
	require.Equal(t, "Fix bug", todos[0].Text)
	require.Equal(t, models.PriorityHigh, todos[0].Priority)
}

func TestAddNoteRejectsEmptyContent(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s.handleAddNote, `{"title":"x","content":"   "}`)
	require.True(t, res.IsError)
}

func TestEditAndCompleteTodo(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	note, err := s.svc.CreateNote(ctx, notebook.NoteInput{Title: "Bugs", Content: "## TODO\n- [H] Fix bug\n- Write docs\n"})
	require.NoError(t, err)
	id := note.Todos[0].ID

	res := callTool(t, s.handleCompleteTodo, `{"id":"`+id+`"}`)
	require.False(t, res.IsError, resultText(t, res))

	res = callTool(t, s.handleEditTodo, `{"id":"`+id+`","text":"Fix bug ASAP","priority":"low"}`)
	require.False(t, res.IsError, resultText(t, res))

	got, err := s.svc.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.Equal(t, "## TODO\n- [L] Fix bug ASAP\n- Write docs\n", got.Content)
	require.True(t, got.Todos[0].Completed)
}

func TestEditStandaloneTodo(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	td, err := s.svc.CreateTodo(ctx, notebook.TodoInput{Text: "Buy milk"})
	require.NoError(t, err)

	res := callTool(t, s.handleEditTodo, `{"id":"`+td.ID+`","text":"Buy bread"}`)
	require.False(t, res.IsError, resultText(t, res))

	got, err := s.svc.GetTodo(ctx, td.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy bread", got.Text)
	require.Equal(t, models.PriorityMedium, got.Priority)
}

func TestUnknownIDIsToolError(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s.handleGetNote, `{"id":"00000000"}`)
	require.True(t, res.IsError)
	res = callTool(t, s.handleDeleteTodo, `{"id":"nope-nope"}`)
	require.True(t, res.IsError)
}

func TestReadNoteResource(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	note, err := s.svc.CreateNote(ctx, notebook.NoteInput{Title: "Plan", Content: "## TODO\n- step one\n", Tags: []string{"q3"}})
	require.NoError(t, err)

	res, err := s.handleReadResource(ctx, &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: noteURI(note.ID)},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	text := res.Contents[0].Text
	require.True(t, strings.HasPrefix(text, "# Plan\n"))
	require.Contains(t, text, "**Tags:** q3")
	require.Contains(t, text, "- [ ] step one")

	_, err = s.handleReadResource(ctx, &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "other://note/x"},
	})
	require.Error(t, err)
}

func TestPlanTodosPrompt(t *testing.T) {
	s := newTestServer(t)

	res, err := s.getPlanTodosPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"goal": "launch v2"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	require.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "launch v2")

	_, err = s.getPlanTodosPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{},
	})
	require.Error(t, err)
}
