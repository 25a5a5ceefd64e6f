package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/stretchr/testify/require"
)

type noteResponse struct {
	models.Note
	Todos []*models.Todo `json:"todos"`
}

func newTestAPI(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return New(notebook.New(conn), opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNoteLifecycle(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/notes", `{"title":"Sprint","content":"## TODO\n- [H] Fix bug\n- Write docs\n","tags":["work"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[noteResponse](t, rec)
	require.Len(t, created.Todos, 2)
	require.Equal(t, models.PriorityHigh, created.Todos[0].Priority)

	rec = do(t, h, http.MethodGet, "/api/notes/"+created.ID.String()[:8], "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[noteResponse](t, rec)
	require.Equal(t, "Sprint", got.Title)
	require.Equal(t, []string{"work"}, got.Tags)

	rec = do(t, h, http.MethodPut, "/api/notes/"+created.ID.String(), `{"title":"Sprint 2","content":"## TODO\n- Write docs\n","tags":["work"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[noteResponse](t, rec)
	require.Equal(t, "Sprint 2", updated.Title)
	require.Len(t, updated.Todos, 1)

	rec = do(t, h, http.MethodDelete, "/api/notes/"+created.ID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/notes/"+created.ID.String(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotesSearch(t *testing.T) {
	h := newTestAPI(t)

	do(t, h, http.MethodPost, "/api/notes", `{"title":"Groceries","content":"milk","tags":["Home"]}`)
	do(t, h, http.MethodPost, "/api/notes", `{"title":"Standup","content":"blockers","tags":["work"]}`)

	rec := do(t, h, http.MethodGet, "/api/notes?search=tag:home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode[[]*models.Note](t, rec)
	require.Len(t, notes, 1)
	require.Equal(t, "Groceries", notes[0].Title)

	rec = do(t, h, http.MethodGet, "/api/notes?search=block", "")
	notes = decode[[]*models.Note](t, rec)
	require.Len(t, notes, 1)
	require.Equal(t, "Standup", notes[0].Title)

	rec = do(t, h, http.MethodGet, "/api/notes?search=nothing", "")
	require.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/notes?limit=x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditTodoEndpoint(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/notes", `{"title":"Bugs","content":"## TODO\n- [H] Fix bug\n- Write docs\n"}`)
	created := decode[noteResponse](t, rec)
	id := created.Todos[0].ID

	rec = do(t, h, http.MethodPut, "/api/todos/"+id, `{"completed":true,"completion_comment":"done"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/todos/"+id+"/edit", `{"text":"Fix bug ASAP","priority":"low"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decode[models.Todo](t, rec)
	require.Equal(t, id, edited.ID)
	require.Equal(t, "Fix bug ASAP", edited.Text)
	require.True(t, edited.Completed)

	rec = do(t, h, http.MethodGet, "/api/notes/"+created.ID.String(), "")
	note := decode[noteResponse](t, rec)
	require.Equal(t, "## TODO\n- [L] Fix bug ASAP\n- Write docs\n", note.Content)

	// Priority defaults to the stored one when omitted.
	rec = do(t, h, http.MethodPut, "/api/todos/"+id+"/edit", `{"text":"Fix bug now"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, models.PriorityLow, decode[models.Todo](t, rec).Priority)
}

func TestTodoEndpointErrors(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/todos", `{"text":"loose"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	standalone := decode[models.Todo](t, rec)

	rec = do(t, h, http.MethodPut, "/api/todos/"+standalone.ID+"/edit", `{"text":"x"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/todos/missing-0/edit", `{"text":"x","priority":"high"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/todos", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/todos", `{"text":"ok","priority":"urgent"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/todos", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/notes", `{"title":"T","content":"## TODO\n- a\n"}`)
	linked := decode[noteResponse](t, rec).Todos[0]
	rec = do(t, h, http.MethodPut, "/api/todos/"+linked.ID, `{"text":"b"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestTodoRoutesResolvePrefixes(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/todos", `{"text":"loose"}`)
	standalone := decode[models.Todo](t, rec)
	prefix := standalone.ID[:8]

	rec = do(t, h, http.MethodGet, "/api/todos/"+prefix, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/todos/"+prefix, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[models.Todo](t, rec).Completed)

	rec = do(t, h, http.MethodDelete, "/api/todos/"+prefix, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/notes", `{"title":"T","content":"## TODO\n- a\n"}`)
	created := decode[noteResponse](t, rec)
	rec = do(t, h, http.MethodPut, "/api/todos/"+created.Todos[0].ID[:8]+"/edit", `{"text":"b"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "b", decode[models.Todo](t, rec).Text)

	// Both todos of one note share the note id as a prefix.
	rec = do(t, h, http.MethodPost, "/api/notes", `{"title":"U","content":"## TODO\n- a\n- b\n"}`)
	pair := decode[noteResponse](t, rec)
	rec = do(t, h, http.MethodDelete, "/api/todos/"+pair.ID.String()[:8], "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTodosFilters(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/notes", `{"title":"T","content":"## TODO\n- a\n- b\n","tags":["proj"]}`)
	note := decode[noteResponse](t, rec)
	do(t, h, http.MethodPost, "/api/todos", `{"text":"standalone c"}`)
	do(t, h, http.MethodPut, "/api/todos/"+note.Todos[0].ID, `{"completed":true}`)

	rec = do(t, h, http.MethodGet, "/api/todos", "")
	require.Len(t, decode[[]*models.Todo](t, rec), 3)

	rec = do(t, h, http.MethodGet, "/api/todos?completed=false", "")
	require.Len(t, decode[[]*models.Todo](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/todos?note_id="+note.ID.String(), "")
	require.Len(t, decode[[]*models.Todo](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/todos?search=tag:PROJ", "")
	require.Len(t, decode[[]*models.Todo](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/todos?completed=maybe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTags(t *testing.T) {
	h := newTestAPI(t)

	do(t, h, http.MethodPost, "/api/notes", `{"title":"T","content":"## TODO\n- a\n","tags":["work"]}`)

	rec := do(t, h, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decode[[]*db.TagWithCount](t, rec)
	require.Len(t, tags, 1)
	require.Equal(t, "work", tags[0].Tag.Name)
	require.Equal(t, 1, tags[0].NoteCount)
	require.Equal(t, 1, tags[0].TodoCount)
}

func TestUnknownAPIRoute(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/widgets", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>notebook</h1>"), 0600))
	h := newTestAPI(t, WithStaticDir(dir))

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "notebook")

	rec = do(t, h, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{db.ErrNoteNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", db.ErrTodoNotFound), http.StatusNotFound},
		{notebook.ErrTodoNotApplicable, http.StatusConflict},
		{notebook.ErrStandaloneTodo, http.StatusConflict},
		{notebook.ErrInvalidInput, http.StatusBadRequest},
		{db.ErrPrefixTooShort, http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
