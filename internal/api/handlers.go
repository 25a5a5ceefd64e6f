// ABOUTME: HTTP handlers for note, todo and tag endpoints.
// ABOUTME: Note writes and the todo edit endpoint go through reconciliation.

package api

import (
	"net/http"
	"strconv"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
)

func queryInt(r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}

	notes, err := s.svc.ListNotes(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var in notebook.NoteInput
	if !decodeBody(w, r, &in) {
		return
	}

	note, err := s.svc.CreateNote(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	found, err := s.svc.FindNote(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	note, err := s.svc.GetNote(r.Context(), found.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var in notebook.NoteInput
	if !decodeBody(w, r, &in) {
		return
	}

	found, err := s.svc.FindNote(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	note, err := s.svc.UpdateNote(r.Context(), found.ID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	found, err := s.svc.FindNote(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.DeleteNote(r.Context(), found.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.TodoFilter{Search: q.Get("search")}

	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	filter.Limit = limit

	if v := q.Get("completed"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "completed must be true or false")
			return
		}
		filter.Completed = &done
	}
	if v := q.Get("note_id"); v != "" {
		note, err := s.svc.FindNote(r.Context(), v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		filter.NoteID = &note.ID
	}

	todos, err := s.svc.ListTodos(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var in notebook.TodoInput
	if !decodeBody(w, r, &in) {
		return
	}

	td, err := s.svc.CreateTodo(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, td)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	td, err := s.svc.FindTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, td)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	var patch notebook.TodoPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	found, err := s.svc.FindTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	td, err := s.svc.UpdateTodo(r.Context(), found.ID, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, td)
}

func (s *Server) editTodo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text     string          `json:"text"`
		Priority models.Priority `json:"priority"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	found, err := s.svc.FindTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	priority := body.Priority
	if priority == "" {
		priority = found.Priority
	}

	td, err := s.svc.EditTodo(r.Context(), found.ID, body.Text, priority)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, td)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	found, err := s.svc.FindTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.DeleteTodo(r.Context(), found.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.ListTags(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if tags == nil {
		tags = []*db.TagWithCount{}
	}
	writeJSON(w, http.StatusOK, tags)
}
