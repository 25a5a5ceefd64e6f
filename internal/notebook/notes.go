// ABOUTME: Note write path: persist the note row and tags, then reconcile its todos.
// ABOUTME: A reconcile failure is returned but the note write is kept.

package notebook

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
)

type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NoteWithTodos is a note together with the todos extracted from it.
type NoteWithTodos struct {
	*models.Note
	Todos []*models.Todo `json:"todos"`
}

func (s *Service) CreateNote(ctx context.Context, in NoteInput) (*NoteWithTodos, error) {
	note := models.NewNote(in.Title, in.Content)
	note.Tags = models.UniqueTagNames(in.Tags)

	unlock := s.locks.Lock(note.ID.String())
	defer unlock()

	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.CreateNote(ctx, tx, note); err != nil {
			return err
		}
		return db.SetNoteTags(ctx, tx, note.ID, note.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	todos, err := s.reconcile(ctx, note, nil, nil)
	if err != nil {
		return &NoteWithTodos{Note: note}, fmt.Errorf("reconcile todos for note %s: %w", note.ID, err)
	}
	return &NoteWithTodos{Note: note, Todos: todos}, nil
}

// UpdateNote replaces title, content and the full tag set.
func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, in NoteInput) (*NoteWithTodos, error) {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	note, err := db.GetNoteByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	note.Title = in.Title
	note.Content = in.Content
	note.Tags = models.UniqueTagNames(in.Tags)
	note.Touch()

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.UpdateNote(ctx, tx, note); err != nil {
			return err
		}
		return db.SetNoteTags(ctx, tx, note.ID, note.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	todos, err := s.reconcile(ctx, note, nil, nil)
	if err != nil {
		return &NoteWithTodos{Note: note}, fmt.Errorf("reconcile todos for note %s: %w", note.ID, err)
	}
	return &NoteWithTodos{Note: note, Todos: todos}, nil
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id.String())
	defer unlock()
	return db.DeleteNote(ctx, s.db, id)
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*NoteWithTodos, error) {
	note, err := db.GetNoteByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	todos, err := db.ListNoteTodos(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &NoteWithTodos{Note: note, Todos: todos}, nil
}

// FindNote resolves a full id or a unique id prefix.
func (s *Service) FindNote(ctx context.Context, idOrPrefix string) (*models.Note, error) {
	return db.GetNoteByPrefix(ctx, s.db, idOrPrefix)
}

func (s *Service) ListNotes(ctx context.Context, search string, limit int) ([]*models.Note, error) {
	return db.ListNotes(ctx, s.db, search, limit)
}

// AddNoteTag adds one tag to a note and pushes the new set onto its todos.
func (s *Service) AddNoteTag(ctx context.Context, id uuid.UUID, name string) error {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	if _, err := db.GetNoteByID(ctx, s.db, id); err != nil {
		return err
	}
	if err := db.AddTagToNote(ctx, s.db, id, name); err != nil {
		return err
	}
	s.inheritAll(ctx, id)
	return nil
}

func (s *Service) RemoveNoteTag(ctx context.Context, id uuid.UUID, name string) error {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	if _, err := db.GetNoteByID(ctx, s.db, id); err != nil {
		return err
	}
	if err := db.RemoveTagFromNote(ctx, s.db, id, name); err != nil {
		return err
	}
	s.inheritAll(ctx, id)
	return nil
}

// inheritAll is best-effort; failures are logged.
func (s *Service) inheritAll(ctx context.Context, noteID uuid.UUID) {
	todos, err := db.ListNoteTodos(ctx, s.db, noteID)
	if err != nil {
		s.logger.Warn("list todos for tag inheritance failed", "note_id", noteID.String(), "error", err)
		return
	}
	for _, td := range todos {
		if err := db.InheritNoteTags(ctx, s.db, td.ID, td.NoteID); err != nil {
			s.logger.Warn("tag inheritance failed", "note_id", noteID.String(), "todo_id", td.ID, "error", err)
		}
	}
}

func (s *Service) ListTags(ctx context.Context) ([]*db.TagWithCount, error) {
	return db.ListAllTags(ctx, s.db)
}

func (s *Service) CountNotes(ctx context.Context) (int, error) {
	return db.CountNotes(ctx, s.db)
}
