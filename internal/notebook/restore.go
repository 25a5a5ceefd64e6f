// ABOUTME: Restore path for imported notes and todos.
// ABOUTME: Keeps original ids and timestamps and carries completion state by text.

package notebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
)

// RestoreNote writes a previously exported note. A nil id gets a fresh one.
// prior holds the exported todo state; extraction still decides which todos
// exist.
func (s *Service) RestoreNote(ctx context.Context, note *models.Note, prior []*models.Todo) (*NoteWithTodos, error) {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	note.Tags = models.UniqueTagNames(note.Tags)

	unlock := s.locks.Lock(note.ID.String())
	defer unlock()

	_, err := db.GetNoteByID(ctx, s.db, note.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrNoteExists, note.ID)
	case !errors.Is(err, db.ErrNoteNotFound):
		return nil, err
	}

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.CreateNote(ctx, tx, note); err != nil {
			return err
		}
		return db.SetNoteTags(ctx, tx, note.ID, note.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("restore note: %w", err)
	}

	todos, err := s.reconcile(ctx, note, nil, prior)
	if err != nil {
		return &NoteWithTodos{Note: note}, fmt.Errorf("reconcile todos for note %s: %w", note.ID, err)
	}
	return &NoteWithTodos{Note: note, Todos: todos}, nil
}

// RestoreTodo writes a previously exported standalone todo as is.
func (s *Service) RestoreTodo(ctx context.Context, td *models.Todo) error {
	if err := validText(td.Text); err != nil {
		return err
	}
	priority, err := validPriority(td.Priority)
	if err != nil {
		return err
	}
	td.Priority = priority
	td.NoteID = nil
	td.NoteTitle = ""
	if td.ID == "" {
		td.ID = uuid.NewString()
	}
	if td.CreatedAt.IsZero() {
		td.CreatedAt = time.Now()
	}
	td.Tags = models.UniqueTagNames(td.Tags)

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.InsertTodo(ctx, tx, td, 0); err != nil {
			return err
		}
		return db.SetTodoTags(ctx, tx, td.ID, td.Tags)
	})
	if err != nil {
		return fmt.Errorf("restore todo: %w", err)
	}
	return nil
}
