// ABOUTME: Todo operations: standalone CRUD, completion, and note-synced edits.
// ABOUTME: Editing a note-linked todo rewrites its source line and re-extracts the note.

package notebook

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/todo"
)

type TodoInput struct {
	Text     string          `json:"text"`
	Priority models.Priority `json:"priority"`
	Tags     []string        `json:"tags"`
}

// TodoPatch updates only the fields that are set.
type TodoPatch struct {
	Text              *string          `json:"text"`
	Priority          *models.Priority `json:"priority"`
	Completed         *bool            `json:"completed"`
	CompletionComment *string          `json:"completion_comment"`
	Tags              *[]string        `json:"tags"`
}

func validText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: todo text cannot be empty", ErrInvalidInput)
	}
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: todo text must be a single line", ErrInvalidInput)
	}
	return nil
}

func validPriority(p models.Priority) (models.Priority, error) {
	level, err := models.ParsePriorityLevel(string(p))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return level, nil
}

// CreateTodo creates a standalone todo.
func (s *Service) CreateTodo(ctx context.Context, in TodoInput) (*models.Todo, error) {
	if err := validText(in.Text); err != nil {
		return nil, err
	}
	priority, err := validPriority(in.Priority)
	if err != nil {
		return nil, err
	}

	td := models.NewTodo(strings.TrimSpace(in.Text), priority)
	td.Tags = models.UniqueTagNames(in.Tags)
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.InsertTodo(ctx, tx, td, 0); err != nil {
			return err
		}
		return db.SetTodoTags(ctx, tx, td.ID, td.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return td, nil
}

func (s *Service) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	return db.GetTodo(ctx, s.db, id)
}

// FindTodo resolves a full id or a unique id prefix.
func (s *Service) FindTodo(ctx context.Context, idOrPrefix string) (*models.Todo, error) {
	return db.GetTodoByPrefix(ctx, s.db, idOrPrefix)
}

func (s *Service) ListTodos(ctx context.Context, filter db.TodoFilter) ([]*models.Todo, error) {
	return db.ListTodos(ctx, s.db, filter)
}

// UpdateTodo applies a patch to the stored row. Completion can change on any
// todo; text, priority and tags only on standalone ones.
func (s *Service) UpdateTodo(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error) {
	td, err := db.GetTodo(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !td.Standalone() {
		if patch.Text != nil || patch.Priority != nil || patch.Tags != nil {
			return nil, ErrNoteLinkedTodo
		}
		unlock := s.locks.Lock(td.NoteID.String())
		defer unlock()
		// The row may have been regenerated while waiting for the lock.
		if td, err = db.GetTodo(ctx, s.db, id); err != nil {
			return nil, err
		}
	}

	if patch.Text != nil {
		if err := validText(*patch.Text); err != nil {
			return nil, err
		}
		td.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Priority != nil {
		if td.Priority, err = validPriority(*patch.Priority); err != nil {
			return nil, err
		}
	}
	if patch.Completed != nil && *patch.Completed != td.Completed {
		td.SetCompleted(*patch.Completed, patch.CompletionComment)
	} else if patch.CompletionComment != nil && td.Completed {
		td.CompletionComment = patch.CompletionComment
	}

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := db.UpdateTodo(ctx, tx, td); err != nil {
			return err
		}
		if patch.Tags == nil {
			return nil
		}
		td.Tags = models.UniqueTagNames(*patch.Tags)
		return db.SetTodoTags(ctx, tx, td.ID, td.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return td, nil
}

// DeleteTodo removes the row. A note-linked todo comes back on the next
// reconcile while its line is still in the note.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	return db.DeleteTodo(ctx, s.db, id)
}

// EditTodo rewrites a note-linked todo's source line with new text and
// priority, saves the note and re-extracts its todos. The edited item keeps
// its completion state.
func (s *Service) EditTodo(ctx context.Context, id, newText string, newPriority models.Priority) (*models.Todo, error) {
	if err := validText(newText); err != nil {
		return nil, err
	}
	newText = strings.TrimSpace(newText)
	priority, err := validPriority(newPriority)
	if err != nil {
		return nil, err
	}
	// The rewritten line must read back as the requested item.
	if p, txt := todo.ParsePriority(todo.FormatPriority(priority) + newText); p != priority || txt != newText {
		return nil, fmt.Errorf("%w: todo text %q reads as a priority marker", ErrInvalidInput, newText)
	}

	stored, err := db.GetTodo(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if stored.Standalone() {
		return nil, ErrStandaloneTodo
	}

	unlock := s.locks.Lock(stored.NoteID.String())
	defer unlock()

	if stored, err = db.GetTodo(ctx, s.db, id); err != nil {
		return nil, err
	}
	note, err := db.GetNoteByID(ctx, s.db, *stored.NoteID)
	if err != nil {
		return nil, err
	}

	item, ok := todo.Locate(note.Content, id)
	if !ok || item.Text != stored.Text {
		return nil, ErrTodoNotApplicable
	}

	note.Content = todo.Rewrite(note.Content, id, newText, priority)
	note.Touch()
	if err := db.UpdateNote(ctx, s.db, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	todos, err := s.reconcile(ctx, note, map[string]string{newText: stored.Text}, nil)
	if err != nil {
		return nil, fmt.Errorf("reconcile todos for note %s: %w", note.ID, err)
	}
	for _, td := range todos {
		if td.ID == id {
			return td, nil
		}
	}
	// Rewriting keeps the line index, so the id must still be present.
	return nil, ErrTodoNotApplicable
}
