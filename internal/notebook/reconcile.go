// ABOUTME: Reconciler replacing a note's stored TODO set with a fresh extraction.
// ABOUTME: Completion metadata carries over to items whose text is unchanged.

package notebook

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/todo"
)

// reconcile re-extracts the note's todos and replaces the stored set. seed
// rows act as extra stored state, consulted after the real rows.
// Callers must hold the note's lock.
func (s *Service) reconcile(ctx context.Context, note *models.Note, renamed map[string]string, seed []*models.Todo) ([]*models.Todo, error) {
	var candidates []*models.Todo
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stored, err := db.ListNoteTodos(ctx, tx, note.ID)
		if err != nil {
			return fmt.Errorf("load stored todos: %w", err)
		}

		candidates = todo.Extract(note.ID, note.Content, note.Title)
		carryForward(candidates, append(stored, seed...), renamed)

		return db.ReplaceNoteTodos(ctx, tx, note.ID, candidates)
	})
	if err != nil {
		return nil, err
	}

	for _, td := range candidates {
		if err := db.InheritNoteTags(ctx, s.db, td.ID, td.NoteID); err != nil {
			s.logger.Warn("tag inheritance failed",
				"note_id", note.ID.String(), "todo_id", td.ID, "error", err)
			continue
		}
		td.Tags = append([]string(nil), note.Tags...)
	}

	s.logger.Debug("reconciled note todos", "note_id", note.ID.String(), "count", len(candidates))
	return candidates, nil
}

// Reconcile re-runs extraction for an existing note.
func (s *Service) Reconcile(ctx context.Context, note *models.Note) ([]*models.Todo, error) {
	unlock := s.locks.Lock(note.ID.String())
	defer unlock()
	return s.reconcile(ctx, note, nil, nil)
}

// carryForward copies completion state from stored rows onto candidates with
// identical text. renamed maps new text to the text it replaced, so an item
// edited through the note keeps its state. When several stored rows share a
// text the first one in source order wins.
func carryForward(candidates, stored []*models.Todo, renamed map[string]string) {
	byText := make(map[string]*models.Todo, len(stored))
	for _, st := range stored {
		if _, ok := byText[st.Text]; !ok {
			byText[st.Text] = st
		}
	}

	for _, c := range candidates {
		prev, ok := byText[c.Text]
		if !ok {
			if old, renamedFrom := renamed[c.Text]; renamedFrom {
				prev, ok = byText[old]
			}
		}
		if !ok {
			continue
		}
		c.Completed = prev.Completed
		c.CompletedAt = prev.CompletedAt
		c.CompletionComment = prev.CompletionComment
		c.CreatedAt = prev.CreatedAt
	}
}
