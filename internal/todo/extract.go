// ABOUTME: Extracts TODO records from the TODO sections of a markdown note.
// ABOUTME: Identifiers embed the physical line index at extraction time.

package todo

import (
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// Extract returns the note's TODO items in source order. Items whose text is
// empty once the marker and priority token are stripped are dropped.
func Extract(noteID uuid.UUID, content, noteTitle string) []*models.Todo {
	var todos []*models.Todo
	now := time.Now()
	scanSections(splitLines(content), func(l listLine) {
		priority, text := ParsePriority(l.body)
		if text == "" {
			return
		}
		id := noteID
		todos = append(todos, &models.Todo{
			ID:        ID(noteID.String(), l.index),
			NoteID:    &id,
			NoteTitle: noteTitle,
			Text:      text,
			Priority:  priority,
			CreatedAt: now,
		})
	})
	return todos
}
