// ABOUTME: Todo model for items extracted from a note's TODO section or created standalone.
// ABOUTME: Defines the low/medium/high priority levels.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriorityLevel accepts a priority name as sent by clients.
// An empty string means medium.
func ParsePriorityLevel(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "", PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

type Todo struct {
	ID                string     `json:"id"`
	NoteID            *uuid.UUID `json:"note_id"`
	NoteTitle         string     `json:"note_title"`
	Text              string     `json:"text"`
	Completed         bool       `json:"completed"`
	Priority          Priority   `json:"priority"`
	CreatedAt         time.Time  `json:"created_date"`
	CompletedAt       *time.Time `json:"completed_date"`
	CompletionComment *string    `json:"completion_comment"`
	Tags              []string   `json:"tags"`
}

// NewTodo creates a standalone todo with a random identifier.
func NewTodo(text string, priority Priority) *Todo {
	if priority == "" {
		priority = PriorityMedium
	}
	return &Todo{
		ID:        uuid.NewString(),
		Text:      text,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
}

// Standalone reports whether the todo has no owning note.
func (t *Todo) Standalone() bool {
	return t.NoteID == nil
}

// SetCompleted toggles completion. Completing stamps the time and keeps the
// comment; reopening clears both.
func (t *Todo) SetCompleted(done bool, comment *string) {
	t.Completed = done
	if !done {
		t.CompletedAt = nil
		t.CompletionComment = nil
		return
	}
	now := time.Now()
	t.CompletedAt = &now
	if comment != nil {
		t.CompletionComment = comment
	}
}
