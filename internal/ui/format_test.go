// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates note, todo and tag display and markdown rendering.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

func TestFormatNoteListItem(t *testing.T) {
	note := &models.Note{
		ID:        uuid.New(),
		Title:     "Test Note",
		Tags:      []string{"important", "work"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	output := FormatNoteListItem(note)

	if !strings.Contains(output, note.ID.String()[:6]) {
		t.Error("expected output to contain ID prefix")
	}
	if !strings.Contains(output, "Test Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "important") {
		t.Error("expected output to contain tag")
	}
}

func TestFormatTodoListItem(t *testing.T) {
	noteID := uuid.New()
	comment := "shipped"
	td := &models.Todo{
		ID:                noteID.String() + "-3",
		NoteID:            &noteID,
		NoteTitle:         "Sprint",
		Text:              "Fix bug",
		Priority:          models.PriorityHigh,
		Completed:         true,
		CompletionComment: &comment,
		Tags:              []string{"work"},
	}

	output := FormatTodoListItem(td)

	for _, want := range []string{"Fix bug", "high", "Sprint", "work", "shipped", noteID.String()[:6] + "-3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"abc", "abc"},
		{"123e4567-e89b-12d3-a456-426614174000-12", "123e45-12"},
		{"123e4567-e89b-12d3-a456-426614174000", "123e4567"},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFormatNoteContent(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."

	output, err := FormatNoteContent(content)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatTodoSection(t *testing.T) {
	todos := []*models.Todo{
		{ID: "a", Text: "one", Completed: true},
		{ID: "b", Text: "two"},
	}

	output := FormatTodoSection(todos)

	if !strings.Contains(output, "1/2 done") {
		t.Errorf("expected progress count, got %q", output)
	}
}

func TestFormatTagList(t *testing.T) {
	tags := []TagCount{
		{Name: "work", Notes: 5, Todos: 2},
		{Name: "personal", Notes: 3},
	}

	output := FormatTagList(tags)

	if !strings.Contains(output, "work") {
		t.Error("expected output to contain 'work'")
	}
	if !strings.Contains(output, "5 notes, 2 todos") {
		t.Error("expected output to contain counts")
	}
}

func TestFormatShowMore(t *testing.T) {
	if out := FormatShowMore(4); !strings.Contains(out, "4 more notes") {
		t.Errorf("unexpected output %q", out)
	}
}
