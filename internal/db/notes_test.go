// ABOUTME: Tests for note database operations.
// ABOUTME: Covers create, read, update, delete, prefix matching and search.

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/notebook/internal/models"
)

func TestCreateAndGetNote(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	note := models.NewNote("Test Title", "Test content")
	if err := CreateNote(ctx, db, note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	got, err := GetNoteByID(ctx, db, note.ID)
	if err != nil {
		t.Fatalf("failed to get note: %v", err)
	}

	if got.Title != note.Title {
		t.Errorf("expected title %q, got %q", note.Title, got.Title)
	}
	if got.Content != note.Content {
		t.Errorf("expected content %q, got %q", note.Content, got.Content)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected date to round trip")
	}
}

func TestGetNoteByPrefix(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	note := models.NewNote("Test", "Content")
	if err := CreateNote(ctx, db, note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	got, err := GetNoteByPrefix(ctx, db, note.ID.String()[:8])
	if err != nil {
		t.Fatalf("failed to get note by prefix: %v", err)
	}
	if got.ID != note.ID {
		t.Errorf("expected ID %v, got %v", note.ID, got.ID)
	}
}

func TestGetNoteByPrefixWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	note := models.NewNote("Test", "Content")
	if err := CreateNote(ctx, db, note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	for _, prefix := range []string{note.ID.String()[:3] + "%%%", note.ID.String()[:5] + "_"} {
		if _, err := GetNoteByPrefix(ctx, db, prefix); !errors.Is(err, ErrNoteNotFound) {
			t.Errorf("GetNoteByPrefix(%q): expected ErrNoteNotFound, got %v", prefix, err)
		}
	}
}

func TestGetNoteByPrefixTooShort(t *testing.T) {
	db := openTestDB(t)

	_, err := GetNoteByPrefix(context.Background(), db, "abc")
	if !errors.Is(err, ErrPrefixTooShort) {
		t.Errorf("expected ErrPrefixTooShort, got %v", err)
	}
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	note := models.NewNote("Original", "Original content")
	_ = CreateNote(ctx, db, note)

	note.Title = "Updated"
	note.Content = "Updated content"
	note.Touch()

	if err := UpdateNote(ctx, db, note); err != nil {
		t.Fatalf("failed to update note: %v", err)
	}

	got, _ := GetNoteByID(ctx, db, note.ID)
	if got.Title != "Updated" {
		t.Errorf("expected title 'Updated', got %q", got.Title)
	}
}

func TestUpdateMissingNote(t *testing.T) {
	db := openTestDB(t)

	err := UpdateNote(context.Background(), db, models.NewNote("ghost", ""))
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNoteCascadesTodos(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	note := models.NewNote("ToDelete", "## TODO\n- a")
	_ = CreateNote(ctx, db, note)
	todo := &models.Todo{ID: note.ID.String() + "-1", NoteID: &note.ID, Text: "a", Priority: models.PriorityMedium}
	if err := InsertTodo(ctx, db, todo, 0); err != nil {
		t.Fatalf("insert todo: %v", err)
	}

	if err := DeleteNote(ctx, db, note.ID); err != nil {
		t.Fatalf("failed to delete note: %v", err)
	}

	if _, err := GetNoteByID(ctx, db, note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
	if _, err := GetTodo(ctx, db, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected todo to be deleted with note, got %v", err)
	}
}
