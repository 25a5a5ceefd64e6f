// ABOUTME: Database operations for notes.
// ABOUTME: Provides CRUD, prefix-based lookup and filtered listing for notes.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple records")
var ErrNoteNotFound = errors.New("note not found")

const noteColumns = `n.id, n.title, n.content, n.date, n.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	note := &models.Note{}
	var idStr string
	if err := row.Scan(&idStr, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	note.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid note ID in database: %w", err)
	}
	return note, nil
}

func CreateNote(ctx context.Context, q Querier, note *models.Note) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, date, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ID.String(), note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

// GetNoteByID loads a note with its tag names.
func GetNoteByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Note, error) {
	note, err := scanNote(q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes n WHERE n.id = ?`,
		id.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	if note.Tags, err = GetNoteTagNames(ctx, q, note.ID); err != nil {
		return nil, err
	}
	return note, nil
}

func GetNoteByPrefix(ctx context.Context, q Querier, prefix string) (*models.Note, error) {
	if id, err := uuid.Parse(prefix); err == nil {
		return GetNoteByID(ctx, q, id)
	}
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	notes, err := queryNotes(ctx, q,
		`SELECT `+noteColumns+` FROM notes n WHERE n.id LIKE ?`+likeEscape,
		likeEscaper.Replace(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoteNotFound
	}
	if len(notes) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(notes))
	}
	return notes[0], nil
}

// ListNotes returns notes newest first. A search beginning with "tag:"
// filters by tag-name substring, any other search matches title or content.
func ListNotes(ctx context.Context, q Querier, search string, limit int) ([]*models.Note, error) {
	query := `SELECT DISTINCT ` + noteColumns + ` FROM notes n`
	var args []any

	if tagTerm, ok := TagSearch(search); ok {
		query += ` JOIN note_tags nt ON n.id = nt.note_id
		           JOIN tags t ON nt.tag_id = t.id
		           WHERE LOWER(t.name) LIKE LOWER(?)` + likeEscape
		args = append(args, likePattern(tagTerm))
	} else if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE n.title LIKE ?` + likeEscape + ` OR n.content LIKE ?` + likeEscape
		args = append(args, likePattern(search), likePattern(search))
	}

	query += ` ORDER BY n.updated_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return queryNotes(ctx, q, query, args...)
}

// queryNotes drains the result set before loading tags so it never holds
// two statements open on the single connection.
func queryNotes(ctx context.Context, q Querier, query string, args ...any) ([]*models.Note, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for _, note := range notes {
		if note.Tags, err = GetNoteTagNames(ctx, q, note.ID); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func UpdateNote(ctx context.Context, q Querier, note *models.Note) error {
	result, err := q.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Content, note.UpdatedAt, note.ID.String(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote removes the note; its todos and tag links cascade.
func DeleteNote(ctx context.Context, q Querier, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func CountNotes(ctx context.Context, q Querier) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}
