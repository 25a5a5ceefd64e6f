// ABOUTME: Database operations for todos, both note-linked and standalone.
// ABOUTME: Provides CRUD, per-note replacement and filtered listing.

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

var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = `td.id, td.note_id, td.note_title, td.text, td.completed, td.priority,
	td.created_date, td.completed_date, td.completion_comment`

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var (
		noteID      sql.NullString
		completedAt sql.NullTime
		comment     sql.NullString
		priority    string
	)
	err := row.Scan(&todo.ID, &noteID, &todo.NoteTitle, &todo.Text, &todo.Completed, &priority,
		&todo.CreatedAt, &completedAt, &comment)
	if err != nil {
		return nil, err
	}
	if noteID.Valid {
		id, err := uuid.Parse(noteID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid note ID in database: %w", err)
		}
		todo.NoteID = &id
	}
	if completedAt.Valid {
		t := completedAt.Time
		todo.CompletedAt = &t
	}
	if comment.Valid {
		c := comment.String
		todo.CompletionComment = &c
	}
	todo.Priority = models.Priority(priority)
	return todo, nil
}

func nullableNoteID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// InsertTodo writes a todo row. position orders a note's todos by source line.
func InsertTodo(ctx context.Context, q Querier, todo *models.Todo, position int) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO todos (id, note_id, note_title, text, completed, priority, position,
		                    created_date, completed_date, completion_comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, nullableNoteID(todo.NoteID), todo.NoteTitle, todo.Text, todo.Completed,
		string(todo.Priority), position, todo.CreatedAt, todo.CompletedAt, todo.CompletionComment,
	)
	return err
}

// GetTodo loads a todo with its tag names.
func GetTodo(ctx context.Context, q Querier, id string) (*models.Todo, error) {
	todo, err := scanTodo(q.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos td WHERE td.id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}
	if todo.Tags, err = GetTodoTagNames(ctx, q, todo.ID); err != nil {
		return nil, err
	}
	return todo, nil
}

func GetTodoByPrefix(ctx context.Context, q Querier, prefix string) (*models.Todo, error) {
	if todo, err := GetTodo(ctx, q, prefix); !errors.Is(err, ErrTodoNotFound) {
		return todo, err
	}
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	todos, err := queryTodos(ctx, q,
		`SELECT `+todoColumns+` FROM todos td WHERE td.id LIKE ?`+likeEscape,
		likeEscaper.Replace(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	if len(todos) == 0 {
		return nil, ErrTodoNotFound
	}
	if len(todos) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(todos))
	}
	return todos[0], nil
}

// ListNoteTodos returns a note's todos in source order.
func ListNoteTodos(ctx context.Context, q Querier, noteID uuid.UUID) ([]*models.Todo, error) {
	return queryTodos(ctx, q,
		`SELECT `+todoColumns+` FROM todos td WHERE td.note_id = ? ORDER BY td.position`,
		noteID.String(),
	)
}

type TodoFilter struct {
	NoteID    *uuid.UUID
	Completed *bool
	// Search follows the note rules: "tag:" filters by tag name, anything
	// else matches the todo text or its note title.
	Search string
	Limit  int
}

// ListTodos returns open todos first, then by priority and creation time.
func ListTodos(ctx context.Context, q Querier, filter TodoFilter) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos td`
	var where []string
	var args []any

	if tagTerm, ok := TagSearch(filter.Search); ok {
		where = append(where, `td.id IN (
			SELECT tt.todo_id FROM todo_tags tt
			JOIN tags t ON tt.tag_id = t.id
			WHERE LOWER(t.name) LIKE LOWER(?)`+likeEscape+`)`)
		args = append(args, likePattern(tagTerm))
	} else if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, `(td.text LIKE ?`+likeEscape+` OR td.note_title LIKE ?`+likeEscape+`)`)
		args = append(args, likePattern(search), likePattern(search))
	}
	if filter.NoteID != nil {
		where = append(where, `td.note_id = ?`)
		args = append(args, filter.NoteID.String())
	}
	if filter.Completed != nil {
		where = append(where, `td.completed = ?`)
		args = append(args, *filter.Completed)
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY td.completed,
		CASE td.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
		td.created_date, td.position`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	return queryTodos(ctx, q, query, args...)
}

func queryTodos(ctx context.Context, q Querier, query string, args ...any) ([]*models.Todo, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var todos []*models.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for _, todo := range todos {
		if todo.Tags, err = GetTodoTagNames(ctx, q, todo.ID); err != nil {
			return nil, err
		}
	}
	return todos, nil
}

// UpdateTodo writes the mutable fields of an existing todo.
func UpdateTodo(ctx context.Context, q Querier, todo *models.Todo) error {
	result, err := q.ExecContext(ctx,
		`UPDATE todos SET text = ?, completed = ?, priority = ?, completed_date = ?, completion_comment = ?
		 WHERE id = ?`,
		todo.Text, todo.Completed, string(todo.Priority), todo.CompletedAt, todo.CompletionComment, todo.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func DeleteTodo(ctx context.Context, q Querier, id string) error {
	result, err := q.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// ReplaceNoteTodos deletes every todo of the note and inserts todos in order.
// Callers wanting atomicity pass a *sql.Tx.
func ReplaceNoteTodos(ctx context.Context, q Querier, noteID uuid.UUID, todos []*models.Todo) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM todos WHERE note_id = ?`, noteID.String()); err != nil {
		return fmt.Errorf("delete note todos: %w", err)
	}
	for i, todo := range todos {
		if err := InsertTodo(ctx, q, todo, i); err != nil {
			return fmt.Errorf("insert todo %s: %w", todo.ID, err)
		}
	}
	return nil
}
