// ABOUTME: Tag vocabulary and note/todo tag associations.
// ABOUTME: Replaces owner tag sets wholesale and copies note tags onto their todos.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// Owner names the junction table an owner's tag links live in.
type Owner struct {
	table  string
	column string
}

var (
	NoteOwner = Owner{table: "note_tags", column: "note_id"}
	TodoOwner = Owner{table: "todo_tags", column: "todo_id"}
)

// EnsureTag returns the tag with exactly this name, creating it if absent.
func EnsureTag(ctx context.Context, q Querier, name string) (*models.Tag, error) {
	tag := models.NewTag(name)

	err := q.QueryRowContext(ctx, `SELECT id, created_date FROM tags WHERE name = ?`, tag.Name).
		Scan(&tag.ID, &tag.CreatedAt)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	result, err := q.ExecContext(ctx, `INSERT INTO tags (name, created_date) VALUES (?, ?)`, tag.Name, tag.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tag.ID, err = result.LastInsertId(); err != nil {
		return nil, err
	}
	return tag, nil
}

// SetTags replaces every association of the owner with one per unique name.
func SetTags(ctx context.Context, q Querier, owner Owner, ownerID string, names []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM `+owner.table+` WHERE `+owner.column+` = ?`, ownerID); err != nil {
		return err
	}
	names = models.UniqueTagNames(names)
	if len(names) == 0 {
		return nil
	}

	for _, name := range names {
		tag, err := EnsureTag(ctx, q, name)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+owner.table+` (`+owner.column+`, tag_id) VALUES (?, ?)`,
			ownerID, tag.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

func SetNoteTags(ctx context.Context, q Querier, noteID uuid.UUID, names []string) error {
	return SetTags(ctx, q, NoteOwner, noteID.String(), names)
}

func SetTodoTags(ctx context.Context, q Querier, todoID string, names []string) error {
	return SetTags(ctx, q, TodoOwner, todoID, names)
}

// InheritNoteTags overwrites the todo's tags with its note's current tags.
// Standalone todos (nil noteID) are left alone.
func InheritNoteTags(ctx context.Context, q Querier, todoID string, noteID *uuid.UUID) error {
	if noteID == nil {
		return nil
	}
	names, err := GetNoteTagNames(ctx, q, *noteID)
	if err != nil {
		return err
	}
	return SetTodoTags(ctx, q, todoID, names)
}

func AddTagToNote(ctx context.Context, q Querier, noteID uuid.UUID, tagName string) error {
	tag, err := EnsureTag(ctx, q, tagName)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
		noteID.String(), tag.ID,
	)
	return err
}

func RemoveTagFromNote(ctx context.Context, q Querier, noteID uuid.UUID, tagName string) error {
	tag := models.NewTag(tagName)
	_, err := q.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ? AND tag_id = (SELECT id FROM tags WHERE name = ?)`,
		noteID.String(), tag.Name,
	)
	return err
}

func GetNoteTagNames(ctx context.Context, q Querier, noteID uuid.UUID) ([]string, error) {
	return queryNames(ctx, q,
		`SELECT t.name FROM tags t
		 JOIN note_tags nt ON t.id = nt.tag_id
		 WHERE nt.note_id = ?
		 ORDER BY t.name`,
		noteID.String(),
	)
}

func GetTodoTagNames(ctx context.Context, q Querier, todoID string) ([]string, error) {
	return queryNames(ctx, q,
		`SELECT t.name FROM tags t
		 JOIN todo_tags tt ON t.id = tt.tag_id
		 WHERE tt.todo_id = ?
		 ORDER BY t.name`,
		todoID,
	)
}

func queryNames(ctx context.Context, q Querier, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type TagWithCount struct {
	Tag       *models.Tag `json:"tag"`
	NoteCount int         `json:"note_count"`
	TodoCount int         `json:"todo_count"`
}

func ListAllTags(ctx context.Context, q Querier) ([]*TagWithCount, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_date,
		        (SELECT COUNT(*) FROM note_tags nt WHERE nt.tag_id = t.id),
		        (SELECT COUNT(*) FROM todo_tags tt WHERE tt.tag_id = t.id)
		 FROM tags t
		 ORDER BY t.name`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []*TagWithCount
	for rows.Next() {
		tc := &TagWithCount{Tag: &models.Tag{}}
		if err := rows.Scan(&tc.Tag.ID, &tc.Tag.Name, &tc.Tag.CreatedAt, &tc.NoteCount, &tc.TodoCount); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
