// ABOUTME: One-shot sweep moving legacy JSON tag columns into the junction tables.
// ABOUTME: Runs after migrations at startup; a second run finds nothing to do.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type legacyTags struct {
	id    string
	names []string
	// blank marks an empty legacy value, which carries no tags to convert.
	blank bool
}

// BackfillTags converts notes.tags and todos.tags JSON arrays into tag links,
// re-inherits note tags onto the todos of every converted note and clears the
// legacy columns. It returns how many rows were converted.
func BackfillTags(ctx context.Context, db *sql.DB) (int, error) {
	count := 0
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		notes, err := readLegacyTags(ctx, tx, `SELECT id, tags FROM notes WHERE tags IS NOT NULL`)
		if err != nil {
			return fmt.Errorf("read legacy note tags: %w", err)
		}
		for _, n := range notes {
			if n.blank {
				if _, err := tx.ExecContext(ctx, `UPDATE notes SET tags = NULL WHERE id = ?`, n.id); err != nil {
					return err
				}
				continue
			}
			noteID, err := uuid.Parse(n.id)
			if err != nil {
				return fmt.Errorf("invalid note ID in database: %w", err)
			}
			if err := SetNoteTags(ctx, tx, noteID, n.names); err != nil {
				return fmt.Errorf("backfill note %s: %w", n.id, err)
			}
			if _, err := tx.ExecContext(ctx, `UPDATE notes SET tags = NULL WHERE id = ?`, n.id); err != nil {
				return err
			}
			todos, err := ListNoteTodos(ctx, tx, noteID)
			if err != nil {
				return err
			}
			for _, td := range todos {
				if err := InheritNoteTags(ctx, tx, td.ID, td.NoteID); err != nil {
					return fmt.Errorf("inherit tags for todo %s: %w", td.ID, err)
				}
			}
			count++
		}

		todos, err := readLegacyTags(ctx, tx, `SELECT id, tags FROM todos WHERE tags IS NOT NULL AND note_id IS NULL`)
		if err != nil {
			return fmt.Errorf("read legacy todo tags: %w", err)
		}
		for _, td := range todos {
			if td.blank {
				continue
			}
			if err := SetTodoTags(ctx, tx, td.id, td.names); err != nil {
				return fmt.Errorf("backfill todo %s: %w", td.id, err)
			}
			count++
		}
		// Note-linked todos took their note's tags above.
		_, err = tx.ExecContext(ctx, `UPDATE todos SET tags = NULL WHERE tags IS NOT NULL`)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func readLegacyTags(ctx context.Context, q Querier, query string) ([]legacyTags, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []legacyTags
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		if strings.TrimSpace(raw) == "" {
			out = append(out, legacyTags{id: id, blank: true})
			continue
		}
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return nil, fmt.Errorf("row %s: legacy tags %q: %w", id, raw, err)
		}
		out = append(out, legacyTags{id: id, names: names})
	}
	return out, rows.Err()
}
