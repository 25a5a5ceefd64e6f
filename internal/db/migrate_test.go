package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "raw.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadMigrationsOrdered(t *testing.T) {
	migrations, err := LoadMigrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version <= migrations[i-1].Version {
			t.Errorf("migrations out of order at %d: %d after %d", i, migrations[i].Version, migrations[i-1].Version)
		}
	}
}

func TestApplyMigrationsAscendingAndOnce(t *testing.T) {
	ctx := context.Background()
	db := openRawDB(t)

	migrations := []Migration{
		{Version: 2, Name: "second", SQL: `INSERT INTO log (step) VALUES ('second');`},
		{Version: 1, Name: "first", SQL: `CREATE TABLE log (step TEXT); INSERT INTO log (step) VALUES ('first');`},
	}

	n, err := ApplyMigrations(ctx, db, migrations)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 applied, got %d", n)
	}

	n, err = ApplyMigrations(ctx, db, migrations)
	if err != nil {
		t.Fatalf("reapply: %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing pending, got %d", n)
	}

	rows, err := db.Query(`SELECT step FROM log ORDER BY rowid`)
	if err != nil {
		t.Fatalf("query log: %v", err)
	}
	defer func() { _ = rows.Close() }()
	var steps []string
	for rows.Next() {
		var s string
		_ = rows.Scan(&s)
		steps = append(steps, s)
	}
	if len(steps) != 2 || steps[0] != "first" || steps[1] != "second" {
		t.Errorf("expected [first second], got %v", steps)
	}
}

func TestApplyMigrationsAbortsOnFailure(t *testing.T) {
	ctx := context.Background()
	db := openRawDB(t)

	migrations := []Migration{
		{Version: 1, Name: "ok", SQL: `CREATE TABLE a (x INTEGER);`},
		{Version: 2, Name: "broken", SQL: `CREATE TABLE oops (`},
		{Version: 3, Name: "never", SQL: `CREATE TABLE c (x INTEGER);`},
	}

	n, err := ApplyMigrations(ctx, db, migrations)
	if err == nil {
		t.Fatal("expected failure")
	}
	if n != 1 {
		t.Errorf("expected 1 applied before failure, got %d", n)
	}

	applied, _ := AppliedVersions(ctx, db)
	if !applied[1] || applied[2] || applied[3] {
		t.Errorf("unexpected ledger %v", applied)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='c'").Scan(&name)
	if err != sql.ErrNoRows {
		t.Errorf("expected later migration not to run, got %q (%v)", name, err)
	}
}
