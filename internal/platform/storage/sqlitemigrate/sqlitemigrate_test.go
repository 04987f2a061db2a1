package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"001_audit.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE audit(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE audit;"),
		},
	}

	applied, err := ApplyMigrations(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if len(applied) != 1 || applied[0] != "001_audit.sql" {
		t.Fatalf("applied = %v, want [001_audit.sql]", applied)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
	if !tableExists(t, db, "audit") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplyMigrationsSkipsAlreadyApplied(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"001_audit.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE audit(id TEXT PRIMARY KEY);")},
	}
	if _, err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply initial migrations: %v", err)
	}
	applied, err := ApplyMigrations(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("re-apply migrations should be idempotent: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("applied on replay = %v, want none", applied)
	}
}

func TestApplyMigrationsDoesNotRecordFailedMigration(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")},
	}
	if _, err := ApplyMigrations(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("migration rows = %d, want failed migration unrecorded", rows)
	}
}

func TestApplyMigrationsRespectsMigrationRoot(t *testing.T) {
	t.Parallel()
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"migrations/001_audit.sql": &fstest.MapFile{Data: []byte("CREATE TABLE audit_rows(id TEXT PRIMARY KEY);")},
		"migrations/README.md":     &fstest.MapFile{Data: []byte("ignored")},
	}
	if _, err := ApplyMigrations(context.Background(), db, migrations, "migrations"); err != nil {
		t.Fatalf("apply migrations with root: %v", err)
	}
	if key := queryString(t, db, "SELECT name FROM schema_migrations LIMIT 1"); key != "migrations/001_audit.sql" {
		t.Fatalf("migration key = %q, want root-prefixed name", key)
	}
	if !tableExists(t, db, "audit_rows") {
		t.Fatal("expected migrated table in root-based migration")
	}
}

func TestExtractUpMigrationStopsAtDownMarker(t *testing.T) {
	t.Parallel()

	got := ExtractUpMigration("-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;")
	if got != "\nCREATE TABLE a(x);\n" {
		t.Fatalf("ExtractUpMigration() = %q", got)
	}
	if plain := ExtractUpMigration("SELECT 1;"); plain != "SELECT 1;" {
		t.Fatalf("ExtractUpMigration() without markers = %q", plain)
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	t.Parallel()

	if !IsAlreadyExistsError(errors.New("table audit already exists")) {
		t.Fatal("expected already-exists match")
	}
	if IsAlreadyExistsError(nil) || IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("unexpected already-exists match")
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// Each pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
