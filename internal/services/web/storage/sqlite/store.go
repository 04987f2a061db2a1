package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/nominaweb/nominaweb/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
	"github.com/nominaweb/nominaweb/internal/services/web/storage/sqlite/migrations"
)

// Store provides SQLite-backed persistence for the audit log.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates an audit SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := store.runMigrations(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordAudit appends one entry and returns it with its assigned id.
func (s *Store) RecordAudit(ctx context.Context, entry webstorage.AuditEntry) (webstorage.AuditEntry, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.AuditEntry{}, fmt.Errorf("storage is not configured")
	}
	entry = webstorage.NormalizeAuditEntry(entry, s.now())
	if entry.Action == "" {
		return webstorage.AuditEntry{}, fmt.Errorf("audit action is required")
	}
	if entry.Entity == "" {
		return webstorage.AuditEntry{}, fmt.Errorf("audit entity is required")
	}
	if entry.Actor == "" {
		entry.Actor = "anonymous"
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO audit_log (at, actor, action, entity, entity_id, summary)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.At.UnixMilli(),
		entry.Actor,
		string(entry.Action),
		entry.Entity,
		entry.EntityID,
		entry.Summary,
	)
	if err != nil {
		return webstorage.AuditEntry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return webstorage.AuditEntry{}, fmt.Errorf("read audit entry id: %w", err)
	}
	entry.ID = id
	entry.At = unixMillisToTime(entry.At.UnixMilli())
	return entry, nil
}

// ListAudit returns the most recent entries, newest first.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]webstorage.AuditEntry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, at, actor, action, entity, entity_id, summary
		 FROM audit_log
		 ORDER BY at DESC, id DESC
		 LIMIT ?`,
		webstorage.ClampAuditLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]webstorage.AuditEntry, 0)
	for rows.Next() {
		var (
			entry  webstorage.AuditEntry
			at     int64
			action string
		)
		if err := rows.Scan(&entry.ID, &at, &entry.Actor, &action, &entry.Entity, &entry.EntityID, &entry.Summary); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.At = unixMillisToTime(at)
		entry.Action = webstorage.Action(action)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations(ctx context.Context) error {
	_, err := sqlitemigrate.ApplyMigrations(ctx, s.sqlDB, migrations.FS, "")
	return err
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.AuditStore = (*Store)(nil)
