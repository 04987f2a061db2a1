package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "modernc.org/sqlite"

	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store := openStore(t, path)
	_ = store

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	assertTableExists(t, sqlDB, "audit_log")
	assertTableExists(t, sqlDB, "schema_migrations")
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	first := openStore(t, path)
	if _, err := first.RecordAudit(context.Background(), webstorage.AuditEntry{Action: webstorage.ActionCreate, Entity: "cargos", EntityID: "1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openStore(t, path)
	entries, err := second.ListAudit(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
}

func TestRecordAndListAuditNewestFirst(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "audit.db"))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	inputs := []webstorage.AuditEntry{
		{At: base, Actor: " admin ", Action: "CREATE", Entity: "empleados", EntityID: "7", Summary: "Ana Peña"},
		{At: base.Add(time.Minute), Actor: "admin", Action: webstorage.ActionUpdate, Entity: "cargos", EntityID: "3", Summary: "Analista"},
		{At: base.Add(2 * time.Minute), Actor: "admin", Action: webstorage.ActionDelete, Entity: "contratos", EntityID: "9"},
	}
	for _, input := range inputs {
		saved, err := store.RecordAudit(ctx, input)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if saved.ID <= 0 {
			t.Fatalf("saved.ID = %d, want > 0", saved.ID)
		}
	}

	got, err := store.ListAudit(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []webstorage.AuditEntry{
		{At: base.Add(2 * time.Minute), Actor: "admin", Action: webstorage.ActionDelete, Entity: "contratos", EntityID: "9"},
		{At: base.Add(time.Minute), Actor: "admin", Action: webstorage.ActionUpdate, Entity: "cargos", EntityID: "3", Summary: "Analista"},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(webstorage.AuditEntry{}, "ID")); diff != "" {
		t.Fatalf("ListAudit mismatch (-want +got):\n%s", diff)
	}

	all, err := store.ListAudit(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[2].Actor != "admin" || all[2].Action != webstorage.ActionCreate {
		t.Fatalf("oldest entry = %+v, want normalized actor and action", all[2])
	}
}

func TestRecordAuditStampsTimeAndDefaultsActor(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "audit.db"))
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	saved, err := store.RecordAudit(context.Background(), webstorage.AuditEntry{Action: webstorage.ActionUpload, Entity: "empleados", EntityID: "1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !saved.At.Equal(fixed) {
		t.Fatalf("At = %v, want %v", saved.At, fixed)
	}
	if saved.Actor != "anonymous" {
		t.Fatalf("Actor = %q, want %q", saved.Actor, "anonymous")
	}
}

func TestRecordAuditRequiresActionAndEntity(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "audit.db"))

	if _, err := store.RecordAudit(context.Background(), webstorage.AuditEntry{Entity: "cargos"}); err == nil {
		t.Fatal("expected missing action error")
	}
	if _, err := store.RecordAudit(context.Background(), webstorage.AuditEntry{Action: webstorage.ActionCreate}); err == nil {
		t.Fatal("expected missing entity error")
	}
}

func TestNilStoreReportsNotConfigured(t *testing.T) {
	var store *Store
	if _, err := store.ListAudit(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func assertTableExists(t *testing.T, db *sql.DB, name string) {
	t.Helper()
	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if err != nil {
		t.Fatalf("table %s missing: %v", name, err)
	}
}
