package auditlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nominaweb/nominaweb/internal/domain"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

type fakeProfile struct {
	mu     sync.Mutex
	calls  int
	perfil domain.Perfil
	err    error
}

func (f *fakeProfile) Get(context.Context) (domain.Perfil, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.perfil, f.err
}

type memoryStore struct {
	entries []webstorage.AuditEntry
	err     error
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) RecordAudit(_ context.Context, entry webstorage.AuditEntry) (webstorage.AuditEntry, error) {
	if m.err != nil {
		return webstorage.AuditEntry{}, m.err
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memoryStore) ListAudit(_ context.Context, limit int) ([]webstorage.AuditEntry, error) {
	out := make([]webstorage.AuditEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func TestProfileActorCachesUsername(t *testing.T) {
	t.Parallel()

	profile := &fakeProfile{perfil: domain.Perfil{Username: " admin "}}
	actor := NewProfileActor(profile)
	for range 3 {
		if got := actor.Actor(context.Background()); got != "admin" {
			t.Fatalf("Actor() = %q, want %q", got, "admin")
		}
	}
	if profile.calls != 1 {
		t.Fatalf("profile calls = %d, want 1", profile.calls)
	}
}

func TestProfileActorFallsBackAndRetriesAfterInterval(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	profile := &fakeProfile{err: errors.New("backend down")}
	actor := NewProfileActor(profile)
	actor.now = func() time.Time { return clock }

	if got := actor.Actor(context.Background()); got != FallbackActor {
		t.Fatalf("Actor() = %q, want %q", got, FallbackActor)
	}
	profile.err = nil
	profile.perfil = domain.Perfil{Username: "contadora"}
	if got := actor.Actor(context.Background()); got != FallbackActor {
		t.Fatalf("Actor() within retry interval = %q, want %q", got, FallbackActor)
	}
	if profile.calls != 1 {
		t.Fatalf("profile calls = %d, want 1", profile.calls)
	}

	clock = clock.Add(profileRetryInterval)
	if got := actor.Actor(context.Background()); got != "contadora" {
		t.Fatalf("Actor() after recovery = %q, want %q", got, "contadora")
	}
}

type blockingProfile struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingProfile) Get(context.Context) (domain.Perfil, error) {
	b.started <- struct{}{}
	<-b.release
	return domain.Perfil{Username: "admin"}, nil
}

func TestProfileActorDoesNotSerializeLookups(t *testing.T) {
	t.Parallel()

	profile := &blockingProfile{started: make(chan struct{}, 2), release: make(chan struct{})}
	actor := NewProfileActor(profile)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = actor.Actor(context.Background())
		}()
	}
	// Both lookups are in flight before either returns.
	for range 2 {
		select {
		case <-profile.started:
		case <-time.After(5 * time.Second):
			close(profile.release)
			wg.Wait()
			t.Fatal("profile lookups ran one at a time")
		}
	}
	close(profile.release)
	wg.Wait()
	for _, got := range results {
		if got != "admin" {
			t.Fatalf("Actor() = %q, want %q", got, "admin")
		}
	}
}

func TestRecorderWritesEntries(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	recorder := New(store, StaticActor("ana"), nil)
	recorder.Record(context.Background(), webstorage.ActionCreate, "empleados", 7, "Ana Pérez")
	recorder.Record(context.Background(), webstorage.ActionDelete, "cargos", 2, "Auxiliar")

	recent, err := recorder.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent() len = %d, want 2", len(recent))
	}
	if recent[0].Entity != "cargos" || recent[0].EntityID != "2" || recent[0].Actor != "ana" {
		t.Fatalf("Recent()[0] = %+v", recent[0])
	}
}

func TestRecorderLogsStoreFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	recorder := New(&memoryStore{err: errors.New("disk full")}, nil, zap.New(core))
	recorder.Record(context.Background(), webstorage.ActionUpdate, "prestamos", 3, "")
	if logs.Len() != 1 {
		t.Fatalf("logs = %d, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["entity"] != "prestamos" {
		t.Fatalf("log fields = %v", entry.ContextMap())
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	t.Parallel()

	var recorder *Recorder
	recorder.Record(context.Background(), webstorage.ActionCreate, "x", 1, "")
	recent, err := recorder.Recent(context.Background(), 5)
	if err != nil || len(recent) != 0 {
		t.Fatalf("Recent() = %v, %v", recent, err)
	}
}
