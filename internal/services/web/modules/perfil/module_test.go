package perfil

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud/crudtest"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

type fakeService struct {
	mu        sync.Mutex
	perfil    domain.Perfil
	getErr    error
	updateErr error
	updates   []domain.Perfil
}

func (f *fakeService) Get(context.Context) (domain.Perfil, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perfil, f.getErr
}

func (f *fakeService) Update(_ context.Context, p domain.Perfil) (domain.Perfil, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return domain.Perfil{}, f.updateErr
	}
	f.updates = append(f.updates, p)
	f.perfil = p
	return p, nil
}

type memoryAudit struct {
	mu      sync.Mutex
	entries []webstorage.AuditEntry
}

func (m *memoryAudit) Close() error { return nil }

func (m *memoryAudit) RecordAudit(_ context.Context, entry webstorage.AuditEntry) (webstorage.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memoryAudit) ListAudit(context.Context, int) ([]webstorage.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]webstorage.AuditEntry(nil), m.entries...), nil
}

func newHandler(t *testing.T, service Service, audit *memoryAudit) http.Handler {
	t.Helper()

	opts := []Option{WithService(service), WithBase(modulehandler.NewTestBase())}
	if audit != nil {
		opts = append(opts, WithAudit(auditlog.New(audit, auditlog.StaticActor("admin"), nil)))
	}
	mounted, err := New(opts...).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mounted.Prefix != routepath.Perfil {
		t.Fatalf("prefix = %q, want %q", mounted.Prefix, routepath.Perfil)
	}
	return mounted.Handler
}

func sampleService() *fakeService {
	return &fakeService{perfil: domain.Perfil{
		Username:  "admin",
		Email:     "admin@example.com",
		FirstName: "Ana",
		LastName:  "Gómez",
		Telefono:  "3001234567",
	}}
}

func TestShowRendersProfile(t *testing.T) {
	t.Parallel()

	handler := newHandler(t, sampleService(), nil)
	rr := crudtest.Serve(handler, crudtest.Get(routepath.Perfil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Ana Gómez", "admin@example.com", "3001234567", routepath.PerfilEdit} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestShowReportsBackendFailure(t *testing.T) {
	t.Parallel()

	service := sampleService()
	service.getErr = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "dial tcp: refused")
	rr := crudtest.Serve(newHandler(t, service, nil), crudtest.Get(routepath.Perfil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestMissingServiceIsUnavailable(t *testing.T) {
	t.Parallel()

	mod := New(WithBase(modulehandler.NewTestBase()))
	if mod.Healthy() {
		t.Fatal("Healthy() = true, want false without service")
	}
	mounted, err := mod.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := crudtest.Serve(mounted.Handler, crudtest.Get(routepath.Perfil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestEditFormPrefillsValues(t *testing.T) {
	t.Parallel()

	rr := crudtest.Serve(newHandler(t, sampleService(), nil), crudtest.HTMX(crudtest.Get(routepath.PerfilEdit), "modal"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{`name="email"`, `value="admin@example.com"`, `type="tel"`, `value="Gómez"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("HTMX modal rendered a full page")
	}
}

func TestUpdateSavesNormalizedProfile(t *testing.T) {
	t.Parallel()

	service := sampleService()
	audit := &memoryAudit{}
	handler := newHandler(t, service, audit)
	form := url.Values{
		"first_name": {"  Ana María "},
		"last_name":  {"Gómez"},
		"email":      {" Ana.Gomez@Example.COM "},
		"telefono":   {"3109876543"},
	}
	rr := crudtest.Serve(handler, crudtest.PostForm(routepath.PerfilEdit, form))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.Perfil {
		t.Fatalf("Location = %q, want %q", got, routepath.Perfil)
	}
	if len(service.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(service.updates))
	}
	saved := service.updates[0]
	if saved.Email != "ana.gomez@example.com" || saved.FirstName != "Ana María" || saved.Username != "admin" {
		t.Fatalf("saved = %+v", saved)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Entity != auditEntity || entry.Action != webstorage.ActionUpdate || entry.Actor != "admin" || entry.Summary != "Ana María Gómez" {
		t.Fatalf("audit entry = %+v", entry)
	}
}

func TestUpdateHTMXRedirectsWithHeader(t *testing.T) {
	t.Parallel()

	form := url.Values{"email": {"nuevo@example.com"}}
	rr := crudtest.Serve(newHandler(t, sampleService(), nil), crudtest.HTMX(crudtest.PostForm(routepath.PerfilEdit, form), "modal"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); got != routepath.Perfil {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.Perfil)
	}
}

func TestUpdateRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
	}{
		{name: "blank", email: "  "},
		{name: "malformed", email: "no-arroba"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := sampleService()
			audit := &memoryAudit{}
			form := url.Values{"email": {tc.email}, "first_name": {"Ana"}}
			rr := crudtest.Serve(newHandler(t, service, audit), crudtest.HTMX(crudtest.PostForm(routepath.PerfilEdit, form), "modal"))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if len(service.updates) != 0 || len(audit.entries) != 0 {
				t.Fatalf("updates = %d, audit = %d, want none", len(service.updates), len(audit.entries))
			}
			if !strings.Contains(rr.Body.String(), "has-error") {
				t.Fatal("form missing field error")
			}
		})
	}
}

func TestUpdateSurfacesBackendFieldErrors(t *testing.T) {
	t.Parallel()

	service := sampleService()
	service.updateErr = apperrors.Invalid("core.error.invalid_input", map[string]string{"email": "Ya existe un usuario con este correo."})
	form := url.Values{"email": {"otro@example.com"}}
	rr := crudtest.Serve(newHandler(t, service, nil), crudtest.HTMX(crudtest.PostForm(routepath.PerfilEdit, form), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ya existe un usuario con este correo.") {
		t.Fatal("body missing backend field message")
	}
	if !strings.Contains(body, `value="otro@example.com"`) {
		t.Fatal("submitted email not kept")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := crudtest.Serve(newHandler(t, sampleService(), nil), crudtest.Get(routepath.Perfil+"otra"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
