package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nominaweb/nominaweb/internal/backend"
)

func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/perfil/") {
			_, _ = io.WriteString(w, `{"username":"admin","email":"admin@example.com"}`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{Backend: backend.Config{BaseURL: "http://backend.test"}})
	if err == nil || !strings.Contains(err.Error(), "http address is required") {
		t.Fatalf("NewServer() error = %v, want address error", err)
	}
}

func TestNewServerRejectsInvalidBackend(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Backend: backend.Config{BaseURL: "://bad"}})
	if err == nil {
		t.Fatal("NewServer() error = nil, want backend error")
	}
}

func TestServerHandlerServesHealthAndDashboard(t *testing.T) {
	t.Parallel()

	api := newTestBackend(t)
	srv, err := NewServer(context.Background(), Config{
		HTTPAddr:    "127.0.0.1:0",
		Backend:     backend.Config{BaseURL: api.URL, Token: "secret"},
		AuditDBPath: filepath.Join(t.TempDir(), "audit.db"),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(srv.Close)

	health := httptest.NewRecorder()
	srv.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", health.Code, http.StatusOK)
	}

	dash := httptest.NewRecorder()
	srv.Handler().ServeHTTP(dash, httptest.NewRequest(http.MethodGet, "/app/", nil))
	if dash.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, want %d", dash.Code, http.StatusOK)
	}
	if !strings.Contains(dash.Body.String(), `id="stat-empleados"`) {
		t.Fatalf("dashboard body missing stat card: %s", dash.Body.String())
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	api := newTestBackend(t)
	srv, err := NewServer(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		Backend:  backend.Config{BaseURL: api.URL},
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}
