package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	module "github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRootHandler(t *testing.T, logger *zap.Logger) http.Handler {
	t.Helper()

	h, err := BuildRootHandler(Config{
		Logger: logger,
		Modules: []module.Module{
			stubModule{id: "dashboard", mount: module.Mount{Prefix: "/app/", Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("dashboard"))
			})}},
			stubModule{id: "panic", mount: module.Mount{Prefix: "/app/panic/", Handler: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic("boom")
			})}},
		},
	})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}
	return h
}

func TestRootRedirectsToDashboard(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newRootHandler(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/app/" {
		t.Fatalf("Location = %q, want %q", got, "/app/")
	}
}

func TestHealthAnswersOK(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newRootHandler(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(httpx.RequestIDHeader) == "" {
		t.Fatal("missing request id header")
	}
}

type healthStub struct {
	stubModule
	healthy bool
}

func (h healthStub) Healthy() bool { return h.healthy }

func TestHealthReportsDegradedModules(t *testing.T) {
	t.Parallel()

	h, err := BuildRootHandler(Config{Modules: []module.Module{
		healthStub{stubModule: stubModule{id: "empleados", mount: module.Mount{Prefix: "/app/empleados/", Handler: noContent()}}, healthy: true},
		healthStub{stubModule: stubModule{id: "perfil", mount: module.Mount{Prefix: "/app/perfil/", Handler: noContent()}}},
	}})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusServiceUnavailable || rr.Body.String() != "degraded: perfil" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
}

func TestStaticServesStylesheet(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newRootHandler(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Fatalf("Content-Type = %q, want text/css", got)
	}
}

func TestUnknownRootPathRendersNotFoundPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newRootHandler(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "<html") {
		t.Fatal("expected the shared error page")
	}
}

func TestAppRoutesReachModules(t *testing.T) {
	t.Parallel()

	h := newRootHandler(t, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "dashboard" {
		t.Fatalf("/app/ = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app", nil))
	if rr.Code != http.StatusMovedPermanently || rr.Header().Get("Location") != "/app/" {
		t.Fatalf("/app = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestPanicsAreRecoveredAndLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	rr := httptest.NewRecorder()
	newRootHandler(t, zap.New(core)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/panic/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("panic log entries = %d, want 1", logs.FilterMessage("panic recovered").Len())
	}
}
