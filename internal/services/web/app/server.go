package app

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	platformi18n "github.com/nominaweb/nominaweb/internal/platform/i18n"
	module "github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/observability"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/weberror"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webstatic "github.com/nominaweb/nominaweb/internal/services/web/static"
)

// BuildRootHandler composes the root mux: health, static assets, the root
// redirect, and the application modules under /app/.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	appHandler, err := Compose(ComposeInput{
		Modules:             cfg.Modules,
		RequestSchemePolicy: cfg.SchemePolicy,
	})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteRedirect(w, r, routepath.Dashboard)
	})
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(cfg.Modules))
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.AppPrefix, appHandler)
	rootMux.Handle("/app", appHandler)
	rootMux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteAppError(w, r, http.StatusNotFound, platformi18n.DefaultTag())
	})
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// healthHandler answers "ok" when every module that reports health is wired,
// and 503 naming the degraded modules otherwise.
func healthHandler(modules []module.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var degraded []string
		for _, feature := range modules {
			if reporter, ok := feature.(module.HealthReporter); ok && !reporter.Healthy() {
				degraded = append(degraded, feature.ID())
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(degraded) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "degraded: "+strings.Join(degraded, ", "))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	}
}
