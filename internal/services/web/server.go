// Package web hosts the browser-facing HR, payroll, and accounting service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	platformi18n "github.com/nominaweb/nominaweb/internal/platform/i18n"
	"github.com/nominaweb/nominaweb/internal/platform/logging"
	"github.com/nominaweb/nominaweb/internal/platform/timeouts"
	webapp "github.com/nominaweb/nominaweb/internal/services/web/app"
	"github.com/nominaweb/nominaweb/internal/services/web/modules"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
	"github.com/nominaweb/nominaweb/internal/services/web/storage/sqlite"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Backend  backend.Config
	// AuditDBPath enables the SQLite audit log. Blank keeps no history.
	AuditDBPath string
	// S3 stores uploads in a bucket when S3.Bucket is set; otherwise files go
	// to the backend field endpoints.
	S3                  filestore.S3Config
	DefaultLanguage     string
	TrustForwardedProto bool
	Logger              *zap.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	audit      webstorage.AuditStore
	logger     *zap.Logger
}

// NewServer validates config, opens the audit store, and composes the
// handler.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Backend.Logger = logging.Named(logger, "backend")
	client, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	services := backend.NewServices(client)

	var audit webstorage.AuditStore = webstorage.Discard{}
	if path := strings.TrimSpace(cfg.AuditDBPath); path != "" {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open audit store: %w", err)
		}
		audit = store
	}

	files, err := newFileStore(ctx, cfg.S3, client)
	if err != nil {
		_ = audit.Close()
		return nil, err
	}

	tag, _ := platformi18n.ParseTag(cfg.DefaultLanguage)
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	webLogger := logging.Named(logger, "web")
	handler, err := webapp.BuildRootHandler(webapp.Config{
		Modules: modules.DefaultModules(modules.Dependencies{
			Services:     services,
			Files:        files,
			Audit:        auditlog.New(audit, auditlog.NewProfileActor(services.Perfil), logging.Named(logger, "audit")),
			Base:         modulehandler.NewBase(webLogger, tag),
			SchemePolicy: policy,
		}),
		SchemePolicy: policy,
		Logger:       webLogger,
	})
	if err != nil {
		_ = audit.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		audit:  audit,
		logger: logger,
	}, nil
}

func newFileStore(ctx context.Context, cfg filestore.S3Config, client *backend.Client) (filestore.Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return filestore.NewBackendStore(client), nil
	}
	store, err := filestore.NewS3Store(ctx, cfg, client)
	if err != nil {
		return nil, fmt.Errorf("init s3 file store: %w", err)
	}
	return store, nil
}

// Handler returns the composed root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return http.NotFoundHandler()
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP traffic until context cancellation or server
// stop. In-flight requests are drained with a bounded shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close releases the HTTP listener and the audit store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.audit != nil {
		if err := s.audit.Close(); err != nil {
			s.logger.Warn("close audit store", zap.Error(err))
		}
	}
}
