// Package perfil serves the profile of the backend user behind the API
// token.
package perfil

import (
	"context"
	"net/http"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// Service reads and updates the backend user profile.
type Service interface {
	Get(ctx context.Context) (domain.Perfil, error)
	Update(ctx context.Context, perfil domain.Perfil) (domain.Perfil, error)
}

// Option configures a perfil module.
type Option func(*Module)

// WithService sets the profile service.
func WithService(s Service) Option {
	return func(m *Module) { m.service = s }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithAudit sets the audit recorder for profile updates.
func WithAudit(r *auditlog.Recorder) Option {
	return func(m *Module) { m.audit = r }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// Module provides the profile routes.
type Module struct {
	service Service
	base    modulehandler.Base
	audit   *auditlog.Recorder
	policy  requestmeta.SchemePolicy
}

// New returns a perfil module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "perfil" }

// Healthy reports whether the module has a profile service.
func (m Module) Healthy() bool { return m.service != nil }

// Mount wires the profile routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	service := m.service
	if service == nil {
		service = unavailableService{}
	}
	registerRoutes(mux, handlers{Base: m.base, service: service, audit: m.audit, policy: m.policy})
	return module.Mount{Prefix: routepath.Perfil, Handler: mux}, nil
}
