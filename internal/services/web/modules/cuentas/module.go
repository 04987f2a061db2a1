// Package cuentas serves the chart of accounts pages.
package cuentas

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// Gateway is the backend collection of ledger accounts.
type Gateway = crud.Gateway[domain.Cuenta]

// Option configures a cuentas module.
type Option func(*Module)

// WithGateway sets the accounts gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithAudit sets the audit recorder for mutations.
func WithAudit(r *auditlog.Recorder) Option {
	return func(m *Module) { m.audit = r }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// Module provides the chart of accounts routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
	audit   *auditlog.Recorder
	policy  requestmeta.SchemePolicy
}

// New returns a cuentas module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "cuentas" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the account routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, definition(m.gateway)); err != nil {
		return module.Mount{}, err
	}
	return module.Mount{Prefix: routepath.Cuentas, Handler: mux}, nil
}
