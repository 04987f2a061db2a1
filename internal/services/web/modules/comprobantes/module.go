// Package comprobantes serves the accounting voucher pages, including the
// nested debit/credit line editor and the supporting document upload.
package comprobantes

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// Gateway is the backend collection of vouchers.
type Gateway = crud.Gateway[domain.Comprobante]

// Option configures a comprobantes module.
type Option func(*Module)

// WithGateway sets the vouchers gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithCuentas sets the ledger account source for the line selects.
func WithCuentas(l crud.Lister[domain.Cuenta]) Option {
	return func(m *Module) { m.cuentas = l }
}

// WithFiles sets the supporting document store.
func WithFiles(s filestore.Store) Option {
	return func(m *Module) { m.files = s }
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

// Module provides the voucher routes.
type Module struct {
	gateway Gateway
	cuentas crud.Lister[domain.Cuenta]
	files   filestore.Store
	base    modulehandler.Base
	audit   *auditlog.Recorder
	policy  requestmeta.SchemePolicy
}

// New returns a comprobantes module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "comprobantes" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the voucher routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, Files: m.files, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, m.definition()); err != nil {
		return module.Mount{}, err
	}
	return module.Mount{Prefix: routepath.Comprobantes, Handler: mux}, nil
}
