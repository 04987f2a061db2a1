// Package contratos serves the contract pages and the signed document upload.
package contratos

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

// Gateway is the backend collection of contracts.
type Gateway = crud.Gateway[domain.Contrato]

// Option configures a contratos module.
type Option func(*Module)

// WithGateway sets the contracts gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithEmpleados sets the employee source for the empleado select.
func WithEmpleados(l crud.Lister[domain.Empleado]) Option {
	return func(m *Module) { m.empleados = l }
}

// WithCargos sets the position source for the cargo select.
func WithCargos(l crud.Lister[domain.Cargo]) Option {
	return func(m *Module) { m.cargos = l }
}

// WithFiles sets the document store.
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

// Module provides the contract routes.
type Module struct {
	gateway   Gateway
	empleados crud.Lister[domain.Empleado]
	cargos    crud.Lister[domain.Cargo]
	files     filestore.Store
	base      modulehandler.Base
	audit     *auditlog.Recorder
	policy    requestmeta.SchemePolicy
}

// New returns a contratos module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "contratos" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the contract routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, Files: m.files, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, m.definition()); err != nil {
		return module.Mount{}, err
	}
	return module.Mount{Prefix: routepath.Contratos, Handler: mux}, nil
}
