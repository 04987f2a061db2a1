// Package empleados serves the employee pages and the photo upload.
package empleados

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

// Gateway is the backend collection of employees.
type Gateway = crud.Gateway[domain.Empleado]

// Option configures an empleados module.
type Option func(*Module)

// WithGateway sets the employees gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithCargos sets the position source for the cargo select.
func WithCargos(l crud.Lister[domain.Cargo]) Option {
	return func(m *Module) { m.cargos = l }
}

// WithMunicipios sets the municipality source for the municipio select.
func WithMunicipios(l crud.Lister[domain.Municipio]) Option {
	return func(m *Module) { m.municipios = l }
}

// WithDepartamentos sets the source of the departamento helper select.
func WithDepartamentos(l crud.Lister[domain.Departamento]) Option {
	return func(m *Module) { m.departamentos = l }
}

// WithFiles sets the photo store.
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

// Module provides the employee routes.
type Module struct {
	gateway       Gateway
	cargos        crud.Lister[domain.Cargo]
	municipios    crud.Lister[domain.Municipio]
	departamentos crud.Lister[domain.Departamento]
	files         filestore.Store
	base          modulehandler.Base
	audit         *auditlog.Recorder
	policy        requestmeta.SchemePolicy
}

// New returns an empleados module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "empleados" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the employee routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, Files: m.files, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, m.definition()); err != nil {
		return module.Mount{}, err
	}
	return module.Mount{Prefix: routepath.Empleados, Handler: mux}, nil
}
