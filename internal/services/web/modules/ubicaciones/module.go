// Package ubicaciones serves the departamento and municipio catalogs and the
// dependent municipio options used by address forms.
package ubicaciones

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

// DepartamentoGateway is the backend collection of departamentos.
type DepartamentoGateway = crud.Gateway[domain.Departamento]

// MunicipioGateway is the backend collection of municipios.
type MunicipioGateway = crud.Gateway[domain.Municipio]

// Option configures an ubicaciones module.
type Option func(*Module)

// WithDepartamentos sets the departamentos gateway.
func WithDepartamentos(g DepartamentoGateway) Option {
	return func(m *Module) { m.departamentos = g }
}

// WithMunicipios sets the municipios gateway.
func WithMunicipios(g MunicipioGateway) Option {
	return func(m *Module) { m.municipios = g }
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

// Module provides the location catalog routes.
type Module struct {
	departamentos DepartamentoGateway
	municipios    MunicipioGateway
	base          modulehandler.Base
	audit         *auditlog.Recorder
	policy        requestmeta.SchemePolicy
}

// New returns an ubicaciones module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "ubicaciones" }

// Healthy reports whether both catalogs have operational gateways.
func (m Module) Healthy() bool {
	return crud.Healthy(m.departamentos) && crud.Healthy(m.municipios)
}

// Mount wires both catalogs under one prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, departamentoDefinition(m.departamentos)); err != nil {
		return module.Mount{}, err
	}
	if err := crud.Register(mux, deps, municipioDefinition(m.municipios, m.departamentos)); err != nil {
		return module.Mount{}, err
	}
	registerRoutes(mux, handlers{Base: m.base, municipios: m.municipios})
	return module.Mount{Prefix: routepath.Ubicaciones, Handler: mux}, nil
}
