// Package prestamos serves the loan pages, the amortization schedule, and
// the loan simulator.
package prestamos

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

// Gateway is the backend collection of loans.
type Gateway = crud.Gateway[domain.Prestamo]

// Option configures a prestamos module.
type Option func(*Module)

// WithGateway sets the loans gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithEmpleados sets the employee source for the empleado select.
func WithEmpleados(l crud.Lister[domain.Empleado]) Option {
	return func(m *Module) { m.empleados = l }
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

// Module provides the loan routes.
type Module struct {
	gateway   Gateway
	empleados crud.Lister[domain.Empleado]
	base      modulehandler.Base
	audit     *auditlog.Recorder
	policy    requestmeta.SchemePolicy
}

// New returns a prestamos module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "prestamos" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the loan routes. The simulator needs no backend and keeps
// working when the gateway is missing.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, m.definition()); err != nil {
		return module.Mount{}, err
	}
	sim := simulator{Base: m.base}
	mux.HandleFunc(http.MethodGet+" "+routepath.PrestamosSimulador, sim.show)
	mux.HandleFunc(http.MethodPost+" "+routepath.PrestamosSimulador, sim.run)
	return module.Mount{Prefix: routepath.Prestamos, Handler: mux}, nil
}
