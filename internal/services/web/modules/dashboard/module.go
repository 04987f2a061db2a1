// Package dashboard serves the landing page: headline counters from the
// backend and the most recent audit entries.
package dashboard

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// Option configures a dashboard module.
type Option func(*Module)

// WithEmpleados sets the employee source for the active-employee counter.
func WithEmpleados(l crud.Lister[domain.Empleado]) Option {
	return func(m *Module) { m.sources.empleados = l }
}

// WithContratos sets the contract source for the current-contract counter.
func WithContratos(l crud.Lister[domain.Contrato]) Option {
	return func(m *Module) { m.sources.contratos = l }
}

// WithPrestamos sets the loan source for the pending-loan counter.
func WithPrestamos(l crud.Lister[domain.Prestamo]) Option {
	return func(m *Module) { m.sources.prestamos = l }
}

// WithComprobantes sets the voucher source for the draft-voucher counter.
func WithComprobantes(l crud.Lister[domain.Comprobante]) Option {
	return func(m *Module) { m.sources.comprobantes = l }
}

// WithAudit sets the audit log shown as recent activity.
func WithAudit(r *auditlog.Recorder) Option {
	return func(m *Module) { m.audit = r }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides the dashboard routes.
type Module struct {
	sources sources
	audit   *auditlog.Recorder
	base    modulehandler.Base
}

// New returns a dashboard module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, service: newService(m.sources, m.audit)})
	return module.Mount{Prefix: routepath.Dashboard, Handler: mux}, nil
}
