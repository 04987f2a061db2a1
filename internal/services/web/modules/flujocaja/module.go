// Package flujocaja serves the cash-flow ledger with its income, expense,
// and monthly balance summary.
package flujocaja

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

// Gateway is the backend collection of cash-flow entries.
type Gateway = crud.Gateway[domain.MovimientoCaja]

// Option configures a flujocaja module.
type Option func(*Module)

// WithGateway sets the cash-flow gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithCuentas sets the ledger account source.
func WithCuentas(l crud.Lister[domain.Cuenta]) Option {
	return func(m *Module) { m.cuentas = l }
}

// WithComprobantes sets the voucher source for the optional voucher link.
func WithComprobantes(l crud.Lister[domain.Comprobante]) Option {
	return func(m *Module) { m.comprobantes = l }
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

// Module provides the cash-flow routes.
type Module struct {
	gateway      Gateway
	cuentas      crud.Lister[domain.Cuenta]
	comprobantes crud.Lister[domain.Comprobante]
	base         modulehandler.Base
	audit        *auditlog.Recorder
	policy       requestmeta.SchemePolicy
}

// New returns a flujocaja module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "flujocaja" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool { return crud.Healthy(m.gateway) }

// Mount wires the cash-flow routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	deps := crud.Deps{Base: m.base, Audit: m.audit, SchemePolicy: m.policy}
	if err := crud.Register(mux, deps, m.definition()); err != nil {
		return module.Mount{}, err
	}
	return module.Mount{Prefix: routepath.FlujoCaja, Handler: mux}, nil
}
