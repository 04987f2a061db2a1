package modules

import (
	"github.com/nominaweb/nominaweb/internal/services/web/modules/cargos"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/comprobantes"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/contratos"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/cuentas"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/dashboard"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/empleados"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/flujocaja"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/perfil"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/prestamos"
	"github.com/nominaweb/nominaweb/internal/services/web/modules/ubicaciones"
)

// DefaultModules returns every application area mounted under /app/.
func DefaultModules(deps Dependencies) []Module {
	svc := deps.Services
	return []Module{
		dashboard.New(
			dashboard.WithEmpleados(svc.Empleados),
			dashboard.WithContratos(svc.Contratos),
			dashboard.WithPrestamos(svc.Prestamos),
			dashboard.WithComprobantes(svc.Comprobantes),
			dashboard.WithAudit(deps.Audit),
			dashboard.WithBase(deps.Base),
		),
		empleados.New(
			empleados.WithGateway(svc.Empleados),
			empleados.WithCargos(svc.Cargos),
			empleados.WithDepartamentos(svc.Departamentos),
			empleados.WithMunicipios(svc.Municipios),
			empleados.WithFiles(deps.Files),
			empleados.WithBase(deps.Base),
			empleados.WithAudit(deps.Audit),
			empleados.WithSchemePolicy(deps.SchemePolicy),
		),
		cargos.New(
			cargos.WithGateway(svc.Cargos),
			cargos.WithBase(deps.Base),
			cargos.WithAudit(deps.Audit),
			cargos.WithSchemePolicy(deps.SchemePolicy),
		),
		contratos.New(
			contratos.WithGateway(svc.Contratos),
			contratos.WithEmpleados(svc.Empleados),
			contratos.WithCargos(svc.Cargos),
			contratos.WithFiles(deps.Files),
			contratos.WithBase(deps.Base),
			contratos.WithAudit(deps.Audit),
			contratos.WithSchemePolicy(deps.SchemePolicy),
		),
		prestamos.New(
			prestamos.WithGateway(svc.Prestamos),
			prestamos.WithEmpleados(svc.Empleados),
			prestamos.WithBase(deps.Base),
			prestamos.WithAudit(deps.Audit),
			prestamos.WithSchemePolicy(deps.SchemePolicy),
		),
		comprobantes.New(
			comprobantes.WithGateway(svc.Comprobantes),
			comprobantes.WithCuentas(svc.Cuentas),
			comprobantes.WithFiles(deps.Files),
			comprobantes.WithBase(deps.Base),
			comprobantes.WithAudit(deps.Audit),
			comprobantes.WithSchemePolicy(deps.SchemePolicy),
		),
		cuentas.New(
			cuentas.WithGateway(svc.Cuentas),
			cuentas.WithBase(deps.Base),
			cuentas.WithAudit(deps.Audit),
			cuentas.WithSchemePolicy(deps.SchemePolicy),
		),
		flujocaja.New(
			flujocaja.WithGateway(svc.FlujoCaja),
			flujocaja.WithCuentas(svc.Cuentas),
			flujocaja.WithComprobantes(svc.Comprobantes),
			flujocaja.WithBase(deps.Base),
			flujocaja.WithAudit(deps.Audit),
			flujocaja.WithSchemePolicy(deps.SchemePolicy),
		),
		ubicaciones.New(
			ubicaciones.WithDepartamentos(svc.Departamentos),
			ubicaciones.WithMunicipios(svc.Municipios),
			ubicaciones.WithBase(deps.Base),
			ubicaciones.WithAudit(deps.Audit),
			ubicaciones.WithSchemePolicy(deps.SchemePolicy),
		),
		perfil.New(
			perfil.WithService(svc.Perfil),
			perfil.WithBase(deps.Base),
			perfil.WithAudit(deps.Audit),
			perfil.WithSchemePolicy(deps.SchemePolicy),
		),
	}
}
