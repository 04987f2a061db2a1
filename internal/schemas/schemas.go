// Package schemas declares the list pipelines (search, filter, order_by, and
// page sizes) of every backend collection. The web modules, the nominactl
// CLI, and the MCP tools share them so a filter means the same everywhere.
package schemas

import (
	"time"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
)

// Cargos lists job positions.
var Cargos = listing.Schema[domain.Cargo]{
	Fields: []listing.Field[domain.Cargo]{
		listing.IntField("id", func(c domain.Cargo) int64 { return c.ID }),
		listing.StringField("nombre", true, func(c domain.Cargo) string { return c.Nombre }),
		listing.StringField("descripcion", true, func(c domain.Cargo) string { return c.Descripcion }),
		listing.IntField("salario_base", func(c domain.Cargo) int64 { return c.SalarioBase.Pesos() }),
		listing.BoolField("activo", func(c domain.Cargo) bool { return c.Activo }),
	},
	DefaultOrder: "nombre",
}

// Comprobantes lists accounting vouchers.
var Comprobantes = listing.Schema[domain.Comprobante]{
	Fields: []listing.Field[domain.Comprobante]{
		listing.IntField("id", func(c domain.Comprobante) int64 { return c.ID }),
		listing.StringField("numero", true, func(c domain.Comprobante) string { return c.Numero }),
		listing.StringField("tipo", false, func(c domain.Comprobante) string { return c.Tipo }),
		listing.TimeField("fecha", func(c domain.Comprobante) time.Time { return c.Fecha.Time }),
		listing.StringField("tercero", true, func(c domain.Comprobante) string { return c.Tercero }),
		listing.StringField("descripcion", true, func(c domain.Comprobante) string { return c.Descripcion }),
		listing.StringField("estado", false, func(c domain.Comprobante) string { return c.Estado }),
		listing.FloatField("total_debito", func(c domain.Comprobante) float64 { return c.TotalDebito.Float() }),
		listing.FloatField("total_credito", func(c domain.Comprobante) float64 { return c.TotalCredito.Float() }),
	},
	DefaultOrder: "fecha desc, numero desc",
}

// Contratos lists employment contracts.
var Contratos = listing.Schema[domain.Contrato]{
	Fields: []listing.Field[domain.Contrato]{
		listing.IntField("id", func(c domain.Contrato) int64 { return c.ID }),
		listing.IntField("empleado", func(c domain.Contrato) int64 { return c.Empleado }),
		listing.IntField("cargo", func(c domain.Contrato) int64 { return domain.ID(c.Cargo) }),
		listing.StringField("tipo_contrato", true, func(c domain.Contrato) string { return c.TipoContrato }),
		listing.StringField("estado", true, func(c domain.Contrato) string { return c.Estado }),
		listing.IntField("salario", func(c domain.Contrato) int64 { return c.Salario.Pesos() }),
		listing.TimeField("fecha_inicio", func(c domain.Contrato) time.Time { return c.FechaInicio.Time }),
		listing.TimeField("fecha_fin", func(c domain.Contrato) time.Time { return c.FechaFin.Time }),
	},
	DefaultOrder: "fecha_inicio desc",
}

// Cuentas lists ledger accounts.
var Cuentas = listing.Schema[domain.Cuenta]{
	Fields: []listing.Field[domain.Cuenta]{
		listing.IntField("id", func(c domain.Cuenta) int64 { return c.ID }),
		listing.StringField("codigo", true, func(c domain.Cuenta) string { return c.Codigo }),
		listing.StringField("nombre", true, func(c domain.Cuenta) string { return c.Nombre }),
		listing.StringField("naturaleza", false, func(c domain.Cuenta) string { return c.Naturaleza }),
		listing.IntField("nivel", func(c domain.Cuenta) int64 { return int64(c.Nivel) }),
		listing.BoolField("activa", func(c domain.Cuenta) bool { return c.Activa }),
	},
	DefaultOrder: "codigo",
}

// Empleados lists employees.
var Empleados = listing.Schema[domain.Empleado]{
	Fields: []listing.Field[domain.Empleado]{
		listing.IntField("id", func(e domain.Empleado) int64 { return e.ID }),
		listing.StringField("tipo_documento", false, func(e domain.Empleado) string { return e.TipoDocumento }),
		listing.StringField("documento", true, func(e domain.Empleado) string { return e.Documento }),
		listing.StringField("nombres", true, func(e domain.Empleado) string { return e.Nombres }),
		listing.StringField("apellidos", true, func(e domain.Empleado) string { return e.Apellidos }),
		listing.StringField("email", true, func(e domain.Empleado) string { return e.Email }),
		listing.StringField("estado", false, func(e domain.Empleado) string { return e.Estado }),
		listing.IntField("cargo", func(e domain.Empleado) int64 { return domain.ID(e.Cargo) }),
		listing.IntField("municipio", func(e domain.Empleado) int64 { return domain.ID(e.Municipio) }),
		listing.TimeField("fecha_ingreso", func(e domain.Empleado) time.Time { return e.FechaIngreso.Time }),
		listing.TimeField("fecha_nacimiento", func(e domain.Empleado) time.Time { return e.FechaNacimiento.Time }),
	},
	DefaultOrder: "apellidos, nombres",
}

// FlujoCaja lists cash-flow entries.
var FlujoCaja = listing.Schema[domain.MovimientoCaja]{
	Fields: []listing.Field[domain.MovimientoCaja]{
		listing.IntField("id", func(m domain.MovimientoCaja) int64 { return m.ID }),
		listing.TimeField("fecha", func(m domain.MovimientoCaja) time.Time { return m.Fecha.Time }),
		listing.StringField("tipo", false, func(m domain.MovimientoCaja) string { return m.Tipo }),
		listing.StringField("concepto", true, func(m domain.MovimientoCaja) string { return m.Concepto }),
		listing.StringField("categoria", true, func(m domain.MovimientoCaja) string { return m.Categoria }),
		listing.StringField("observaciones", true, func(m domain.MovimientoCaja) string { return m.Observaciones }),
		listing.FloatField("valor", func(m domain.MovimientoCaja) float64 { return m.Valor.Float() }),
		listing.IntField("cuenta", func(m domain.MovimientoCaja) int64 { return domain.ID(m.Cuenta) }),
		listing.IntField("comprobante", func(m domain.MovimientoCaja) int64 { return domain.ID(m.Comprobante) }),
	},
	DefaultOrder: "fecha desc, id desc",
}

// Prestamos lists employee loans.
var Prestamos = listing.Schema[domain.Prestamo]{
	Fields: []listing.Field[domain.Prestamo]{
		listing.IntField("id", func(p domain.Prestamo) int64 { return p.ID }),
		listing.IntField("empleado", func(p domain.Prestamo) int64 { return p.Empleado }),
		listing.FloatField("monto", func(p domain.Prestamo) float64 { return p.Monto.Float() }),
		listing.FloatField("tasa_interes", func(p domain.Prestamo) float64 { return p.TasaInteres.Float() }),
		listing.IntField("plazo_meses", func(p domain.Prestamo) int64 { return int64(p.PlazoMeses) }),
		listing.FloatField("cuota_mensual", func(p domain.Prestamo) float64 { return p.CuotaMensual.Float() }),
		listing.FloatField("saldo", func(p domain.Prestamo) float64 { return p.Saldo.Float() }),
		listing.StringField("estado", false, func(p domain.Prestamo) string { return p.Estado }),
		listing.StringField("observaciones", true, func(p domain.Prestamo) string { return p.Observaciones }),
		listing.TimeField("fecha_desembolso", func(p domain.Prestamo) time.Time { return p.FechaDesembolso.Time }),
	},
	DefaultOrder: "fecha_desembolso desc, id desc",
}

// Departamentos lists departments.
var Departamentos = listing.Schema[domain.Departamento]{
	Fields: []listing.Field[domain.Departamento]{
		listing.IntField("id", func(d domain.Departamento) int64 { return d.ID }),
		listing.StringField("codigo", true, func(d domain.Departamento) string { return d.Codigo }),
		listing.StringField("nombre", true, func(d domain.Departamento) string { return d.Nombre }),
	},
	DefaultOrder: "nombre",
}

// Municipios lists municipalities.
var Municipios = listing.Schema[domain.Municipio]{
	Fields: []listing.Field[domain.Municipio]{
		listing.IntField("id", func(m domain.Municipio) int64 { return m.ID }),
		listing.StringField("codigo", true, func(m domain.Municipio) string { return m.Codigo }),
		listing.StringField("nombre", true, func(m domain.Municipio) string { return m.Nombre }),
		listing.IntField("departamento", func(m domain.Municipio) int64 { return m.Departamento }),
	},
	DefaultOrder: "nombre",
}
