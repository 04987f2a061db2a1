package domain

import "strings"

// Contract types.
const (
	ContratoIndefinido          = "indefinido"
	ContratoFijo                = "fijo"
	ContratoObraLabor           = "obra_labor"
	ContratoPrestacionServicios = "prestacion_servicios"
)

// Contract states.
const (
	ContratoVigente    = "vigente"
	ContratoFinalizado = "finalizado"
	ContratoAnulado    = "anulado"
)

var (
	// TiposContrato lists the contract types.
	TiposContrato = []string{ContratoIndefinido, ContratoFijo, ContratoObraLabor, ContratoPrestacionServicios}
	// EstadosContrato lists the contract states.
	EstadosContrato = []string{ContratoVigente, ContratoFinalizado, ContratoAnulado}
)

// Contrato is an employment contract.
type Contrato struct {
	ID           int64   `json:"id,omitempty" yaml:"id"`
	Empleado     int64   `json:"empleado" yaml:"empleado"`
	Cargo        *int64  `json:"cargo" yaml:"cargo"`
	TipoContrato string  `json:"tipo_contrato" yaml:"tipo_contrato"`
	FechaInicio  Date    `json:"fecha_inicio" yaml:"fecha_inicio"`
	FechaFin     Date    `json:"fecha_fin" yaml:"fecha_fin"`
	Salario      Decimal `json:"salario" yaml:"salario"`
	Estado       string  `json:"estado" yaml:"estado"`
	Documento    string  `json:"documento,omitempty" yaml:"documento,omitempty"`
}

// Normalize lowercases enumerations and applies defaults.
func (c *Contrato) Normalize() {
	c.TipoContrato = strings.ToLower(strings.TrimSpace(c.TipoContrato))
	c.Estado = strings.ToLower(strings.TrimSpace(c.Estado))
	if c.Estado == "" {
		c.Estado = ContratoVigente
	}
}

// Validate checks references, dates, and salary.
func (c Contrato) Validate() error {
	problems := Problems{}
	if c.Empleado <= 0 {
		problems.Add("empleado", KeyRequired)
	}
	if c.TipoContrato == "" {
		problems.Add("tipo_contrato", KeyRequired)
	} else {
		problems.Choice("tipo_contrato", c.TipoContrato, TiposContrato)
	}
	if c.FechaInicio.IsZero() {
		problems.Add("fecha_inicio", KeyRequired)
	}
	switch {
	case c.TipoContrato == ContratoFijo && c.FechaFin.IsZero():
		problems.Add("fecha_fin", "contratos.validation.end_required")
	case !c.FechaFin.IsZero() && !c.FechaInicio.IsZero() && !c.FechaFin.After(c.FechaInicio):
		problems.Add("fecha_fin", KeyDateOrder)
	}
	if c.Salario <= 0 {
		problems.Add("salario", KeyPositive)
	}
	problems.Choice("estado", c.Estado, EstadosContrato)
	return problems.Err()
}
