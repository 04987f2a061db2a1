package domain

import "strings"

// Employment states.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

var (
	// TiposDocumento lists the accepted identity document types.
	TiposDocumento = []string{"CC", "CE", "TI", "PA"}
	// EstadosEmpleado lists the employment states.
	EstadosEmpleado = []string{EstadoActivo, EstadoInactivo}
)

// Empleado is an employee record.
type Empleado struct {
	ID              int64  `json:"id,omitempty" yaml:"id"`
	TipoDocumento   string `json:"tipo_documento" yaml:"tipo_documento"`
	Documento       string `json:"documento" yaml:"documento"`
	Nombres         string `json:"nombres" yaml:"nombres"`
	Apellidos       string `json:"apellidos" yaml:"apellidos"`
	Email           string `json:"email" yaml:"email"`
	Telefono        string `json:"telefono" yaml:"telefono"`
	Direccion       string `json:"direccion" yaml:"direccion"`
	FechaNacimiento Date   `json:"fecha_nacimiento" yaml:"fecha_nacimiento"`
	FechaIngreso    Date   `json:"fecha_ingreso" yaml:"fecha_ingreso"`
	Cargo           *int64 `json:"cargo" yaml:"cargo"`
	Municipio       *int64 `json:"municipio" yaml:"municipio"`
	Estado          string `json:"estado" yaml:"estado"`
	Foto            string `json:"foto,omitempty" yaml:"foto,omitempty"`
}

// NombreCompleto joins names and surnames.
func (e Empleado) NombreCompleto() string {
	return strings.TrimSpace(strings.TrimSpace(e.Nombres) + " " + strings.TrimSpace(e.Apellidos))
}

// Normalize trims text fields and applies defaults for new records.
func (e *Empleado) Normalize() {
	e.TipoDocumento = strings.ToUpper(strings.TrimSpace(e.TipoDocumento))
	if e.TipoDocumento == "" {
		e.TipoDocumento = "CC"
	}
	e.Documento = strings.TrimSpace(e.Documento)
	e.Nombres = strings.TrimSpace(e.Nombres)
	e.Apellidos = strings.TrimSpace(e.Apellidos)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Telefono = strings.TrimSpace(e.Telefono)
	e.Direccion = strings.TrimSpace(e.Direccion)
	e.Estado = strings.ToLower(strings.TrimSpace(e.Estado))
	if e.Estado == "" {
		e.Estado = EstadoActivo
	}
}

// Validate checks required fields and date consistency.
func (e Empleado) Validate() error {
	problems := Problems{}
	problems.Choice("tipo_documento", e.TipoDocumento, TiposDocumento)
	problems.Required("documento", e.Documento)
	problems.Required("nombres", e.Nombres)
	problems.Required("apellidos", e.Apellidos)
	problems.Email("email", e.Email)
	if e.FechaIngreso.IsZero() {
		problems.Add("fecha_ingreso", KeyRequired)
	}
	if !e.FechaNacimiento.IsZero() && !e.FechaIngreso.IsZero() && !e.FechaNacimiento.Before(e.FechaIngreso) {
		problems.Add("fecha_nacimiento", "empleados.validation.birth_before_hire")
	}
	problems.Choice("estado", e.Estado, EstadosEmpleado)
	return problems.Err()
}
