package domain

import "strings"

// Cargo is a job position.
type Cargo struct {
	ID          int64   `json:"id,omitempty" yaml:"id"`
	Nombre      string  `json:"nombre" yaml:"nombre"`
	Descripcion string  `json:"descripcion" yaml:"descripcion"`
	SalarioBase Decimal `json:"salario_base" yaml:"salario_base"`
	Activo      bool    `json:"activo" yaml:"activo"`
}

// Normalize trims text fields.
func (c *Cargo) Normalize() {
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Descripcion = strings.TrimSpace(c.Descripcion)
}

// Validate checks the name and base salary.
func (c Cargo) Validate() error {
	problems := Problems{}
	problems.Required("nombre", c.Nombre)
	if c.SalarioBase < 0 {
		problems.Add("salario_base", KeyNonNegative)
	}
	return problems.Err()
}
