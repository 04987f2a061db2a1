package domain

import "strings"

// Departamento is a Colombian first-level administrative division.
type Departamento struct {
	ID     int64  `json:"id,omitempty" yaml:"id"`
	Codigo string `json:"codigo" yaml:"codigo"`
	Nombre string `json:"nombre" yaml:"nombre"`
}

// Normalize trims text fields.
func (d *Departamento) Normalize() {
	d.Codigo = strings.TrimSpace(d.Codigo)
	d.Nombre = strings.TrimSpace(d.Nombre)
}

// Validate checks required fields.
func (d Departamento) Validate() error {
	problems := Problems{}
	problems.Required("codigo", d.Codigo)
	problems.Required("nombre", d.Nombre)
	return problems.Err()
}

// Municipio belongs to a Departamento.
type Municipio struct {
	ID           int64  `json:"id,omitempty" yaml:"id"`
	Codigo       string `json:"codigo" yaml:"codigo"`
	Nombre       string `json:"nombre" yaml:"nombre"`
	Departamento int64  `json:"departamento" yaml:"departamento"`
}

// Normalize trims text fields.
func (m *Municipio) Normalize() {
	m.Codigo = strings.TrimSpace(m.Codigo)
	m.Nombre = strings.TrimSpace(m.Nombre)
}

// Validate checks required fields and the parent reference.
func (m Municipio) Validate() error {
	problems := Problems{}
	problems.Required("codigo", m.Codigo)
	problems.Required("nombre", m.Nombre)
	if m.Departamento <= 0 {
		problems.Add("departamento", KeyRequired)
	}
	return problems.Err()
}
