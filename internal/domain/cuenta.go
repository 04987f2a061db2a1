package domain

import "strings"

// Account natures.
const (
	NaturalezaDebito  = "debito"
	NaturalezaCredito = "credito"
)

// Naturalezas lists the account natures.
var Naturalezas = []string{NaturalezaDebito, NaturalezaCredito}

// PUC levels keyed by code length: clase, grupo, cuenta, subcuenta, auxiliar.
var nivelPorLongitud = map[int]int{1: 1, 2: 2, 4: 3, 6: 4, 8: 5}

// Cuenta is a ledger account in the Plan Único de Cuentas.
type Cuenta struct {
	ID         int64  `json:"id,omitempty" yaml:"id"`
	Codigo     string `json:"codigo" yaml:"codigo"`
	Nombre     string `json:"nombre" yaml:"nombre"`
	Naturaleza string `json:"naturaleza" yaml:"naturaleza"`
	Nivel      int    `json:"nivel" yaml:"nivel"`
	Activa     bool   `json:"activa" yaml:"activa"`
}

// Etiqueta renders "codigo - nombre" for selects.
func (c Cuenta) Etiqueta() string {
	return strings.TrimSpace(c.Codigo + " - " + c.Nombre)
}

// NivelCodigo returns the PUC level for a code, or false when the code is not
// all digits of a valid length.
func NivelCodigo(codigo string) (int, bool) {
	if codigo == "" {
		return 0, false
	}
	for _, r := range codigo {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	nivel, ok := nivelPorLongitud[len(codigo)]
	return nivel, ok
}

// Normalize trims fields and derives the level from the code.
func (c *Cuenta) Normalize() {
	c.Codigo = strings.TrimSpace(c.Codigo)
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Naturaleza = strings.ToLower(strings.TrimSpace(c.Naturaleza))
	if nivel, ok := NivelCodigo(c.Codigo); ok {
		c.Nivel = nivel
	}
}

// Validate checks the code, name, and nature.
func (c Cuenta) Validate() error {
	problems := Problems{}
	if c.Codigo == "" {
		problems.Add("codigo", KeyRequired)
	} else if _, ok := NivelCodigo(c.Codigo); !ok {
		problems.Add("codigo", "cuentas.validation.codigo")
	}
	problems.Required("nombre", c.Nombre)
	problems.Choice("naturaleza", c.Naturaleza, Naturalezas)
	return problems.Err()
}
