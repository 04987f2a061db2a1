package domain

import (
	"strconv"
	"strings"
)

// Voucher types.
const (
	ComprobanteIngreso = "ingreso"
	ComprobanteEgreso  = "egreso"
	ComprobanteDiario  = "diario"
)

// Voucher states.
const (
	ComprobanteBorrador      = "borrador"
	ComprobanteContabilizado = "contabilizado"
	ComprobanteAnulado       = "anulado"
)

var (
	// TiposComprobante lists the voucher types.
	TiposComprobante = []string{ComprobanteIngreso, ComprobanteEgreso, ComprobanteDiario}
	// EstadosComprobante lists the voucher states.
	EstadosComprobante = []string{ComprobanteBorrador, ComprobanteContabilizado, ComprobanteAnulado}
)

// Detalle is one debit or credit line of a voucher.
type Detalle struct {
	ID          int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Cuenta      int64   `json:"cuenta" yaml:"cuenta"`
	Descripcion string  `json:"descripcion" yaml:"descripcion"`
	Debito      Decimal `json:"debito" yaml:"debito"`
	Credito     Decimal `json:"credito" yaml:"credito"`
}

// Comprobante is an accounting voucher.
type Comprobante struct {
	ID           int64     `json:"id,omitempty" yaml:"id"`
	Numero       string    `json:"numero" yaml:"numero"`
	Tipo         string    `json:"tipo" yaml:"tipo"`
	Fecha        Date      `json:"fecha" yaml:"fecha"`
	Tercero      string    `json:"tercero" yaml:"tercero"`
	Descripcion  string    `json:"descripcion" yaml:"descripcion"`
	Estado       string    `json:"estado" yaml:"estado"`
	Detalles     []Detalle `json:"detalles" yaml:"detalles"`
	TotalDebito  Decimal   `json:"total_debito" yaml:"total_debito"`
	TotalCredito Decimal   `json:"total_credito" yaml:"total_credito"`
	Soporte      string    `json:"soporte,omitempty" yaml:"soporte,omitempty"`
}

// Normalize trims text, drops blank lines, applies the draft default, and
// recomputes totals.
func (c *Comprobante) Normalize() {
	c.Numero = strings.TrimSpace(c.Numero)
	c.Tipo = strings.ToLower(strings.TrimSpace(c.Tipo))
	c.Tercero = strings.TrimSpace(c.Tercero)
	c.Descripcion = strings.TrimSpace(c.Descripcion)
	c.Estado = strings.ToLower(strings.TrimSpace(c.Estado))
	if c.Estado == "" {
		c.Estado = ComprobanteBorrador
	}
	lines := c.Detalles[:0]
	for _, line := range c.Detalles {
		line.Descripcion = strings.TrimSpace(line.Descripcion)
		if line.Cuenta == 0 && line.Descripcion == "" && line.Debito == 0 && line.Credito == 0 {
			continue
		}
		lines = append(lines, line)
	}
	c.Detalles = lines
	c.ComputeTotals()
}

// Totals sums debits and credits across the lines.
func (c Comprobante) Totals() (debito, credito Decimal) {
	var debitCents, creditCents int64
	for _, line := range c.Detalles {
		debitCents += line.Debito.Cents()
		creditCents += line.Credito.Cents()
	}
	return Decimal(float64(debitCents) / 100), Decimal(float64(creditCents) / 100)
}

// ComputeTotals stores the line totals on the voucher.
func (c *Comprobante) ComputeTotals() {
	c.TotalDebito, c.TotalCredito = c.Totals()
}

// Balanced reports whether debits equal credits to the cent.
func (c Comprobante) Balanced() bool {
	debito, credito := c.Totals()
	return debito.Cents() == credito.Cents()
}

// Validate checks the header, every line, and the balance.
func (c Comprobante) Validate() error {
	problems := Problems{}
	problems.Required("numero", c.Numero)
	problems.Choice("tipo", c.Tipo, TiposComprobante)
	if c.Fecha.IsZero() {
		problems.Add("fecha", KeyRequired)
	}
	problems.Choice("estado", c.Estado, EstadosComprobante)
	if len(c.Detalles) < 2 {
		problems.Add("detalles", "comprobantes.validation.min_lines")
	}
	for idx, line := range c.Detalles {
		field := "detalles." + strconv.Itoa(idx)
		if line.Cuenta <= 0 {
			problems.Add(field+".cuenta", KeyRequired)
		}
		if line.Debito < 0 || line.Credito < 0 {
			problems.Add(field, KeyNonNegative)
			continue
		}
		if (line.Debito.Cents() == 0) == (line.Credito.Cents() == 0) {
			problems.Add(field, "comprobantes.validation.one_side")
		}
	}
	if len(c.Detalles) >= 2 && !c.Balanced() {
		problems.Add("detalles", "comprobantes.validation.unbalanced")
	}
	return problems.Err()
}
