package domain

import (
	"sort"
	"strings"
)

// Cash-flow directions.
const (
	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)

// TiposMovimiento lists the cash-flow directions.
var TiposMovimiento = []string{MovimientoIngreso, MovimientoEgreso}

// MovimientoCaja is one cash-flow ledger entry.
type MovimientoCaja struct {
	ID            int64   `json:"id,omitempty" yaml:"id"`
	Fecha         Date    `json:"fecha" yaml:"fecha"`
	Tipo          string  `json:"tipo" yaml:"tipo"`
	Concepto      string  `json:"concepto" yaml:"concepto"`
	Categoria     string  `json:"categoria" yaml:"categoria"`
	Valor         Decimal `json:"valor" yaml:"valor"`
	Cuenta        *int64  `json:"cuenta" yaml:"cuenta"`
	Comprobante   *int64  `json:"comprobante" yaml:"comprobante"`
	Observaciones string  `json:"observaciones" yaml:"observaciones"`
}

// Normalize trims text fields.
func (m *MovimientoCaja) Normalize() {
	m.Tipo = strings.ToLower(strings.TrimSpace(m.Tipo))
	m.Concepto = strings.TrimSpace(m.Concepto)
	m.Categoria = strings.TrimSpace(m.Categoria)
	m.Observaciones = strings.TrimSpace(m.Observaciones)
}

// Validate checks date, direction, concept, value, and account.
func (m MovimientoCaja) Validate() error {
	problems := Problems{}
	if m.Fecha.IsZero() {
		problems.Add("fecha", KeyRequired)
	}
	problems.Choice("tipo", m.Tipo, TiposMovimiento)
	problems.Required("concepto", m.Concepto)
	if m.Valor <= 0 {
		problems.Add("valor", KeyPositive)
	}
	if ID(m.Cuenta) <= 0 {
		problems.Add("cuenta", KeyRequired)
	}
	return problems.Err()
}

// Signed returns the value with egresos negative.
func (m MovimientoCaja) Signed() Decimal {
	if m.Tipo == MovimientoEgreso {
		return -m.Valor
	}
	return m.Valor
}

// ResumenMes aggregates one calendar month.
type ResumenMes struct {
	Mes      string  `json:"mes" yaml:"mes"`
	Ingresos Decimal `json:"ingresos" yaml:"ingresos"`
	Egresos  Decimal `json:"egresos" yaml:"egresos"`
	Saldo    Decimal `json:"saldo" yaml:"saldo"`
}

// ResumenCaja aggregates a set of cash-flow entries.
type ResumenCaja struct {
	Ingresos Decimal      `json:"ingresos" yaml:"ingresos"`
	Egresos  Decimal      `json:"egresos" yaml:"egresos"`
	Saldo    Decimal      `json:"saldo" yaml:"saldo"`
	Meses    []ResumenMes `json:"meses" yaml:"meses"`
}

// Resumir totals ingresos and egresos overall and per YYYY-MM, months in
// ascending order. Entries without a date are counted in the totals only.
func Resumir(items []MovimientoCaja) ResumenCaja {
	type cents struct{ in, out int64 }
	var total cents
	byMonth := map[string]*cents{}
	for _, item := range items {
		value := item.Valor.Cents()
		bucket := byMonth[item.Fecha.YearMonth()]
		if bucket == nil && !item.Fecha.IsZero() {
			bucket = &cents{}
			byMonth[item.Fecha.YearMonth()] = bucket
		}
		switch item.Tipo {
		case MovimientoIngreso:
			total.in += value
			if bucket != nil {
				bucket.in += value
			}
		case MovimientoEgreso:
			total.out += value
			if bucket != nil {
				bucket.out += value
			}
		}
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	toDecimal := func(c int64) Decimal { return Decimal(float64(c) / 100) }
	resumen := ResumenCaja{
		Ingresos: toDecimal(total.in),
		Egresos:  toDecimal(total.out),
		Saldo:    toDecimal(total.in - total.out),
		Meses:    make([]ResumenMes, 0, len(months)),
	}
	for _, month := range months {
		bucket := byMonth[month]
		resumen.Meses = append(resumen.Meses, ResumenMes{
			Mes:      month,
			Ingresos: toDecimal(bucket.in),
			Egresos:  toDecimal(bucket.out),
			Saldo:    toDecimal(bucket.in - bucket.out),
		})
	}
	return resumen
}
