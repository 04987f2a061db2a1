package domain

import (
	"math"
	"strings"
)

// Loan states.
const (
	PrestamoPendiente = "pendiente"
	PrestamoAprobado  = "aprobado"
	PrestamoPagado    = "pagado"
	PrestamoRechazado = "rechazado"
)

// Loan limits.
const (
	PlazoMaximoMeses  = 120
	TasaMaximaMensual = 10
)

// EstadosPrestamo lists the loan states.
var EstadosPrestamo = []string{PrestamoPendiente, PrestamoAprobado, PrestamoPagado, PrestamoRechazado}

// Prestamo is an employee loan repaid in fixed monthly installments.
type Prestamo struct {
	ID              int64   `json:"id,omitempty" yaml:"id"`
	Empleado        int64   `json:"empleado" yaml:"empleado"`
	Monto           Decimal `json:"monto" yaml:"monto"`
	TasaInteres     Decimal `json:"tasa_interes" yaml:"tasa_interes"`
	PlazoMeses      int     `json:"plazo_meses" yaml:"plazo_meses"`
	FechaDesembolso Date    `json:"fecha_desembolso" yaml:"fecha_desembolso"`
	CuotaMensual    Decimal `json:"cuota_mensual" yaml:"cuota_mensual"`
	Saldo           Decimal `json:"saldo" yaml:"saldo"`
	Estado          string  `json:"estado" yaml:"estado"`
	Observaciones   string  `json:"observaciones" yaml:"observaciones"`
}

// Normalize trims text and applies the pending default.
func (p *Prestamo) Normalize() {
	p.Estado = strings.ToLower(strings.TrimSpace(p.Estado))
	if p.Estado == "" {
		p.Estado = PrestamoPendiente
	}
	p.Observaciones = strings.TrimSpace(p.Observaciones)
}

// Validate checks amount, rate, term, and state.
func (p Prestamo) Validate() error {
	problems := Problems{}
	if p.Empleado <= 0 {
		problems.Add("empleado", KeyRequired)
	}
	validateLoanTerms(problems, p.Monto, p.TasaInteres, p.PlazoMeses)
	problems.Choice("estado", p.Estado, EstadosPrestamo)
	return problems.Err()
}

// PrepareNew computes the installment and starts the balance at the full
// amount. Call it before creating a loan.
func (p *Prestamo) PrepareNew() {
	p.CuotaMensual = Decimal(CuotaFija(p.Monto.Float(), p.TasaInteres.Float(), p.PlazoMeses))
	p.Saldo = p.Monto
}

// Recalculate refreshes the installment after the terms change. The balance
// only resets while the loan has not been approved.
func (p *Prestamo) Recalculate() {
	p.CuotaMensual = Decimal(CuotaFija(p.Monto.Float(), p.TasaInteres.Float(), p.PlazoMeses))
	if p.Estado == PrestamoPendiente {
		p.Saldo = p.Monto
	}
}

// Tabla returns the amortization schedule for the loan terms.
func (p Prestamo) Tabla() []Cuota {
	return Amortizacion(p.Monto.Float(), p.TasaInteres.Float(), p.PlazoMeses)
}

func validateLoanTerms(problems Problems, monto, tasa Decimal, plazo int) {
	if monto <= 0 {
		problems.Add("monto", KeyPositive)
	}
	if tasa < 0 || tasa > TasaMaximaMensual {
		problems.Add("tasa_interes", KeyOutOfRange)
	}
	if plazo < 1 || plazo > PlazoMaximoMeses {
		problems.Add("plazo_meses", KeyOutOfRange)
	}
}

// Cuota is one row of an amortization schedule.
type Cuota struct {
	Numero  int     `json:"numero" yaml:"numero"`
	Cuota   float64 `json:"cuota" yaml:"cuota"`
	Interes float64 `json:"interes" yaml:"interes"`
	Abono   float64 `json:"abono" yaml:"abono"`
	Saldo   float64 `json:"saldo" yaml:"saldo"`
}

// CuotaFija returns the fixed monthly installment for a loan of monto at a
// monthly tasaPct percent rate over plazo months, rounded to cents. A zero
// rate spreads the amount evenly.
func CuotaFija(monto, tasaPct float64, plazo int) float64 {
	if plazo <= 0 || monto <= 0 {
		return 0
	}
	rate := tasaPct / 100
	if rate == 0 {
		return Round2(monto / float64(plazo))
	}
	return Round2(monto * rate / (1 - math.Pow(1+rate, -float64(plazo))))
}

// Amortizacion builds the month-by-month schedule. The last installment
// absorbs rounding so the balance closes at zero.
func Amortizacion(monto, tasaPct float64, plazo int) []Cuota {
	cuota := CuotaFija(monto, tasaPct, plazo)
	if cuota == 0 {
		return nil
	}
	rate := tasaPct / 100
	saldo := Round2(monto)
	rows := make([]Cuota, 0, plazo)
	for n := 1; n <= plazo; n++ {
		interes := Round2(saldo * rate)
		abono := Round2(cuota - interes)
		pago := cuota
		if n == plazo || abono > saldo {
			abono = saldo
			pago = Round2(abono + interes)
		}
		saldo = Round2(saldo - abono)
		rows = append(rows, Cuota{Numero: n, Cuota: pago, Interes: interes, Abono: abono, Saldo: saldo})
	}
	return rows
}

// Simulacion summarizes a prospective loan.
type Simulacion struct {
	Monto        float64 `json:"monto" yaml:"monto"`
	TasaInteres  float64 `json:"tasa_interes" yaml:"tasa_interes"`
	PlazoMeses   int     `json:"plazo_meses" yaml:"plazo_meses"`
	CuotaMensual float64 `json:"cuota_mensual" yaml:"cuota_mensual"`
	TotalPagado  float64 `json:"total_pagado" yaml:"total_pagado"`
	TotalInteres float64 `json:"total_interes" yaml:"total_interes"`
	Tabla        []Cuota `json:"tabla" yaml:"tabla"`
}

// Simular validates loan terms and returns the full schedule.
func Simular(monto, tasaPct float64, plazo int) (Simulacion, error) {
	problems := Problems{}
	validateLoanTerms(problems, Decimal(monto), Decimal(tasaPct), plazo)
	if err := problems.Err(); err != nil {
		return Simulacion{}, err
	}
	tabla := Amortizacion(monto, tasaPct, plazo)
	sim := Simulacion{
		Monto:        Round2(monto),
		TasaInteres:  tasaPct,
		PlazoMeses:   plazo,
		CuotaMensual: CuotaFija(monto, tasaPct, plazo),
		Tabla:        tabla,
	}
	for _, row := range tabla {
		sim.TotalPagado += row.Cuota
		sim.TotalInteres += row.Interes
	}
	sim.TotalPagado = Round2(sim.TotalPagado)
	sim.TotalInteres = Round2(sim.TotalInteres)
	return sim, nil
}
