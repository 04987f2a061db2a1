package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/domain"
)

// AmortizationTable renders a loan schedule with a totals row.
func AmortizationTable(loc Localizer, rows []domain.Cuota) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section class="amortization"><h3>`)
		h.text(T(loc, "prestamos.tabla.title"))
		h.raw("</h3>")
		if len(rows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "prestamos.tabla.empty"))
			h.raw("</p></section>")
			return h.err
		}
		h.raw(`<table class="table numeric"><thead><tr>`)
		for _, key := range []string{"prestamos.tabla.numero", "prestamos.tabla.cuota", "prestamos.tabla.interes", "prestamos.tabla.abono", "prestamos.tabla.saldo"} {
			h.raw("<th>")
			h.text(T(loc, key))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		var cuotas, intereses, abonos float64
		for _, row := range rows {
			cuotas += row.Cuota
			intereses += row.Interes
			abonos += row.Abono
			h.raw("<tr><td>", itoa(row.Numero), "</td><td>")
			h.text(MoneyFloat(loc, row.Cuota))
			h.raw("</td><td>")
			h.text(MoneyFloat(loc, row.Interes))
			h.raw("</td><td>")
			h.text(MoneyFloat(loc, row.Abono))
			h.raw("</td><td>")
			h.text(MoneyFloat(loc, row.Saldo))
			h.raw("</td></tr>")
		}
		h.raw("</tbody><tfoot><tr><th>")
		h.text(T(loc, "prestamos.tabla.total"))
		h.raw("</th><td>")
		h.text(MoneyFloat(loc, cuotas))
		h.raw("</td><td>")
		h.text(MoneyFloat(loc, intereses))
		h.raw("</td><td>")
		h.text(MoneyFloat(loc, abonos))
		h.raw("</td><td></td></tr></tfoot></table></section>")
		return h.err
	})
}

// SimulationResult renders the headline figures of a loan simulation
// followed by its schedule.
func SimulationResult(loc Localizer, sim domain.Simulacion) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="simulation-result">`)
		h.component(ctx, DetailList([]DetailField{
			{Label: T(loc, "prestamos.field.cuota_mensual"), Value: MoneyFloat(loc, sim.CuotaMensual)},
			{Label: T(loc, "prestamos.simular.total_pagado"), Value: MoneyFloat(loc, sim.TotalPagado)},
			{Label: T(loc, "prestamos.simular.total_interes"), Value: MoneyFloat(loc, sim.TotalInteres)},
		}))
		h.component(ctx, AmortizationTable(loc, sim.Tabla))
		h.raw("</section>")
		return h.err
	})
}

// SimulatorID is the container the loan simulator swaps on submit.
const SimulatorID = "simulator"

// SimulatorView is the loan simulator form with its optional result.
type SimulatorView struct {
	Action string
	Alert  *AlertView
	Fields []FormField
	Result *domain.Simulacion
}

// Simulator renders the simulator form followed by the result, if any.
func Simulator(loc Localizer, view SimulatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<div id="`, SimulatorID, `" class="simulator">`)
		h.component(ctx, Form(loc, FormView{
			ID:          "simulator-form",
			Action:      view.Action,
			SubmitLabel: T(loc, "prestamos.simular.submit"),
			Alert:       view.Alert,
			Fields:      view.Fields,
			Target:      SimulatorID,
			Swap:        "outerHTML",
		}))
		if view.Result != nil {
			h.component(ctx, SimulationResult(loc, *view.Result))
		}
		h.raw("</div>")
		return h.err
	})
}
