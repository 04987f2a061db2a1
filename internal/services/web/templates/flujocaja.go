package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/domain"
)

// CashSummary renders the totals and per-month breakdown of a filtered
// cash-flow set.
func CashSummary(loc Localizer, resumen domain.ResumenCaja) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="cash-summary" class="summary"><div class="cards">`)
		writeSummaryCard(h, T(loc, "flujocaja.resumen.ingresos"), Money(loc, resumen.Ingresos), "positive")
		writeSummaryCard(h, T(loc, "flujocaja.resumen.egresos"), Money(loc, resumen.Egresos), "negative")
		saldoClass := "positive"
		if resumen.Saldo < 0 {
			saldoClass = "negative"
		}
		writeSummaryCard(h, T(loc, "flujocaja.resumen.saldo"), Money(loc, resumen.Saldo), saldoClass)
		h.raw("</div>")
		if len(resumen.Meses) > 0 {
			h.raw(`<table class="table numeric"><thead><tr>`)
			for _, key := range []string{"flujocaja.resumen.mes", "flujocaja.resumen.ingresos", "flujocaja.resumen.egresos", "flujocaja.resumen.saldo"} {
				h.raw("<th>")
				h.text(T(loc, key))
				h.raw("</th>")
			}
			h.raw("</tr></thead><tbody>")
			for _, mes := range resumen.Meses {
				h.raw("<tr><td>")
				h.text(mes.Mes)
				h.raw("</td><td>")
				h.text(Money(loc, mes.Ingresos))
				h.raw("</td><td>")
				h.text(Money(loc, mes.Egresos))
				h.raw("</td><td>")
				h.text(Money(loc, mes.Saldo))
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
		}
		h.raw("</section>")
		return h.err
	})
}

func writeSummaryCard(h *html, label, value, class string) {
	h.raw("<div")
	h.attr("class", "card stat "+class)
	h.raw(`><span class="stat-value">`)
	h.text(value)
	h.raw(`</span><span class="stat-label">`)
	h.text(label)
	h.raw("</span></div>")
}
