package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// VoucherLineInput is one editable voucher line as submitted.
type VoucherLineInput struct {
	Cuenta      string
	Descripcion string
	Debito      string
	Credito     string
	Error       string
	CuentaError string
}

// VoucherLinesView is the nested line editor of the voucher form.
type VoucherLinesView struct {
	Lines        []VoucherLineInput
	Cuentas      []SelectOption
	Error        string
	TotalDebito  string
	TotalCredito string
}

// VoucherLineRow is one read-only voucher line.
type VoucherLineRow struct {
	Cuenta      string
	Descripcion string
	Debito      string
	Credito     string
}

// VoucherLineField returns the form field name of one line attribute.
func VoucherLineField(idx int, name string) string {
	return "detalles." + strconv.Itoa(idx) + "." + name
}

// VoucherLinesEditor renders the debit/credit line inputs.
func VoucherLinesEditor(loc Localizer, view VoucherLinesView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<fieldset id="voucher-lines" class="lines"><legend>`)
		h.text(T(loc, "comprobantes.field.detalles"))
		h.raw("</legend>")
		if view.Error != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(view.Error)
			h.raw("</p>")
		}
		h.raw(`<table class="table"><thead><tr>`)
		for _, key := range []string{"comprobantes.linea.cuenta", "comprobantes.linea.descripcion", "comprobantes.linea.debito", "comprobantes.linea.credito"} {
			h.raw("<th>")
			h.text(T(loc, key))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for idx, line := range view.Lines {
			h.raw("<tr")
			if line.Error != "" || line.CuentaError != "" {
				h.raw(` class="has-error"`)
			}
			h.raw("><td><select")
			h.attr("name", VoucherLineField(idx, "cuenta"))
			h.attr("aria-label", T(loc, "comprobantes.linea.cuenta"))
			h.raw(">")
			writeOptions(h, T(loc, "core.form.choose"), MarkSelected(view.Cuentas, line.Cuenta))
			h.raw("</select>")
			if line.CuentaError != "" {
				h.raw(`<small class="error">`)
				h.text(line.CuentaError)
				h.raw("</small>")
			}
			h.raw(`</td><td><input type="text"`)
			h.attr("name", VoucherLineField(idx, "descripcion"))
			h.attr("value", line.Descripcion)
			h.raw(`></td><td><input type="text" inputmode="decimal"`)
			h.attr("name", VoucherLineField(idx, "debito"))
			h.attr("value", line.Debito)
			h.raw(`></td><td><input type="text" inputmode="decimal"`)
			h.attr("name", VoucherLineField(idx, "credito"))
			h.attr("value", line.Credito)
			h.raw(">")
			if line.Error != "" {
				h.raw(`<small class="error">`)
				h.text(line.Error)
				h.raw("</small>")
			}
			h.raw("</td></tr>")
		}
		h.raw("</tbody>")
		writeVoucherTotals(h, loc, view.TotalDebito, view.TotalCredito)
		h.raw("</table></fieldset>")
		return h.err
	})
}

// VoucherLinesTable renders stored voucher lines read-only.
func VoucherLinesTable(loc Localizer, rows []VoucherLineRow, totalDebito, totalCredito string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section class="lines"><h3>`)
		h.text(T(loc, "comprobantes.field.detalles"))
		h.raw(`</h3><table class="table"><thead><tr>`)
		for _, key := range []string{"comprobantes.linea.cuenta", "comprobantes.linea.descripcion", "comprobantes.linea.debito", "comprobantes.linea.credito"} {
			h.raw("<th>")
			h.text(T(loc, key))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.raw("<tr><td>")
			h.text(row.Cuenta)
			h.raw("</td><td>")
			h.text(OrDash(row.Descripcion))
			h.raw("</td><td>")
			h.text(row.Debito)
			h.raw("</td><td>")
			h.text(row.Credito)
			h.raw("</td></tr>")
		}
		h.raw("</tbody>")
		writeVoucherTotals(h, loc, totalDebito, totalCredito)
		h.raw("</table></section>")
		return h.err
	})
}

func writeVoucherTotals(h *html, loc Localizer, debito, credito string) {
	if debito == "" && credito == "" {
		return
	}
	h.raw(`<tfoot><tr><th colspan="2">`)
	h.text(T(loc, "comprobantes.linea.totales"))
	h.raw("</th><td>")
	h.text(debito)
	h.raw("</td><td>")
	h.text(credito)
	h.raw("</td></tr></tfoot>")
}
