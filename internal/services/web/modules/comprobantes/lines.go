package comprobantes

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const (
	linesPrefix = "detalles"
	// minEditorLines is the number of rows a fresh editor offers.
	minEditorLines = 4
)

// submittedLines collects the detalles.<n>.<attr> inputs in index order.
// Rows left completely blank are dropped so indexes match the decoded lines.
func submittedLines(values url.Values) []webtemplates.VoucherLineInput {
	seen := map[int]bool{}
	for key := range values {
		parts := strings.Split(key, ".")
		if len(parts) != 3 || parts[0] != linesPrefix {
			continue
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			continue
		}
		seen[idx] = true
	}
	indexes := make([]int, 0, len(seen))
	for idx := range seen {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	lines := make([]webtemplates.VoucherLineInput, 0, len(indexes))
	for _, idx := range indexes {
		get := func(attr string) string {
			return strings.TrimSpace(values.Get(webtemplates.VoucherLineField(idx, attr)))
		}
		line := webtemplates.VoucherLineInput{
			Cuenta:      get("cuenta"),
			Descripcion: get("descripcion"),
			Debito:      get("debito"),
			Credito:     get("credito"),
		}
		if line == (webtemplates.VoucherLineInput{}) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func lineField(idx int) string {
	return linesPrefix + "." + strconv.Itoa(idx)
}

// decodeLines parses the submitted rows. Parse failures are reported on the
// compacted row index.
func decodeLines(form *crud.FormReader) []domain.Detalle {
	inputs := submittedLines(form.Values())
	lines := make([]domain.Detalle, 0, len(inputs))
	for idx, input := range inputs {
		line := domain.Detalle{Descripcion: input.Descripcion}
		if input.Cuenta != "" {
			cuenta, err := strconv.ParseInt(input.Cuenta, 10, 64)
			if err != nil || cuenta <= 0 {
				form.Fail(webtemplates.VoucherLineField(idx, "cuenta"), domain.KeyChoice)
			}
			line.Cuenta = cuenta
		}
		var err error
		if line.Debito, err = domain.ParseDecimal(input.Debito); err != nil {
			form.Fail(lineField(idx), domain.KeyInvalidNumber)
		}
		if line.Credito, err = domain.ParseDecimal(input.Credito); err != nil {
			form.Fail(lineField(idx), domain.KeyInvalidNumber)
		}
		lines = append(lines, line)
	}
	return lines
}

// lineEditor renders the nested line inputs, keeping submitted text and
// attaching per-line errors.
func lineEditor(loc webtemplates.Localizer, c domain.Comprobante, l crud.Lookups, form *crud.FormReader, fieldErrors map[string]string) templ.Component {
	var lines []webtemplates.VoucherLineInput
	if form != nil {
		lines = submittedLines(form.Values())
	} else {
		for _, line := range c.Detalles {
			lines = append(lines, webtemplates.VoucherLineInput{
				Cuenta:      strconv.FormatInt(line.Cuenta, 10),
				Descripcion: line.Descripcion,
				Debito:      webtemplates.InputAmount(line.Debito),
				Credito:     webtemplates.InputAmount(line.Credito),
			})
		}
	}
	for idx := range lines {
		if key, ok := fieldErrors[lineField(idx)]; ok {
			lines[idx].Error = webtemplates.T(loc, key)
		}
		if key, ok := fieldErrors[webtemplates.VoucherLineField(idx, "cuenta")]; ok {
			lines[idx].CuentaError = webtemplates.T(loc, key)
		}
	}
	rows := len(lines) + 1
	if rows < minEditorLines {
		rows = minEditorLines
	}
	for len(lines) < rows {
		lines = append(lines, webtemplates.VoucherLineInput{})
	}
	view := webtemplates.VoucherLinesView{
		Lines:   lines,
		Cuentas: l[lookupCuentas],
	}
	if key, ok := fieldErrors[linesPrefix]; ok {
		view.Error = webtemplates.T(loc, key)
	}
	if len(c.Detalles) > 0 {
		debito, credito := c.Totals()
		view.TotalDebito = webtemplates.Money(loc, debito)
		view.TotalCredito = webtemplates.Money(loc, credito)
	}
	return webtemplates.VoucherLinesEditor(loc, view)
}

func lineTable(loc webtemplates.Localizer, c domain.Comprobante, l crud.Lookups) templ.Component {
	rows := make([]webtemplates.VoucherLineRow, 0, len(c.Detalles))
	for _, line := range c.Detalles {
		rows = append(rows, webtemplates.VoucherLineRow{
			Cuenta:      webtemplates.OrDash(l.LabelID(lookupCuentas, line.Cuenta)),
			Descripcion: line.Descripcion,
			Debito:      webtemplates.Money(loc, line.Debito),
			Credito:     webtemplates.Money(loc, line.Credito),
		})
	}
	debito, credito := c.Totals()
	return webtemplates.VoucherLinesTable(loc, rows, webtemplates.Money(loc, debito), webtemplates.Money(loc, credito))
}
