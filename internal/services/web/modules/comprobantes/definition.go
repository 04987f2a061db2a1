package comprobantes

import (
	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const (
	area = "comprobantes"

	lookupCuentas = "cuentas"
)

var schema = schemas.Comprobantes

func (m Module) definition() crud.Definition[domain.Comprobante] {
	return crud.Definition[domain.Comprobante]{
		Area:     area,
		Resource: backend.ResourceComprobantes,
		Prefix:   routepath.Comprobantes,
		Gateway:  m.gateway,
		Schema:   schema,
		ID:       func(c domain.Comprobante) int64 { return c.ID },
		Label:    func(c domain.Comprobante) string { return c.Numero },
		Columns: []crud.Column[domain.Comprobante]{
			{Label: "comprobantes.field.numero", Sort: "numero", Value: func(_ webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return c.Numero
			}},
			{Label: "comprobantes.field.tipo", Sort: "tipo", Value: func(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.T(loc, "comprobantes.tipo."+c.Tipo)
			}},
			{Label: "comprobantes.field.fecha", Sort: "fecha", Value: func(_ webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.Date(c.Fecha)
			}},
			{Label: "comprobantes.field.tercero", Sort: "tercero", Value: func(_ webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.OrDash(c.Tercero)
			}},
			{Label: "comprobantes.field.total_debito", Sort: "total_debito", Class: "numeric", Value: func(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.Money(loc, c.TotalDebito)
			}},
			{Label: "comprobantes.field.total_credito", Sort: "total_credito", Class: "numeric", Value: func(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.Money(loc, c.TotalCredito)
			}},
			{Label: "comprobantes.field.estado", Sort: "estado", Value: func(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) string {
				return webtemplates.T(loc, "comprobantes.estado."+c.Estado)
			}},
		},
		Selects: []crud.Select{
			{Name: "tipo", Label: "comprobantes.field.tipo", Quote: true, Options: tipoOptions},
			{Name: "estado", Label: "comprobantes.field.estado", Quote: true, Options: estadoOptions},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupCuentas: crud.ListLookup(m.cuentas,
				func(c domain.Cuenta) int64 { return c.ID },
				domain.Cuenta.Etiqueta),
		},
		Fields:    formFields,
		Decode:    decode,
		Prepare:   prepare,
		Detail:    detail,
		FormExtra: lineEditor,
		Sections: func(loc webtemplates.Localizer, c domain.Comprobante, l crud.Lookups) []templ.Component {
			return []templ.Component{lineTable(loc, c, l)}
		},
		Uploads: []crud.Upload[domain.Comprobante]{{
			Field:   "soporte",
			Label:   "comprobantes.field.soporte",
			Policy:  filestore.PolicySoporte,
			Current: func(c domain.Comprobante) string { return c.Soporte },
		}},
	}
}

func tipoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "comprobantes.tipo", domain.TiposComprobante)
}

func estadoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "comprobantes.estado", domain.EstadosComprobante)
}

func formFields(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "comprobantes.field."+name) }
	estado := c.Estado
	if estado == "" {
		estado = domain.ComprobanteBorrador
	}
	return []webtemplates.FormField{
		{Name: "numero", Label: label("numero"), Value: c.Numero, Required: true},
		{Name: "tipo", Label: label("tipo"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(tipoOptions(loc), c.Tipo)},
		{Name: "fecha", Label: label("fecha"), Kind: webtemplates.FieldDate, Value: c.Fecha.String(), Required: true},
		{Name: "tercero", Label: label("tercero"), Value: c.Tercero},
		{Name: "descripcion", Label: label("descripcion"), Kind: webtemplates.FieldTextarea, Value: c.Descripcion},
		{Name: "estado", Label: label("estado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(estadoOptions(loc), estado)},
	}
}

func decode(form *crud.FormReader, c *domain.Comprobante) {
	c.Numero = form.String("numero")
	c.Tipo = form.String("tipo")
	c.Fecha = form.Date("fecha")
	c.Tercero = form.String("tercero")
	c.Descripcion = form.String("descripcion")
	c.Estado = form.String("estado")
	c.Detalles = decodeLines(form)
}

// prepare drops blank lines, recomputes totals, and requires a balanced
// voucher.
func prepare(c *domain.Comprobante, _ bool) error {
	c.Normalize()
	return c.Validate()
}

func detail(loc webtemplates.Localizer, c domain.Comprobante, _ crud.Lookups) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "comprobantes.field."+name) }
	return []webtemplates.DetailField{
		{Label: label("numero"), Value: c.Numero},
		{Label: label("tipo"), Value: webtemplates.T(loc, "comprobantes.tipo."+c.Tipo)},
		{Label: label("fecha"), Value: webtemplates.Date(c.Fecha)},
		{Label: label("tercero"), Value: c.Tercero},
		{Label: label("descripcion"), Value: c.Descripcion},
		{Label: label("estado"), Value: webtemplates.T(loc, "comprobantes.estado."+c.Estado)},
	}
}
