package flujocaja

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const (
	area = "flujocaja"

	lookupCuentas      = "cuentas"
	lookupComprobantes = "comprobantes"
)

var schema = schemas.FlujoCaja

func (m Module) definition() crud.Definition[domain.MovimientoCaja] {
	return crud.Definition[domain.MovimientoCaja]{
		Area:     area,
		Resource: backend.ResourceFlujoCaja,
		Prefix:   routepath.FlujoCaja,
		Gateway:  m.gateway,
		Schema:   schema,
		ID:       func(mv domain.MovimientoCaja) int64 { return mv.ID },
		Label:    func(mv domain.MovimientoCaja) string { return mv.Concepto },
		Columns: []crud.Column[domain.MovimientoCaja]{
			{Label: "flujocaja.field.fecha", Sort: "fecha", Value: func(_ webtemplates.Localizer, mv domain.MovimientoCaja, _ crud.Lookups) string {
				return webtemplates.Date(mv.Fecha)
			}},
			{Label: "flujocaja.field.tipo", Sort: "tipo", Value: func(loc webtemplates.Localizer, mv domain.MovimientoCaja, _ crud.Lookups) string {
				return webtemplates.T(loc, "flujocaja.tipo."+mv.Tipo)
			}},
			{Label: "flujocaja.field.concepto", Sort: "concepto", Value: func(_ webtemplates.Localizer, mv domain.MovimientoCaja, _ crud.Lookups) string {
				return mv.Concepto
			}},
			{Label: "flujocaja.field.categoria", Sort: "categoria", Value: func(_ webtemplates.Localizer, mv domain.MovimientoCaja, _ crud.Lookups) string {
				return webtemplates.OrDash(mv.Categoria)
			}},
			{Label: "flujocaja.field.cuenta", Value: func(_ webtemplates.Localizer, mv domain.MovimientoCaja, l crud.Lookups) string {
				return webtemplates.OrDash(l.LabelID(lookupCuentas, domain.ID(mv.Cuenta)))
			}},
			{Label: "flujocaja.field.valor", Sort: "valor", Class: "numeric", Value: func(loc webtemplates.Localizer, mv domain.MovimientoCaja, _ crud.Lookups) string {
				return webtemplates.Money(loc, mv.Signed())
			}},
		},
		Selects: []crud.Select{
			{Name: "tipo", Label: "flujocaja.field.tipo", Quote: true, Options: tipoOptions},
			{Name: "cuenta", Label: "flujocaja.field.cuenta", Lookup: lookupCuentas},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupCuentas: crud.ListLookup(m.cuentas,
				func(c domain.Cuenta) int64 { return c.ID },
				domain.Cuenta.Etiqueta),
			lookupComprobantes: crud.ListLookup(m.comprobantes,
				func(c domain.Comprobante) int64 { return c.ID },
				func(c domain.Comprobante) string { return c.Numero }),
		},
		Fields: formFields,
		Decode: func(form *crud.FormReader, mv *domain.MovimientoCaja) {
			mv.Fecha = form.Date("fecha")
			mv.Tipo = form.String("tipo")
			mv.Concepto = form.String("concepto")
			mv.Categoria = form.String("categoria")
			mv.Valor = form.Decimal("valor")
			mv.Cuenta = form.Ref("cuenta")
			mv.Comprobante = form.Ref("comprobante")
			mv.Observaciones = form.String("observaciones")
		},
		Prepare: func(mv *domain.MovimientoCaja, _ bool) error {
			mv.Normalize()
			return mv.Validate()
		},
		Detail: detail,
		Summary: func(loc webtemplates.Localizer, items []domain.MovimientoCaja) templ.Component {
			return webtemplates.CashSummary(loc, domain.Resumir(items))
		},
	}
}

func tipoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "flujocaja.tipo", domain.TiposMovimiento)
}

func refValue(ref *int64) string {
	if id := domain.ID(ref); id > 0 {
		return strconv.FormatInt(id, 10)
	}
	return ""
}

func formFields(loc webtemplates.Localizer, mv domain.MovimientoCaja, l crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "flujocaja.field."+name) }
	return []webtemplates.FormField{
		{Name: "fecha", Label: label("fecha"), Kind: webtemplates.FieldDate, Value: mv.Fecha.String(), Required: true},
		{Name: "tipo", Label: label("tipo"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(tipoOptions(loc), mv.Tipo)},
		{Name: "concepto", Label: label("concepto"), Value: mv.Concepto, Required: true},
		{Name: "categoria", Label: label("categoria"), Value: mv.Categoria},
		{Name: "valor", Label: label("valor"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(mv.Valor), Required: true},
		{Name: "cuenta", Label: label("cuenta"), Kind: webtemplates.FieldSelect, Required: true,
			Options: l.Options(lookupCuentas, refValue(mv.Cuenta))},
		{Name: "comprobante", Label: label("comprobante"), Kind: webtemplates.FieldSelect,
			Options: l.Options(lookupComprobantes, refValue(mv.Comprobante))},
		{Name: "observaciones", Label: label("observaciones"), Kind: webtemplates.FieldTextarea, Value: mv.Observaciones},
	}
}

func detail(loc webtemplates.Localizer, mv domain.MovimientoCaja, l crud.Lookups) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "flujocaja.field."+name) }
	fields := []webtemplates.DetailField{
		{Label: label("fecha"), Value: webtemplates.Date(mv.Fecha)},
		{Label: label("tipo"), Value: webtemplates.T(loc, "flujocaja.tipo."+mv.Tipo)},
		{Label: label("concepto"), Value: mv.Concepto},
		{Label: label("categoria"), Value: mv.Categoria},
		{Label: label("valor"), Value: webtemplates.Money(loc, mv.Valor)},
		{Label: label("cuenta"), Value: l.LabelID(lookupCuentas, domain.ID(mv.Cuenta))},
	}
	comprobante := webtemplates.DetailField{Label: label("comprobante"), Value: l.LabelID(lookupComprobantes, domain.ID(mv.Comprobante))}
	if id := domain.ID(mv.Comprobante); id > 0 {
		comprobante.URL = routepath.Item(routepath.Comprobantes, id)
	}
	fields = append(fields, comprobante, webtemplates.DetailField{Label: label("observaciones"), Value: mv.Observaciones})
	return fields
}
