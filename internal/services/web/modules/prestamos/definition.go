package prestamos

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
	area = "prestamos"

	lookupEmpleados = "empleados"
)

var schema = schemas.Prestamos

func (m Module) definition() crud.Definition[domain.Prestamo] {
	return crud.Definition[domain.Prestamo]{
		Area:     area,
		Resource: backend.ResourcePrestamos,
		Prefix:   routepath.Prestamos,
		Gateway:  m.gateway,
		Schema:   schema,
		ID:       func(p domain.Prestamo) int64 { return p.ID },
		Label:    func(p domain.Prestamo) string { return "#" + strconv.FormatInt(p.ID, 10) },
		Columns: []crud.Column[domain.Prestamo]{
			{Label: "prestamos.field.empleado", Value: func(_ webtemplates.Localizer, p domain.Prestamo, l crud.Lookups) string {
				return webtemplates.OrDash(l.LabelID(lookupEmpleados, p.Empleado))
			}},
			{Label: "prestamos.field.monto", Sort: "monto", Class: "numeric", Value: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) string {
				return webtemplates.Money(loc, p.Monto)
			}},
			{Label: "prestamos.field.plazo_meses", Sort: "plazo_meses", Class: "numeric", Value: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) string {
				return webtemplates.Number(loc, p.PlazoMeses)
			}},
			{Label: "prestamos.field.cuota_mensual", Sort: "cuota_mensual", Class: "numeric", Value: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) string {
				return webtemplates.Money(loc, p.CuotaMensual)
			}},
			{Label: "prestamos.field.saldo", Sort: "saldo", Class: "numeric", Value: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) string {
				return webtemplates.Money(loc, p.Saldo)
			}},
			{Label: "prestamos.field.estado", Sort: "estado", Value: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) string {
				return webtemplates.T(loc, "prestamos.estado."+p.Estado)
			}},
		},
		Selects: []crud.Select{
			{Name: "empleado", Label: "prestamos.field.empleado", Lookup: lookupEmpleados},
			{Name: "estado", Label: "prestamos.field.estado", Quote: true, Options: estadoOptions},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupEmpleados: crud.ListLookup(m.empleados,
				func(e domain.Empleado) int64 { return e.ID },
				domain.Empleado.NombreCompleto),
		},
		Fields:  formFields,
		Decode:  decode,
		Prepare: prepare,
		Detail:  detail,
		Sections: func(loc webtemplates.Localizer, p domain.Prestamo, _ crud.Lookups) []templ.Component {
			return []templ.Component{webtemplates.AmortizationTable(loc, p.Tabla())}
		},
	}
}

func estadoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "prestamos.estado", domain.EstadosPrestamo)
}

func formFields(loc webtemplates.Localizer, p domain.Prestamo, l crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "prestamos.field."+name) }
	estado, plazo, empleado := p.Estado, "", ""
	if estado == "" {
		estado = domain.PrestamoPendiente
	}
	if p.PlazoMeses > 0 {
		plazo = strconv.Itoa(p.PlazoMeses)
	}
	if p.Empleado > 0 {
		empleado = strconv.FormatInt(p.Empleado, 10)
	}
	return []webtemplates.FormField{
		{Name: "empleado", Label: label("empleado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: l.Options(lookupEmpleados, empleado)},
		{Name: "monto", Label: label("monto"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(p.Monto), Required: true},
		{Name: "tasa_interes", Label: label("tasa_interes"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(p.TasaInteres),
			Hint: webtemplates.T(loc, "prestamos.hint.tasa_interes", domain.TasaMaximaMensual)},
		{Name: "plazo_meses", Label: label("plazo_meses"), Kind: webtemplates.FieldNumber, Value: plazo, Required: true,
			Hint: webtemplates.T(loc, "prestamos.hint.plazo_meses", domain.PlazoMaximoMeses)},
		{Name: "fecha_desembolso", Label: label("fecha_desembolso"), Kind: webtemplates.FieldDate, Value: p.FechaDesembolso.String()},
		{Name: "estado", Label: label("estado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(estadoOptions(loc), estado)},
		{Name: "observaciones", Label: label("observaciones"), Kind: webtemplates.FieldTextarea, Value: p.Observaciones},
	}
}

func decode(form *crud.FormReader, p *domain.Prestamo) {
	p.Empleado = form.ID("empleado")
	p.Monto = form.Decimal("monto")
	p.TasaInteres = form.Decimal("tasa_interes")
	p.PlazoMeses = form.Int("plazo_meses")
	p.FechaDesembolso = form.Date("fecha_desembolso")
	p.Estado = form.String("estado")
	p.Observaciones = form.String("observaciones")
}

// prepare derives the installment. A new loan starts with its full amount
// outstanding.
func prepare(p *domain.Prestamo, creating bool) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	if creating {
		p.PrepareNew()
	} else {
		p.Recalculate()
	}
	return nil
}

func detail(loc webtemplates.Localizer, p domain.Prestamo, l crud.Lookups) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "prestamos.field."+name) }
	return []webtemplates.DetailField{
		{Label: label("empleado"), Value: l.LabelID(lookupEmpleados, p.Empleado)},
		{Label: label("monto"), Value: webtemplates.Money(loc, p.Monto)},
		{Label: label("tasa_interes"), Value: webtemplates.Percent(loc, p.TasaInteres)},
		{Label: label("plazo_meses"), Value: webtemplates.Number(loc, p.PlazoMeses)},
		{Label: label("fecha_desembolso"), Value: webtemplates.Date(p.FechaDesembolso)},
		{Label: label("cuota_mensual"), Value: webtemplates.Money(loc, p.CuotaMensual)},
		{Label: label("saldo"), Value: webtemplates.Money(loc, p.Saldo)},
		{Label: label("estado"), Value: webtemplates.T(loc, "prestamos.estado."+p.Estado)},
		{Label: label("observaciones"), Value: p.Observaciones},
	}
}
