package contratos

import (
	"strconv"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const (
	area = "contratos"

	lookupEmpleados = "empleados"
	lookupCargos    = "cargos"
)

var schema = schemas.Contratos

func (m Module) definition() crud.Definition[domain.Contrato] {
	return crud.Definition[domain.Contrato]{
		Area:     area,
		Resource: backend.ResourceContratos,
		Prefix:   routepath.Contratos,
		Gateway:  m.gateway,
		Schema:   schema,
		ID:       func(c domain.Contrato) int64 { return c.ID },
		Label:    func(c domain.Contrato) string { return "#" + strconv.FormatInt(c.ID, 10) },
		Columns: []crud.Column[domain.Contrato]{
			{Label: "contratos.field.empleado", Value: func(_ webtemplates.Localizer, c domain.Contrato, l crud.Lookups) string {
				return webtemplates.OrDash(l.LabelID(lookupEmpleados, c.Empleado))
			}},
			{Label: "contratos.field.tipo_contrato", Sort: "tipo_contrato", Value: func(loc webtemplates.Localizer, c domain.Contrato, _ crud.Lookups) string {
				return webtemplates.T(loc, "contratos.tipo."+c.TipoContrato)
			}},
			{Label: "contratos.field.fecha_inicio", Sort: "fecha_inicio", Value: func(_ webtemplates.Localizer, c domain.Contrato, _ crud.Lookups) string {
				return webtemplates.Date(c.FechaInicio)
			}},
			{Label: "contratos.field.fecha_fin", Sort: "fecha_fin", Value: func(_ webtemplates.Localizer, c domain.Contrato, _ crud.Lookups) string {
				return webtemplates.Date(c.FechaFin)
			}},
			{Label: "contratos.field.salario", Sort: "salario", Class: "numeric", Value: func(loc webtemplates.Localizer, c domain.Contrato, _ crud.Lookups) string {
				return webtemplates.Money(loc, c.Salario)
			}},
			{Label: "contratos.field.estado", Sort: "estado", Value: func(loc webtemplates.Localizer, c domain.Contrato, _ crud.Lookups) string {
				return webtemplates.T(loc, "contratos.estado."+c.Estado)
			}},
		},
		Selects: []crud.Select{
			{Name: "empleado", Label: "contratos.field.empleado", Lookup: lookupEmpleados},
			{Name: "tipo_contrato", Label: "contratos.field.tipo_contrato", Quote: true, Options: tipoOptions},
			{Name: "estado", Label: "contratos.field.estado", Quote: true, Options: estadoOptions},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupEmpleados: crud.ListLookup(m.empleados,
				func(e domain.Empleado) int64 { return e.ID },
				domain.Empleado.NombreCompleto),
			lookupCargos: crud.ListLookup(m.cargos,
				func(c domain.Cargo) int64 { return c.ID },
				func(c domain.Cargo) string { return c.Nombre }),
		},
		Fields:  formFields,
		Decode:  decode,
		Prepare: prepare,
		Detail:  detail,
		Uploads: []crud.Upload[domain.Contrato]{{
			Field:   "documento",
			Label:   "contratos.field.documento",
			Policy:  filestore.PolicyPDF,
			Current: func(c domain.Contrato) string { return c.Documento },
		}},
	}
}

func tipoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "contratos.tipo", domain.TiposContrato)
}

func estadoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "contratos.estado", domain.EstadosContrato)
}

func idValue(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func formFields(loc webtemplates.Localizer, c domain.Contrato, l crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "contratos.field."+name) }
	estado := c.Estado
	if estado == "" {
		estado = domain.ContratoVigente
	}
	return []webtemplates.FormField{
		{Name: "empleado", Label: label("empleado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: l.Options(lookupEmpleados, idValue(c.Empleado))},
		{Name: "cargo", Label: label("cargo"), Kind: webtemplates.FieldSelect,
			Options: l.Options(lookupCargos, idValue(domain.ID(c.Cargo)))},
		{Name: "tipo_contrato", Label: label("tipo_contrato"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(tipoOptions(loc), c.TipoContrato)},
		{Name: "fecha_inicio", Label: label("fecha_inicio"), Kind: webtemplates.FieldDate, Value: c.FechaInicio.String(), Required: true},
		{Name: "fecha_fin", Label: label("fecha_fin"), Kind: webtemplates.FieldDate, Value: c.FechaFin.String(),
			Hint: webtemplates.T(loc, "contratos.hint.fecha_fin")},
		{Name: "salario", Label: label("salario"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(c.Salario), Required: true},
		{Name: "estado", Label: label("estado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(estadoOptions(loc), estado)},
	}
}

func decode(form *crud.FormReader, c *domain.Contrato) {
	c.Empleado = form.ID("empleado")
	c.Cargo = form.Ref("cargo")
	c.TipoContrato = form.String("tipo_contrato")
	c.FechaInicio = form.Date("fecha_inicio")
	c.FechaFin = form.Date("fecha_fin")
	c.Salario = form.Decimal("salario")
	c.Estado = form.String("estado")
}

func prepare(c *domain.Contrato, _ bool) error {
	c.Normalize()
	return c.Validate()
}

func detail(loc webtemplates.Localizer, c domain.Contrato, l crud.Lookups) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "contratos.field."+name) }
	return []webtemplates.DetailField{
		{Label: label("empleado"), Value: l.LabelID(lookupEmpleados, c.Empleado)},
		{Label: label("cargo"), Value: l.LabelID(lookupCargos, domain.ID(c.Cargo))},
		{Label: label("tipo_contrato"), Value: webtemplates.T(loc, "contratos.tipo."+c.TipoContrato)},
		{Label: label("fecha_inicio"), Value: webtemplates.Date(c.FechaInicio)},
		{Label: label("fecha_fin"), Value: webtemplates.Date(c.FechaFin)},
		{Label: label("salario"), Value: webtemplates.Money(loc, c.Salario)},
		{Label: label("estado"), Value: webtemplates.T(loc, "contratos.estado."+c.Estado)},
	}
}
