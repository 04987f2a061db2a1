package cargos

import (
	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const area = "cargos"

var schema = schemas.Cargos

func definition(gateway Gateway) crud.Definition[domain.Cargo] {
	return crud.Definition[domain.Cargo]{
		Area:     area,
		Resource: backend.ResourceCargos,
		Prefix:   routepath.Cargos,
		Gateway:  gateway,
		Schema:   schema,
		ID:       func(c domain.Cargo) int64 { return c.ID },
		Label:    func(c domain.Cargo) string { return c.Nombre },
		Columns: []crud.Column[domain.Cargo]{
			{Label: "cargos.field.nombre", Sort: "nombre", Value: func(_ webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) string {
				return c.Nombre
			}},
			{Label: "cargos.field.descripcion", Value: func(_ webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) string {
				return webtemplates.OrDash(c.Descripcion)
			}},
			{Label: "cargos.field.salario_base", Sort: "salario_base", Class: "numeric", Value: func(loc webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) string {
				return webtemplates.Money(loc, c.SalarioBase)
			}},
			{Label: "cargos.field.activo", Sort: "activo", Value: func(loc webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) string {
				return webtemplates.YesNo(loc, c.Activo)
			}},
		},
		Selects: []crud.Select{{
			Name:  "activo",
			Label: "cargos.field.activo",
			Options: func(loc webtemplates.Localizer) []webtemplates.SelectOption {
				return []webtemplates.SelectOption{
					{Value: "true", Label: webtemplates.YesNo(loc, true)},
					{Value: "false", Label: webtemplates.YesNo(loc, false)},
				}
			},
		}},
		Fields: formFields,
		Decode: func(form *crud.FormReader, c *domain.Cargo) {
			c.Nombre = form.String("nombre")
			c.Descripcion = form.String("descripcion")
			c.SalarioBase = form.Decimal("salario_base")
			c.Activo = form.Bool("activo")
		},
		Prepare: func(c *domain.Cargo, _ bool) error {
			c.Normalize()
			return c.Validate()
		},
		Detail: func(loc webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) []webtemplates.DetailField {
			return []webtemplates.DetailField{
				{Label: webtemplates.T(loc, "cargos.field.nombre"), Value: c.Nombre},
				{Label: webtemplates.T(loc, "cargos.field.descripcion"), Value: c.Descripcion},
				{Label: webtemplates.T(loc, "cargos.field.salario_base"), Value: webtemplates.Money(loc, c.SalarioBase)},
				{Label: webtemplates.T(loc, "cargos.field.activo"), Value: webtemplates.YesNo(loc, c.Activo)},
			}
		},
	}
}

func formFields(loc webtemplates.Localizer, c domain.Cargo, _ crud.Lookups) []webtemplates.FormField {
	activo := c.Activo || c.ID == 0
	return []webtemplates.FormField{
		{Name: "nombre", Label: webtemplates.T(loc, "cargos.field.nombre"), Value: c.Nombre, Required: true},
		{Name: "descripcion", Label: webtemplates.T(loc, "cargos.field.descripcion"), Kind: webtemplates.FieldTextarea, Value: c.Descripcion},
		{Name: "salario_base", Label: webtemplates.T(loc, "cargos.field.salario_base"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(c.SalarioBase)},
		{Name: "activo", Label: webtemplates.T(loc, "cargos.field.activo"), Kind: webtemplates.FieldCheckbox, Checked: activo},
	}
}
