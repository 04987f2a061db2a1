package cuentas

import (
	"strconv"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const area = "cuentas"

// niveles are the PUC levels from clase to auxiliar.
var niveles = []string{"1", "2", "3", "4", "5"}

var schema = schemas.Cuentas

func definition(gateway Gateway) crud.Definition[domain.Cuenta] {
	return crud.Definition[domain.Cuenta]{
		Area:     area,
		Resource: backend.ResourceCuentas,
		Prefix:   routepath.Cuentas,
		Gateway:  gateway,
		Schema:   schema,
		ID:       func(c domain.Cuenta) int64 { return c.ID },
		Label:    domain.Cuenta.Etiqueta,
		Columns: []crud.Column[domain.Cuenta]{
			{Label: "cuentas.field.codigo", Sort: "codigo", Value: func(_ webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) string {
				return c.Codigo
			}},
			{Label: "cuentas.field.nombre", Sort: "nombre", Value: func(_ webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) string {
				return c.Nombre
			}},
			{Label: "cuentas.field.naturaleza", Sort: "naturaleza", Value: func(loc webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) string {
				return webtemplates.T(loc, "cuentas.naturaleza."+c.Naturaleza)
			}},
			{Label: "cuentas.field.nivel", Sort: "nivel", Value: func(loc webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) string {
				return webtemplates.T(loc, "cuentas.nivel."+strconv.Itoa(c.Nivel))
			}},
			{Label: "cuentas.field.activa", Sort: "activa", Value: func(loc webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) string {
				return webtemplates.YesNo(loc, c.Activa)
			}},
		},
		Selects: []crud.Select{
			{Name: "naturaleza", Label: "cuentas.field.naturaleza", Quote: true, Options: naturalezaOptions},
			{Name: "nivel", Label: "cuentas.field.nivel", Options: func(loc webtemplates.Localizer) []webtemplates.SelectOption {
				return crud.StaticOptions(loc, "cuentas.nivel", niveles)
			}},
		},
		Fields: formFields,
		Decode: func(form *crud.FormReader, c *domain.Cuenta) {
			c.Codigo = form.String("codigo")
			c.Nombre = form.String("nombre")
			c.Naturaleza = form.String("naturaleza")
			c.Activa = form.Bool("activa")
		},
		Prepare: func(c *domain.Cuenta, _ bool) error {
			c.Normalize()
			return c.Validate()
		},
		Detail: func(loc webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) []webtemplates.DetailField {
			label := func(name string) string { return webtemplates.T(loc, "cuentas.field."+name) }
			return []webtemplates.DetailField{
				{Label: label("codigo"), Value: c.Codigo},
				{Label: label("nombre"), Value: c.Nombre},
				{Label: label("naturaleza"), Value: webtemplates.T(loc, "cuentas.naturaleza."+c.Naturaleza)},
				{Label: label("nivel"), Value: webtemplates.T(loc, "cuentas.nivel."+strconv.Itoa(c.Nivel))},
				{Label: label("activa"), Value: webtemplates.YesNo(loc, c.Activa)},
			}
		},
	}
}

func naturalezaOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "cuentas.naturaleza", domain.Naturalezas)
}

func formFields(loc webtemplates.Localizer, c domain.Cuenta, _ crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "cuentas.field."+name) }
	return []webtemplates.FormField{
		{Name: "codigo", Label: label("codigo"), Value: c.Codigo, Required: true,
			Hint: webtemplates.T(loc, "cuentas.hint.codigo")},
		{Name: "nombre", Label: label("nombre"), Value: c.Nombre, Required: true},
		{Name: "naturaleza", Label: label("naturaleza"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(naturalezaOptions(loc), c.Naturaleza)},
		{Name: "activa", Label: label("activa"), Kind: webtemplates.FieldCheckbox, Checked: c.Activa || c.ID == 0},
	}
}
