package ubicaciones

import (
	"net/url"
	"strconv"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/schemas"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

const lookupDepartamentos = "departamentos"

var departamentoSchema = schemas.Departamentos

var municipioSchema = schemas.Municipios

func departamentoDefinition(gateway DepartamentoGateway) crud.Definition[domain.Departamento] {
	label := func(loc webtemplates.Localizer, name string) string { return webtemplates.T(loc, "departamentos.field."+name) }
	return crud.Definition[domain.Departamento]{
		Area:     "departamentos",
		Resource: backend.ResourceDepartamentos,
		Prefix:   routepath.Departamentos,
		Gateway:  gateway,
		Schema:   departamentoSchema,
		ID:       func(d domain.Departamento) int64 { return d.ID },
		Label:    func(d domain.Departamento) string { return d.Nombre },
		Columns: []crud.Column[domain.Departamento]{
			{Label: "departamentos.field.codigo", Sort: "codigo", Value: func(_ webtemplates.Localizer, d domain.Departamento, _ crud.Lookups) string {
				return d.Codigo
			}},
			{Label: "departamentos.field.nombre", Sort: "nombre", Value: func(_ webtemplates.Localizer, d domain.Departamento, _ crud.Lookups) string {
				return d.Nombre
			}},
		},
		Fields: func(loc webtemplates.Localizer, d domain.Departamento, _ crud.Lookups) []webtemplates.FormField {
			return []webtemplates.FormField{
				{Name: "codigo", Label: label(loc, "codigo"), Value: d.Codigo, Required: true},
				{Name: "nombre", Label: label(loc, "nombre"), Value: d.Nombre, Required: true},
			}
		},
		Decode: func(form *crud.FormReader, d *domain.Departamento) {
			d.Codigo = form.String("codigo")
			d.Nombre = form.String("nombre")
		},
		Prepare: func(d *domain.Departamento, _ bool) error {
			d.Normalize()
			return d.Validate()
		},
		Detail: func(loc webtemplates.Localizer, d domain.Departamento, _ crud.Lookups) []webtemplates.DetailField {
			return []webtemplates.DetailField{
				{Label: label(loc, "codigo"), Value: d.Codigo},
				{Label: label(loc, "nombre"), Value: d.Nombre},
				{Label: webtemplates.T(loc, "municipios.title"), Value: webtemplates.T(loc, "departamentos.municipios.link"),
					URL: routepath.WithQuery(routepath.Municipios, url.Values{"departamento": {departamentoValue(d.ID)}})},
			}
		},
	}
}

func municipioDefinition(gateway MunicipioGateway, departamentos crud.Lister[domain.Departamento]) crud.Definition[domain.Municipio] {
	label := func(loc webtemplates.Localizer, name string) string { return webtemplates.T(loc, "municipios.field."+name) }
	return crud.Definition[domain.Municipio]{
		Area:     "municipios",
		Resource: backend.ResourceMunicipios,
		Prefix:   routepath.Municipios,
		Gateway:  gateway,
		Schema:   municipioSchema,
		ID:       func(m domain.Municipio) int64 { return m.ID },
		Label:    func(m domain.Municipio) string { return m.Nombre },
		Columns: []crud.Column[domain.Municipio]{
			{Label: "municipios.field.codigo", Sort: "codigo", Value: func(_ webtemplates.Localizer, m domain.Municipio, _ crud.Lookups) string {
				return m.Codigo
			}},
			{Label: "municipios.field.nombre", Sort: "nombre", Value: func(_ webtemplates.Localizer, m domain.Municipio, _ crud.Lookups) string {
				return m.Nombre
			}},
			{Label: "municipios.field.departamento", Value: func(_ webtemplates.Localizer, m domain.Municipio, l crud.Lookups) string {
				return webtemplates.OrDash(l.LabelID(lookupDepartamentos, m.Departamento))
			}},
		},
		Selects: []crud.Select{
			{Name: "departamento", Label: "municipios.field.departamento", Lookup: lookupDepartamentos},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupDepartamentos: crud.ListLookup(departamentos,
				func(d domain.Departamento) int64 { return d.ID },
				func(d domain.Departamento) string { return d.Nombre }),
		},
		Fields: func(loc webtemplates.Localizer, m domain.Municipio, l crud.Lookups) []webtemplates.FormField {
			return []webtemplates.FormField{
				{Name: "codigo", Label: label(loc, "codigo"), Value: m.Codigo, Required: true},
				{Name: "nombre", Label: label(loc, "nombre"), Value: m.Nombre, Required: true},
				{Name: "departamento", Label: label(loc, "departamento"), Kind: webtemplates.FieldSelect, Required: true,
					Options: l.Options(lookupDepartamentos, departamentoValue(m.Departamento))},
			}
		},
		Decode: func(form *crud.FormReader, m *domain.Municipio) {
			m.Codigo = form.String("codigo")
			m.Nombre = form.String("nombre")
			m.Departamento = form.ID("departamento")
		},
		Prepare: func(m *domain.Municipio, _ bool) error {
			m.Normalize()
			return m.Validate()
		},
		Detail: func(loc webtemplates.Localizer, m domain.Municipio, l crud.Lookups) []webtemplates.DetailField {
			return []webtemplates.DetailField{
				{Label: label(loc, "codigo"), Value: m.Codigo},
				{Label: label(loc, "nombre"), Value: m.Nombre},
				{Label: label(loc, "departamento"), Value: l.LabelID(lookupDepartamentos, m.Departamento)},
			}
		},
	}
}

func departamentoValue(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
