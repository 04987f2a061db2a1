package empleados

import (
	"strconv"

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
	area = "empleados"

	lookupCargos        = "cargos"
	lookupMunicipios    = "municipios"
	lookupDepartamentos = "departamentos"
)

var schema = schemas.Empleados

func (m Module) definition() crud.Definition[domain.Empleado] {
	return crud.Definition[domain.Empleado]{
		Area:     area,
		Resource: backend.ResourceEmpleados,
		Prefix:   routepath.Empleados,
		Gateway:  m.gateway,
		Schema:   schema,
		ID:       func(e domain.Empleado) int64 { return e.ID },
		Label:    domain.Empleado.NombreCompleto,
		Columns: []crud.Column[domain.Empleado]{
			{Label: "empleados.field.documento", Sort: "documento", Value: func(_ webtemplates.Localizer, e domain.Empleado, _ crud.Lookups) string {
				return e.TipoDocumento + " " + e.Documento
			}},
			{Label: "empleados.field.nombre", Sort: "apellidos", Value: func(_ webtemplates.Localizer, e domain.Empleado, _ crud.Lookups) string {
				return e.NombreCompleto()
			}},
			{Label: "empleados.field.cargo", Value: func(_ webtemplates.Localizer, e domain.Empleado, l crud.Lookups) string {
				return webtemplates.OrDash(l.LabelID(lookupCargos, domain.ID(e.Cargo)))
			}},
			{Label: "empleados.field.fecha_ingreso", Sort: "fecha_ingreso", Value: func(_ webtemplates.Localizer, e domain.Empleado, _ crud.Lookups) string {
				return webtemplates.Date(e.FechaIngreso)
			}},
			{Label: "empleados.field.estado", Sort: "estado", Value: func(loc webtemplates.Localizer, e domain.Empleado, _ crud.Lookups) string {
				return webtemplates.T(loc, "empleados.estado."+e.Estado)
			}},
		},
		Selects: []crud.Select{
			{Name: "estado", Label: "empleados.field.estado", Quote: true, Options: estadoOptions},
			{Name: "cargo", Label: "empleados.field.cargo", Lookup: lookupCargos},
			{Name: "municipio", Label: "empleados.field.municipio", Lookup: lookupMunicipios},
		},
		Lookups: map[string]crud.LookupFunc{
			lookupCargos: crud.ListLookup(m.cargos,
				func(c domain.Cargo) int64 { return c.ID },
				func(c domain.Cargo) string { return c.Nombre }),
			lookupMunicipios: crud.GroupedLookup(m.municipios,
				func(mu domain.Municipio) int64 { return mu.ID },
				func(mu domain.Municipio) string { return mu.Nombre },
				func(mu domain.Municipio) int64 { return mu.Departamento }),
			lookupDepartamentos: crud.ListLookup(m.departamentos,
				func(d domain.Departamento) int64 { return d.ID },
				func(d domain.Departamento) string { return d.Nombre }),
		},
		Fields:  formFields,
		Decode:  decode,
		Prepare: prepare,
		Detail:  detail,
		Uploads: []crud.Upload[domain.Empleado]{{
			Field:   "foto",
			Label:   "empleados.field.foto",
			Policy:  filestore.PolicyFoto,
			Current: func(e domain.Empleado) string { return e.Foto },
		}},
	}
}

func estadoOptions(loc webtemplates.Localizer) []webtemplates.SelectOption {
	return crud.StaticOptions(loc, "empleados.estado", domain.EstadosEmpleado)
}

func refValue(ref *int64) string {
	if id := domain.ID(ref); id > 0 {
		return strconv.FormatInt(id, 10)
	}
	return ""
}

// departamentoOf finds the departamento of the selected municipio.
func departamentoOf(l crud.Lookups, municipio *int64) string {
	value := refValue(municipio)
	if value == "" {
		return ""
	}
	for _, option := range l[lookupMunicipios] {
		if option.Value == value {
			return option.Group
		}
	}
	return ""
}

func formFields(loc webtemplates.Localizer, e domain.Empleado, l crud.Lookups) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "empleados.field."+name) }
	tipo, estado := e.TipoDocumento, e.Estado
	if tipo == "" {
		tipo = domain.TiposDocumento[0]
	}
	if estado == "" {
		estado = domain.EstadoActivo
	}
	departamento := departamentoOf(l, e.Municipio)
	municipios := l[lookupMunicipios]
	if departamento != "" {
		municipios = webtemplates.InGroup(municipios, departamento)
	}
	return []webtemplates.FormField{
		{Name: "tipo_documento", Label: label("tipo_documento"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(crud.StaticOptions(loc, "empleados.tipo_documento", domain.TiposDocumento), tipo)},
		{Name: "documento", Label: label("documento"), Value: e.Documento, Required: true},
		{Name: "nombres", Label: label("nombres"), Value: e.Nombres, Required: true},
		{Name: "apellidos", Label: label("apellidos"), Value: e.Apellidos, Required: true},
		{Name: "email", Label: label("email"), Kind: webtemplates.FieldEmail, Value: e.Email},
		{Name: "telefono", Label: label("telefono"), Kind: webtemplates.FieldTel, Value: e.Telefono},
		{Name: "direccion", Label: label("direccion"), Value: e.Direccion},
		{Name: "fecha_nacimiento", Label: label("fecha_nacimiento"), Kind: webtemplates.FieldDate, Value: e.FechaNacimiento.String()},
		{Name: "fecha_ingreso", Label: label("fecha_ingreso"), Kind: webtemplates.FieldDate, Value: e.FechaIngreso.String(), Required: true},
		{Name: "cargo", Label: label("cargo"), Kind: webtemplates.FieldSelect, Options: l.Options(lookupCargos, refValue(e.Cargo))},
		{Name: "departamento", Label: label("departamento"), Kind: webtemplates.FieldSelect,
			Options: l.Options(lookupDepartamentos, departamento),
			Hint:    webtemplates.T(loc, "empleados.hint.departamento"),
			Attrs: templ.Attributes{
				"hx-get":     routepath.MunicipioOptions,
				"hx-target":  "#field-municipio",
				"hx-swap":    "innerHTML",
				"hx-trigger": "change",
			}},
		{Name: "municipio", Label: label("municipio"), Kind: webtemplates.FieldSelect, Options: webtemplates.MarkSelected(municipios, refValue(e.Municipio))},
		{Name: "estado", Label: label("estado"), Kind: webtemplates.FieldSelect, Required: true,
			Options: webtemplates.MarkSelected(estadoOptions(loc), estado)},
	}
}

func decode(form *crud.FormReader, e *domain.Empleado) {
	e.TipoDocumento = form.String("tipo_documento")
	e.Documento = form.String("documento")
	e.Nombres = form.String("nombres")
	e.Apellidos = form.String("apellidos")
	e.Email = form.String("email")
	e.Telefono = form.String("telefono")
	e.Direccion = form.String("direccion")
	e.FechaNacimiento = form.Date("fecha_nacimiento")
	e.FechaIngreso = form.Date("fecha_ingreso")
	e.Cargo = form.Ref("cargo")
	e.Municipio = form.Ref("municipio")
	e.Estado = form.String("estado")
}

func prepare(e *domain.Empleado, _ bool) error {
	e.Normalize()
	return e.Validate()
}

func detail(loc webtemplates.Localizer, e domain.Empleado, l crud.Lookups) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "empleados.field."+name) }
	return []webtemplates.DetailField{
		{Label: label("documento"), Value: e.TipoDocumento + " " + e.Documento},
		{Label: label("nombre"), Value: e.NombreCompleto()},
		{Label: label("email"), Value: e.Email},
		{Label: label("telefono"), Value: e.Telefono},
		{Label: label("direccion"), Value: e.Direccion},
		{Label: label("fecha_nacimiento"), Value: webtemplates.Date(e.FechaNacimiento)},
		{Label: label("fecha_ingreso"), Value: webtemplates.Date(e.FechaIngreso)},
		{Label: label("cargo"), Value: l.LabelID(lookupCargos, domain.ID(e.Cargo))},
		{Label: label("municipio"), Value: l.LabelID(lookupMunicipios, domain.ID(e.Municipio))},
		{Label: label("estado"), Value: webtemplates.T(loc, "empleados.estado."+e.Estado)},
	}
}
