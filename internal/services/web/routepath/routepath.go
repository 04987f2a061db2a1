// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root         = "/"
	Health       = "/healthz"
	StaticPrefix = "/static/"
	AppPrefix    = "/app/"
	Dashboard    = AppPrefix

	Empleados     = "/app/empleados/"
	Cargos        = "/app/cargos/"
	Contratos     = "/app/contratos/"
	Prestamos     = "/app/prestamos/"
	Comprobantes  = "/app/comprobantes/"
	Cuentas       = "/app/cuentas/"
	FlujoCaja     = "/app/flujo-caja/"
	Ubicaciones   = "/app/ubicaciones/"
	Departamentos = Ubicaciones + "departamentos/"
	Municipios    = Ubicaciones + "municipios/"
	Perfil        = "/app/perfil/"

	MunicipioOptions   = Municipios + "options"
	PerfilEdit         = Perfil + "edit"
	PrestamosSimulador = Prestamos + "simular"

	// Mux patterns shared by every resource area, relative to the prefix.
	ListPattern   = "{$}"
	NewPattern    = "new"
	ItemPattern   = "{id}"
	EditPattern   = "{id}/edit"
	DeletePattern = "{id}/delete"
	RestPattern   = "{rest...}"
)

// New returns the create-form route under prefix.
func New(prefix string) string {
	return prefix + NewPattern
}

// Item returns the detail route for one record.
func Item(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// Edit returns the edit-form route for one record.
func Edit(prefix string, id int64) string {
	return Item(prefix, id) + "/edit"
}

// Delete returns the delete-confirm route for one record.
func Delete(prefix string, id int64) string {
	return Item(prefix, id) + "/delete"
}

// Field returns the upload route for one record field.
func Field(prefix string, id int64, field string) string {
	return Item(prefix, id) + "/" + escapeSegment(field)
}

// FieldPattern returns the mux pattern for a field upload route.
func FieldPattern(field string) string {
	return ItemPattern + "/" + escapeSegment(field)
}

// WithQuery appends encoded query values to path when any are set.
func WithQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// MunicipioOptionsFor returns the dependent-select route for a departamento.
func MunicipioOptionsFor(departamento int64) string {
	if departamento <= 0 {
		return MunicipioOptions
	}
	return WithQuery(MunicipioOptions, url.Values{"departamento": {strconv.FormatInt(departamento, 10)}})
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
