package routepath

import (
	"net/url"
	"testing"
)

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/healthz" {
		t.Fatalf("Health = %q", Health)
	}
	if Dashboard != "/app/" {
		t.Fatalf("Dashboard = %q", Dashboard)
	}
	if FlujoCaja != "/app/flujo-caja/" {
		t.Fatalf("FlujoCaja = %q", FlujoCaja)
	}
	if MunicipioOptions != "/app/ubicaciones/municipios/options" {
		t.Fatalf("MunicipioOptions = %q", MunicipioOptions)
	}
	if PerfilEdit != "/app/perfil/edit" {
		t.Fatalf("PerfilEdit = %q", PerfilEdit)
	}
}

func TestRecordRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "new", got: New(Empleados), want: "/app/empleados/new"},
		{name: "item", got: Item(Cargos, 3), want: "/app/cargos/3"},
		{name: "edit", got: Edit(Contratos, 9), want: "/app/contratos/9/edit"},
		{name: "delete", got: Delete(Prestamos, 12), want: "/app/prestamos/12/delete"},
		{name: "field", got: Field(Comprobantes, 4, "soporte"), want: "/app/comprobantes/4/soporte"},
		{name: "field pattern", got: FieldPattern("foto"), want: "{id}/foto"},
		{name: "municipio options", got: MunicipioOptionsFor(5), want: "/app/ubicaciones/municipios/options?departamento=5"},
		{name: "municipio options without parent", got: MunicipioOptionsFor(0), want: MunicipioOptions},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestWithQuery(t *testing.T) {
	t.Parallel()

	if got := WithQuery(Empleados, nil); got != Empleados {
		t.Fatalf("WithQuery(nil) = %q", got)
	}
	got := WithQuery(Empleados, url.Values{"page": {"2"}, "q": {"ana"}})
	if got != "/app/empleados/?page=2&q=ana" {
		t.Fatalf("WithQuery = %q", got)
	}
}
