package ubicaciones

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud/crudtest"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

type fixture struct {
	handler       http.Handler
	departamentos *crudtest.Memory[domain.Departamento]
	municipios    *crudtest.Memory[domain.Municipio]
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	departamentos := crudtest.NewMemory(
		func(d domain.Departamento) int64 { return d.ID },
		func(d *domain.Departamento, id int64) { d.ID = id },
		domain.Departamento{ID: 1, Codigo: "05", Nombre: "Antioquia"},
		domain.Departamento{ID: 2, Codigo: "76", Nombre: "Valle del Cauca"},
	)
	municipios := crudtest.NewMemory(
		func(m domain.Municipio) int64 { return m.ID },
		func(m *domain.Municipio, id int64) { m.ID = id },
		domain.Municipio{ID: 11, Codigo: "05001", Nombre: "Medellín", Departamento: 1},
		domain.Municipio{ID: 12, Codigo: "05088", Nombre: "Bello", Departamento: 1},
		domain.Municipio{ID: 21, Codigo: "76001", Nombre: "Cali", Departamento: 2},
	)
	mounted, err := New(WithDepartamentos(departamentos), WithMunicipios(municipios), WithBase(modulehandler.NewTestBase())).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mounted.Prefix != routepath.Ubicaciones {
		t.Fatalf("prefix = %q, want %q", mounted.Prefix, routepath.Ubicaciones)
	}
	return fixture{handler: mounted.Handler, departamentos: departamentos, municipios: municipios}
}

func TestIndexRedirectsToDepartamentos(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := crudtest.Serve(f.handler, crudtest.Get(routepath.Ubicaciones))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != routepath.Departamentos {
		t.Fatalf("index = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestMunicipioOptionsFilterByDepartamento(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tests := []struct {
		target string
		want   []string
		not    []string
	}{
		{
			target: routepath.MunicipioOptionsFor(1),
			want:   []string{`<option value="">`, `<option value="12">Bello</option><option value="11">Medellín</option>`},
			not:    []string{"Cali"},
		},
		{target: routepath.MunicipioOptionsFor(2), want: []string{`<option value="21">Cali</option>`}, not: []string{"Bello"}},
		{target: routepath.MunicipioOptions + "?departamento=abc", want: []string{`<option value="">`}, not: []string{"Bello", "Cali"}},
	}
	for _, tc := range tests {
		rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.Get(tc.target), "field-municipio"))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.target, rr.Code)
		}
		body := rr.Body.String()
		for _, want := range tc.want {
			if !strings.Contains(body, want) {
				t.Fatalf("%s: missing %s in %q", tc.target, want, body)
			}
		}
		for _, not := range tc.not {
			if strings.Contains(body, not) {
				t.Fatalf("%s: unexpected %s in %q", tc.target, not, body)
			}
		}
	}
}

func TestMunicipiosListFiltersByDepartamento(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.Get(routepath.Municipios+"?departamento=2")).Body.String()
	if !strings.Contains(body, `data-id="21"`) || strings.Contains(body, `data-id="11"`) {
		t.Fatalf("departamento filter wrong: %q", body)
	}
	if !strings.Contains(body, "Valle del Cauca") {
		t.Fatalf("departamento label missing: %q", body)
	}
}

func TestCreateMunicipioRequiresDepartamento(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := url.Values{"codigo": {"05360"}, "nombre": {"Itagüí"}}
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Municipios, form), "modal"))
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), `id="field-departamento-error"`) {
		t.Fatalf("create without departamento = %d %q", rr.Code, rr.Body.String())
	}

	form.Set("departamento", "1")
	rr = crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Municipios, form), "modal"))
	if rr.Header().Get("HX-Redirect") != routepath.Municipios {
		t.Fatalf("create = %d %q", rr.Code, rr.Body.String())
	}
	if !f.municipios.Has(22) {
		t.Fatal("expected municipio 22 to be stored")
	}
}

func TestCreateDepartamento(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := url.Values{"codigo": {" 11 "}, "nombre": {"Bogotá D.C."}}
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Departamentos, form), "modal"))
	if rr.Header().Get("HX-Redirect") != routepath.Departamentos {
		t.Fatalf("create = %d %q", rr.Code, rr.Body.String())
	}
	if got := f.departamentos.Created[0]; got.Codigo != "11" {
		t.Fatalf("created = %+v", got)
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if rr := crudtest.Serve(f.handler, crudtest.Get(routepath.Ubicaciones+"paises/")); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
