package cargos

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

func newGateway() *crudtest.Memory[domain.Cargo] {
	return crudtest.NewMemory(
		func(c domain.Cargo) int64 { return c.ID },
		func(c *domain.Cargo, id int64) { c.ID = id },
		domain.Cargo{ID: 1, Nombre: "Analista contable", SalarioBase: 3200000, Activo: true},
		domain.Cargo{ID: 2, Nombre: "Auxiliar de bodega", SalarioBase: 1423500, Activo: false},
		domain.Cargo{ID: 3, Nombre: "Jefe de nómina", Descripcion: "Liquida la nómina quincenal", SalarioBase: 5800000, Activo: true},
	)
}

func mount(t *testing.T, gateway Gateway) http.Handler {
	t.Helper()
	m := New(WithGateway(gateway), WithBase(modulehandler.NewTestBase()))
	mounted, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mounted.Prefix != routepath.Cargos {
		t.Fatalf("prefix = %q, want %q", mounted.Prefix, routepath.Cargos)
	}
	return mounted.Handler
}

func TestModuleIdentityAndHealth(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "cargos" {
		t.Fatalf("ID() = %q, want %q", got, "cargos")
	}
	if New().Healthy() {
		t.Fatal("Healthy() without gateway = true, want false")
	}
	if !New(WithGateway(newGateway())).Healthy() {
		t.Fatal("Healthy() with gateway = false, want true")
	}
}

func TestListFiltersByActivoAndSortsBySalary(t *testing.T) {
	t.Parallel()

	handler := mount(t, newGateway())
	rr := crudtest.Serve(handler, crudtest.Get(routepath.Cargos+"?activo=true&order_by=salario_base+desc"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, `data-id="2"`) {
		t.Fatalf("inactive position listed: %q", body)
	}
	jefe, analista := strings.Index(body, `data-id="3"`), strings.Index(body, `data-id="1"`)
	if jefe < 0 || analista < 0 || jefe > analista {
		t.Fatalf("rows not ordered by salary desc: %q", body)
	}
}

func TestSearchMatchesDescription(t *testing.T) {
	t.Parallel()

	handler := mount(t, newGateway())
	body := crudtest.Serve(handler, crudtest.Get(routepath.Cargos+"?q=quincenal")).Body.String()
	if !strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="1"`) {
		t.Fatalf("search result wrong: %q", body)
	}
}

func TestCreateRejectsNegativeSalary(t *testing.T) {
	t.Parallel()

	gateway := newGateway()
	handler := mount(t, gateway)
	req := crudtest.HTMX(crudtest.PostForm(routepath.Cargos, url.Values{"nombre": {"Mensajero"}, "salario_base": {"-1"}}), "modal")
	rr := crudtest.Serve(handler, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), `id="field-salario_base-error"`) {
		t.Fatalf("body missing salary error: %q", rr.Body.String())
	}
	if len(gateway.Created) != 0 {
		t.Fatalf("created = %d, want 0", len(gateway.Created))
	}
}

func TestCreateNormalizesAndRedirects(t *testing.T) {
	t.Parallel()

	gateway := newGateway()
	handler := mount(t, gateway)
	req := crudtest.HTMX(crudtest.PostForm(routepath.Cargos, url.Values{
		"nombre":       {"  Mensajero  "},
		"salario_base": {"1.423.500"},
		"activo":       {"true"},
	}), "modal")
	rr := crudtest.Serve(handler, req)
	if got := rr.Header().Get("HX-Redirect"); got != routepath.Cargos {
		t.Fatalf("HX-Redirect = %q, body = %q", got, rr.Body.String())
	}
	if len(gateway.Created) != 1 {
		t.Fatalf("created = %d, want 1", len(gateway.Created))
	}
	created := gateway.Created[0]
	if created.Nombre != "Mensajero" || created.SalarioBase != 1423500 || !created.Activo {
		t.Fatalf("created = %+v", created)
	}
}

func TestNewFormStartsActive(t *testing.T) {
	t.Parallel()

	handler := mount(t, newGateway())
	body := crudtest.Serve(handler, crudtest.HTMX(crudtest.Get(routepath.New(routepath.Cargos)), "modal")).Body.String()
	if !strings.Contains(body, `name="activo" checked`) {
		t.Fatalf("new form should default to active: %q", body)
	}
	if strings.Contains(body, `name="salario_base" value="0.00"`) {
		t.Fatalf("new form should leave salary blank: %q", body)
	}
}

func TestDegradedModuleRendersUnavailable(t *testing.T) {
	t.Parallel()

	handler := mount(t, nil)
	rr := crudtest.Serve(handler, crudtest.Get(routepath.Cargos))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
