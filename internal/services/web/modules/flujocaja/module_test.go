package flujocaja

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud/crudtest"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

type fixture struct {
	handler     http.Handler
	movimientos *crudtest.Memory[domain.MovimientoCaja]
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	movimientos := crudtest.NewMemory(
		func(m domain.MovimientoCaja) int64 { return m.ID },
		func(m *domain.MovimientoCaja, id int64) { m.ID = id },
		domain.MovimientoCaja{ID: 1, Fecha: domain.NewDate(2024, time.March, 1), Tipo: domain.MovimientoIngreso,
			Concepto: "Venta de contado", Categoria: "ventas", Valor: 900000, Cuenta: domain.Ref(1)},
		domain.MovimientoCaja{ID: 2, Fecha: domain.NewDate(2024, time.March, 30), Tipo: domain.MovimientoEgreso,
			Concepto: "Pago nómina", Categoria: "nomina", Valor: 600000, Cuenta: domain.Ref(1), Comprobante: domain.Ref(7)},
		domain.MovimientoCaja{ID: 3, Fecha: domain.NewDate(2024, time.April, 2), Tipo: domain.MovimientoEgreso,
			Concepto: "Arriendo", Categoria: "gastos", Valor: 250000, Cuenta: domain.Ref(1)},
	)
	cuentas := crudtest.NewMemory(
		func(c domain.Cuenta) int64 { return c.ID },
		func(c *domain.Cuenta, id int64) { c.ID = id },
		domain.Cuenta{ID: 1, Codigo: "1105", Nombre: "Caja"},
	)
	comprobantes := crudtest.NewMemory(
		func(c domain.Comprobante) int64 { return c.ID },
		func(c *domain.Comprobante, id int64) { c.ID = id },
		domain.Comprobante{ID: 7, Numero: "CE-0007"},
	)
	mounted, err := New(
		WithGateway(movimientos),
		WithCuentas(cuentas),
		WithComprobantes(comprobantes),
		WithBase(modulehandler.NewTestBase()),
	).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return fixture{handler: mounted.Handler, movimientos: movimientos}
}

func TestListRendersMonthlySummary(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.Get(routepath.FlujoCaja)).Body.String()
	if !strings.Contains(body, `id="cash-summary"`) {
		t.Fatalf("summary missing: %q", body)
	}
	march, april := strings.Index(body, "<td>2024-03</td>"), strings.Index(body, "<td>2024-04</td>")
	if march < 0 || april < 0 || march > april {
		t.Fatalf("months missing or out of order: %q", body)
	}
}

func TestSummaryFollowsFilters(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.Get(routepath.FlujoCaja+"?tipo=egreso&q=arriendo")).Body.String()
	if strings.Contains(body, "<td>2024-03</td>") || !strings.Contains(body, "<td>2024-04</td>") {
		t.Fatalf("summary should cover only filtered rows: %q", body)
	}
	if !strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="2"`) {
		t.Fatalf("rows wrong: %q", body)
	}
}

func TestCreateRequiresAccountAndPositiveValue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := url.Values{"fecha": {"2024-05-01"}, "tipo": {"ingreso"}, "concepto": {"Aporte"}, "valor": {"0"}}
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.FlujoCaja, form), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	for _, field := range []string{"valor", "cuenta"} {
		if !strings.Contains(rr.Body.String(), `id="field-`+field+`-error"`) {
			t.Fatalf("missing %s error", field)
		}
	}

	form.Set("valor", "50000")
	form.Set("cuenta", "1")
	rr = crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.FlujoCaja, form), "modal"))
	if rr.Header().Get("HX-Redirect") != routepath.FlujoCaja {
		t.Fatalf("create = %d %q", rr.Code, rr.Body.String())
	}
	if created := f.movimientos.Created[0]; created.Valor != 50000 || created.Comprobante != nil {
		t.Fatalf("created = %+v", created)
	}
}

func TestDetailLinksVoucher(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.Get(routepath.Item(routepath.FlujoCaja, 2)), "modal")).Body.String()
	if !strings.Contains(body, routepath.Item(routepath.Comprobantes, 7)) || !strings.Contains(body, "CE-0007") {
		t.Fatalf("voucher link missing: %q", body)
	}
}
