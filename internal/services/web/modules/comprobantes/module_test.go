package comprobantes

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud/crudtest"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

type fixture struct {
	handler      http.Handler
	comprobantes *crudtest.Memory[domain.Comprobante]
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	comprobantes := crudtest.NewMemory(
		func(c domain.Comprobante) int64 { return c.ID },
		func(c *domain.Comprobante, id int64) { c.ID = id },
		domain.Comprobante{
			ID: 1, Numero: "CE-0001", Tipo: domain.ComprobanteEgreso, Fecha: domain.NewDate(2024, time.March, 5),
			Tercero: "Papelería El Cóndor", Estado: domain.ComprobanteContabilizado,
			Detalles: []domain.Detalle{
				{Cuenta: 10, Descripcion: "Resmas", Debito: 150000},
				{Cuenta: 20, Credito: 150000},
			},
			TotalDebito: 150000, TotalCredito: 150000,
		},
		domain.Comprobante{
			ID: 2, Numero: "CI-0001", Tipo: domain.ComprobanteIngreso, Fecha: domain.NewDate(2024, time.April, 2),
			Estado: domain.ComprobanteBorrador,
		},
	)
	cuentas := crudtest.NewMemory(
		func(c domain.Cuenta) int64 { return c.ID },
		func(c *domain.Cuenta, id int64) { c.ID = id },
		domain.Cuenta{ID: 10, Codigo: "519530", Nombre: "Útiles, papelería y fotocopias"},
		domain.Cuenta{ID: 20, Codigo: "111005", Nombre: "Moneda nacional"},
	)
	m := New(WithGateway(comprobantes), WithCuentas(cuentas), WithFiles(&crudtest.Files{}), WithBase(modulehandler.NewTestBase()))
	mounted, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return fixture{handler: mounted.Handler, comprobantes: comprobantes}
}

func voucherForm(lines ...[4]string) url.Values {
	values := url.Values{
		"numero": {"CD-0007"},
		"tipo":   {"diario"},
		"fecha":  {"2024-05-31"},
	}
	for idx, line := range lines {
		prefix := "detalles." + string(rune('0'+idx)) + "."
		values.Set(prefix+"cuenta", line[0])
		values.Set(prefix+"descripcion", line[1])
		values.Set(prefix+"debito", line[2])
		values.Set(prefix+"credito", line[3])
	}
	return values
}

func TestSubmittedLinesSkipsBlankRowsInIndexOrder(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"detalles.10.cuenta": {"20"},
		"detalles.10.debito": {""},
		"detalles.2.cuenta":  {"10"},
		"detalles.2.debito":  {"5"},
		"detalles.3.cuenta":  {""},
		"detalles.x.cuenta":  {"99"},
		"numero":             {"CD-1"},
	}
	got := submittedLines(values)
	want := []string{"10", "20"}
	cuentas := make([]string, 0, len(got))
	for _, line := range got {
		cuentas = append(cuentas, line.Cuenta)
	}
	if diff := cmp.Diff(want, cuentas); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateBalancedVoucher(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := voucherForm(
		[4]string{"10", "Nómina mayo", "1.250.000,50", ""},
		[4]string{"", "", "", ""},
		[4]string{"20", "", "", "1250000.50"},
	)
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Comprobantes, form), "modal"))
	if rr.Header().Get("HX-Redirect") != routepath.Comprobantes {
		t.Fatalf("create = %d %q", rr.Code, rr.Body.String())
	}
	created := f.comprobantes.Created[0]
	want := []domain.Detalle{
		{Cuenta: 10, Descripcion: "Nómina mayo", Debito: 1250000.5},
		{Cuenta: 20, Credito: 1250000.5},
	}
	if diff := cmp.Diff(want, created.Detalles); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if created.TotalDebito != 1250000.5 || created.TotalCredito != 1250000.5 || created.Estado != domain.ComprobanteBorrador {
		t.Fatalf("created = %+v", created)
	}
}

func TestCreateRejectsUnbalancedVoucher(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := voucherForm(
		[4]string{"10", "", "100", ""},
		[4]string{"20", "", "", "90"},
	)
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Comprobantes, form), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<p class="error" role="alert">`) {
		t.Fatalf("balance error missing: %q", body)
	}
	if !strings.Contains(body, `name="detalles.1.credito" value="90"`) {
		t.Fatalf("submitted line not kept: %q", body)
	}
	if len(f.comprobantes.Created) != 0 {
		t.Fatalf("created = %d, want 0", len(f.comprobantes.Created))
	}
}

func TestCreateFlagsLineErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := voucherForm(
		[4]string{"10", "", "100", "100"},
		[4]string{"", "sin cuenta", "", "100"},
		[4]string{"20", "", "cien", ""},
	)
	rr := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.PostForm(routepath.Comprobantes, form), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if got := strings.Count(body, `<tr class="has-error">`); got != 3 {
		t.Fatalf("rows with errors = %d, want 3: %q", got, body)
	}
	if !strings.Contains(body, `value="cien"`) {
		t.Fatalf("unparseable amount not kept: %q", body)
	}
}

func TestEditFormShowsStoredLinesAndSpareRows(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.Get(routepath.Edit(routepath.Comprobantes, 1)), "modal")).Body.String()
	if !strings.Contains(body, `name="detalles.0.debito" value="150000.00"`) {
		t.Fatalf("stored line missing: %q", body)
	}
	if !strings.Contains(body, `name="detalles.3.cuenta"`) || strings.Contains(body, `name="detalles.4.cuenta"`) {
		t.Fatalf("expected four editor rows: %q", body)
	}
}

func TestDetailListsLinesWithAccountLabels(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.HTMX(crudtest.Get(routepath.Item(routepath.Comprobantes, 1)), "modal")).Body.String()
	if !strings.Contains(body, "519530 - Útiles, papelería y fotocopias") {
		t.Fatalf("account label missing: %q", body)
	}
	if !strings.Contains(body, `hx-post="`+routepath.Field(routepath.Comprobantes, 1, "soporte")+`"`) {
		t.Fatalf("soporte upload form missing: %q", body)
	}
}

func TestListFiltersByTipo(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	body := crudtest.Serve(f.handler, crudtest.Get(routepath.Comprobantes+"?tipo=ingreso")).Body.String()
	if !strings.Contains(body, `data-id="2"`) || strings.Contains(body, `data-id="1"`) {
		t.Fatalf("tipo filter wrong: %q", body)
	}
}
