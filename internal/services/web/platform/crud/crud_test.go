package crud

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	flashnotice "github.com/nominaweb/nominaweb/internal/services/web/platform/flash"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

type memoryAudit struct {
	mu      sync.Mutex
	entries []webstorage.AuditEntry
}

func (m *memoryAudit) Close() error { return nil }

func (m *memoryAudit) RecordAudit(_ context.Context, entry webstorage.AuditEntry) (webstorage.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memoryAudit) ListAudit(context.Context, int) ([]webstorage.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]webstorage.AuditEntry(nil), m.entries...), nil
}

type fixture struct {
	mux     *http.ServeMux
	gateway *fakeGateway
	files   *fakeFiles
	audit   *memoryAudit
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	gateway := newFakeGateway(
		widget{ID: 1, Nombre: "Taladro", Precio: 350000, Activo: true, Grupo: 1},
		widget{ID: 2, Nombre: "Broca", Precio: 12000, Grupo: 2},
		widget{ID: 3, Nombre: "Alicate", Precio: 45000, Activo: true, Grupo: 1, Foto: "https://files.example/alicate.png"},
	)
	files := &fakeFiles{}
	audit := &memoryAudit{}
	mux := http.NewServeMux()
	err := Register(mux, Deps{
		Base:  modulehandler.NewTestBase(),
		Audit: auditlog.New(audit, auditlog.StaticActor("tester"), nil),
		Files: files,
	}, widgetDefinition(gateway))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return fixture{mux: mux, gateway: gateway, files: files, audit: audit}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func htmx(req *http.Request, target string) *http.Request {
	req.Header.Set("HX-Request", "true")
	if target != "" {
		req.Header.Set("HX-Target", target)
	}
	return req
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRegisterRejectsIncompleteDefinitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Definition[widget])
	}{
		{name: "missing area", mutate: func(d *Definition[widget]) { d.Area = "" }},
		{name: "prefix outside app", mutate: func(d *Definition[widget]) { d.Prefix = "/widgets/" }},
		{name: "missing decode", mutate: func(d *Definition[widget]) { d.Decode = nil }},
		{name: "undeclared sort", mutate: func(d *Definition[widget]) { d.Columns[0].Sort = "peso" }},
		{name: "undeclared select", mutate: func(d *Definition[widget]) { d.Selects = []Select{{Name: "color", Lookup: "grupos"}} }},
		{name: "unknown lookup", mutate: func(d *Definition[widget]) { d.Selects[0].Lookup = "colores" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def := widgetDefinition(newFakeGateway())
			tc.mutate(&def)
			if err := Register(http.NewServeMux(), Deps{Base: modulehandler.NewTestBase()}, def); err == nil {
				t.Fatal("Register() error = nil, want error")
			}
		})
	}
}

func TestListOrdersAndPaginates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(httptest.NewRequest(http.MethodGet, widgetsPrefix, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	alicate := strings.Index(body, `data-id="3"`)
	broca := strings.Index(body, `data-id="2"`)
	if alicate < 0 || broca < 0 || alicate > broca {
		t.Fatalf("rows out of default order: %q", body)
	}
	if strings.Contains(body, `data-id="1"`) {
		t.Fatal("page 1 should not include the third record")
	}
	if !strings.Contains(body, "page=2") {
		t.Fatalf("body missing next page link: %q", body)
	}
}

func TestListSelectAndSearch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(httptest.NewRequest(http.MethodGet, widgetsPrefix+"?grupo=1&q=tala", nil))
	body := rr.Body.String()
	if !strings.Contains(body, `data-id="1"`) || strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="2"`) {
		t.Fatalf("filtered rows wrong: %q", body)
	}
	if !strings.Contains(body, "Herramientas") {
		t.Fatal("lookup label missing from grupo column")
	}
	if !strings.Contains(body, `<option value="1" selected>`) {
		t.Fatalf("select value not kept: %q", body)
	}
}

func TestListRejectsInvalidFilterAndOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, query := range []string{"?filter=" + url.QueryEscape("peso > 3"), "?order_by=peso"} {
		rr := f.do(httptest.NewRequest(http.MethodGet, widgetsPrefix+query, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want %d", query, rr.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rr.Body.String(), `role="alert"`) {
			t.Fatalf("%s body missing alert", query)
		}
	}
}

func TestListShowsBackendFailureAsAlert(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.gateway.listErr = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "dial tcp: refused")
	rr := f.do(htmx(httptest.NewRequest(http.MethodGet, widgetsPrefix, nil), "main"))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `role="alert"`) || strings.Contains(body, "dial tcp") {
		t.Fatalf("body = %q", body)
	}
}

func TestCreateInvalidRerendersFormWithErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(htmx(postForm(widgetsPrefix, url.Values{"nombre": {" "}, "precio": {"doce"}}), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	for _, marker := range []string{`role="dialog"`, `id="field-nombre-error"`, `id="field-precio-error"`, `value="doce"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if len(f.audit.entries) != 0 {
		t.Fatalf("audit entries = %d, want 0", len(f.audit.entries))
	}
}

func TestCreateRedirectsWithNoticeAndAudit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(htmx(postForm(widgetsPrefix, url.Values{"nombre": {"Sierra"}, "precio": {"1.250.000,50"}, "grupo": {"2"}, "activo": {"true"}}), "modal"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); got != widgetsPrefix {
		t.Fatalf("HX-Redirect = %q, want %q", got, widgetsPrefix)
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), flashnotice.CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want flash notice", rr.Header().Get("Set-Cookie"))
	}
	created, err := f.gateway.Get(context.Background(), 101)
	if err != nil {
		t.Fatalf("created record missing: %v", err)
	}
	want := widget{ID: 101, Nombre: "Sierra", Precio: 1250000.50, Grupo: 2, Activo: true}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("created mismatch (-want +got):\n%s", diff)
	}
	if len(f.audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(f.audit.entries))
	}
	entry := f.audit.entries[0]
	if entry.Action != webstorage.ActionCreate || entry.Entity != "widgets" || entry.EntityID != "101" || entry.Actor != "tester" {
		t.Fatalf("audit entry = %+v", entry)
	}
}

func TestCreateWithoutHTMXRedirectsSeeOther(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(postForm(widgetsPrefix, url.Values{"nombre": {"Sierra"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != widgetsPrefix {
		t.Fatalf("Location = %q, want %q", got, widgetsPrefix)
	}
}

func TestCreateBackendRejectionShowsAlert(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.gateway.createErr = apperrors.Error{
		Kind:    apperrors.KindInvalidInput,
		Key:     "core.error.invalid_input",
		Message: "nombre: ya existe",
		Fields:  map[string]string{"nombre": "ya existe"},
	}
	rr := f.do(htmx(postForm(widgetsPrefix, url.Values{"nombre": {"Taladro"}}), "modal"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "ya existe") || !strings.Contains(body, `role="alert"`) {
		t.Fatalf("body = %q", body)
	}
}

func TestUpdateKeepsFieldsOutsideTheForm(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(htmx(postForm(widgetsPrefix+"3/edit", url.Values{"nombre": {"Alicate universal"}, "precio": {"47000"}, "grupo": {"1"}}), "modal"))
	if got := rr.Header().Get("HX-Redirect"); got != widgetsPrefix {
		t.Fatalf("HX-Redirect = %q, body = %q", got, rr.Body.String())
	}
	updated, _ := f.gateway.Get(context.Background(), 3)
	if updated.Nombre != "Alicate universal" || updated.Foto == "" || updated.Activo {
		t.Fatalf("updated = %+v", updated)
	}
	if f.audit.entries[0].Action != webstorage.ActionUpdate {
		t.Fatalf("audit action = %q", f.audit.entries[0].Action)
	}
}

func TestFormsRenderForHTMXAndFullPage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	modal := f.do(htmx(httptest.NewRequest(http.MethodGet, widgetsPrefix+"new", nil), "modal"))
	if !strings.Contains(modal.Body.String(), `role="dialog"`) || strings.Contains(modal.Body.String(), "<html") {
		t.Fatalf("htmx form = %q", modal.Body.String())
	}
	page := f.do(httptest.NewRequest(http.MethodGet, widgetsPrefix+"1/edit", nil))
	body := page.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, `value="Taladro"`) || !strings.Contains(body, `action="/app/widgets/1/edit"`) {
		t.Fatalf("full-page edit form = %q", body)
	}
}

func TestDetailAndNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(htmx(httptest.NewRequest(http.MethodGet, widgetsPrefix+"3", nil), "modal"))
	body := rr.Body.String()
	if rr.Code != http.StatusOK || !strings.Contains(body, `hx-post="/app/widgets/3/foto"`) || !strings.Contains(body, "alicate.png") {
		t.Fatalf("detail = %d %q", rr.Code, body)
	}

	for _, target := range []string{widgetsPrefix + "99", widgetsPrefix + "abc", widgetsPrefix + "1/unknown/deeper"} {
		rr := f.do(httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want %d", target, rr.Code, http.StatusNotFound)
		}
	}
}

func TestUnsupportedMethodReturns405(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(httptest.NewRequest(http.MethodDelete, widgetsPrefix+"1", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if allow := rr.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("Allow = %q, want GET", allow)
	}
}

func TestDeleteFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	confirm := f.do(htmx(httptest.NewRequest(http.MethodGet, widgetsPrefix+"2/delete", nil), "modal"))
	if !strings.Contains(confirm.Body.String(), `hx-post="/app/widgets/2/delete"`) {
		t.Fatalf("confirm = %q", confirm.Body.String())
	}

	f.gateway.deleteErr = apperrors.EK(apperrors.KindConflict, "core.error.conflict", "protected")
	rr := f.do(htmx(postForm(widgetsPrefix+"2/delete", nil), "modal"))
	if rr.Code != http.StatusConflict || !strings.Contains(rr.Body.String(), `role="alert"`) {
		t.Fatalf("conflict delete = %d %q", rr.Code, rr.Body.String())
	}

	f.gateway.deleteErr = nil
	rr = f.do(htmx(postForm(widgetsPrefix+"2/delete", nil), "modal"))
	if rr.Header().Get("HX-Redirect") != widgetsPrefix {
		t.Fatalf("delete redirect = %q", rr.Header().Get("HX-Redirect"))
	}
	if _, err := f.gateway.Get(context.Background(), 2); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("record still present: %v", err)
	}
	if got := f.audit.entries[len(f.audit.entries)-1]; got.Action != webstorage.ActionDelete || got.Summary != "Broca" {
		t.Fatalf("audit entry = %+v", got)
	}
}

func multipartUpload(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("archivo", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return htmx(req, "modal")
}

func TestUploadStoresSniffedFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	rr := f.do(multipartUpload(t, widgetsPrefix+"1/foto", "mi foto.png", png))
	if rr.Header().Get("HX-Redirect") != widgetsPrefix {
		t.Fatalf("upload = %d %q", rr.Code, rr.Body.String())
	}
	if len(f.files.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(f.files.puts))
	}
	obj := f.files.puts[0]
	if obj.Resource != "widgets" || obj.ID != 1 || obj.Field != "foto" || obj.ContentType != "image/png" || obj.Name != "mi-foto.png" {
		t.Fatalf("object = %+v", obj)
	}
	if got := f.audit.entries[0].Action; got != webstorage.ActionUpload {
		t.Fatalf("audit action = %q", got)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(multipartUpload(t, widgetsPrefix+"1/foto", "notas.txt", []byte("solo texto")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), `role="alert"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if len(f.files.puts) != 0 {
		t.Fatalf("puts = %d, want 0", len(f.files.puts))
	}
}

func TestUnwiredGatewayReportsUnavailable(t *testing.T) {
	t.Parallel()

	var gateway Gateway[widget]
	if Healthy(gateway) {
		t.Fatal("Healthy(nil) = true")
	}
	if Healthy[widget](unavailableGateway[widget]{}) {
		t.Fatal("Healthy(unavailable) = true")
	}
	if !Healthy[widget](newFakeGateway()) {
		t.Fatal("Healthy(fake) = false")
	}

	mux := http.NewServeMux()
	if err := Register(mux, Deps{Base: modulehandler.NewTestBase()}, widgetDefinition(nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, widgetsPrefix, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestFormReaderRecordsParseProblems(t *testing.T) {
	t.Parallel()

	form := NewFormReader(url.Values{
		"monto": {"12,5"},
		"plazo": {"doce"},
		"fecha": {"2024-13-40"},
		"ref":   {"-3"},
		"ok":    {"on"},
	})
	if got := form.Decimal("monto"); got != 12.5 {
		t.Fatalf("Decimal() = %v, want 12.5", got)
	}
	_ = form.Int("plazo")
	_ = form.Date("fecha")
	if form.Ref("ref") != nil {
		t.Fatal("Ref() for negative id should be nil")
	}
	if !form.Bool("ok") || form.Bool("missing") {
		t.Fatal("Bool() mismatch")
	}
	want := map[string]string{"plazo": "core.validation.number", "fecha": "core.validation.date", "ref": "core.validation.choice"}
	if diff := cmp.Diff(want, map[string]string(form.Problems())); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}
