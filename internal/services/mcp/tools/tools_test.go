package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

type fakeList[T any] struct {
	items []T
	err   error
}

func (f fakeList[T]) List(context.Context) ([]T, error) { return f.items, f.err }

type fakeEmpleados struct {
	fakeList[domain.Empleado]
	getErr error
}

func (f fakeEmpleados) Get(_ context.Context, id int64) (domain.Empleado, error) {
	if f.getErr != nil {
		return domain.Empleado{}, f.getErr
	}
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Empleado{}, apperrors.E(apperrors.KindNotFound, "empleado not found")
}

func empleados() fakeEmpleados {
	return fakeEmpleados{fakeList: fakeList[domain.Empleado]{items: []domain.Empleado{
		{ID: 1, TipoDocumento: "CC", Documento: "100", Nombres: "Ana", Apellidos: "Gómez", Estado: domain.EstadoActivo, FechaIngreso: domain.NewDate(2022, 3, 1), Cargo: domain.Ref(4)},
		{ID: 2, TipoDocumento: "CC", Documento: "200", Nombres: "Luis", Apellidos: "Pérez", Estado: domain.EstadoInactivo},
		{ID: 3, TipoDocumento: "CE", Documento: "300", Nombres: "Marta", Apellidos: "Ruiz", Estado: domain.EstadoActivo},
	}}}
}

func TestEmpleadosListFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	handler := EmpleadosListHandler(empleados())
	_, got, err := handler(context.Background(), nil, ListInput{Filter: `estado = "activo"`, OrderBy: "apellidos desc", PageSize: 1})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got.Total != 2 || got.PageCount != 2 || got.Page != 1 {
		t.Fatalf("page = %+v, want total 2 over 2 pages", got)
	}
	if len(got.Items) != 1 || got.Items[0].Nombre != "Marta Ruiz" {
		t.Fatalf("items = %+v, want Marta Ruiz first", got.Items)
	}
}

func TestEmpleadosListRejectsBadFilter(t *testing.T) {
	t.Parallel()

	handler := EmpleadosListHandler(empleados())
	if _, _, err := handler(context.Background(), nil, ListInput{Filter: `salario > 10`}); err == nil {
		t.Fatal("expected error for unknown filter field")
	}
}

func TestListHandlersReportMissingBackend(t *testing.T) {
	t.Parallel()

	if _, _, err := EmpleadosListHandler(nil)(context.Background(), nil, ListInput{}); err == nil {
		t.Fatal("empleados_list: expected error without backend")
	}
	if _, _, err := ContratosListHandler(nil)(context.Background(), nil, ListInput{}); err == nil {
		t.Fatal("contratos_list: expected error without backend")
	}
	if _, _, err := EmpleadoGetHandler(nil)(context.Background(), nil, EmpleadoGetInput{ID: 1}); err == nil {
		t.Fatal("empleado_get: expected error without backend")
	}
}

func TestEmpleadoGet(t *testing.T) {
	t.Parallel()

	handler := EmpleadoGetHandler(empleados())
	_, got, err := handler(context.Background(), nil, EmpleadoGetInput{ID: 1})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	want := EmpleadoResult{
		ID: 1, TipoDocumento: "CC", Documento: "100", Nombre: "Ana Gómez",
		Cargo: 4, Estado: domain.EstadoActivo, FechaIngreso: "2022-03-01",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empleado mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := handler(context.Background(), nil, EmpleadoGetInput{ID: 0}); err == nil {
		t.Fatal("expected error for id 0")
	}
	_, _, err = handler(context.Background(), nil, EmpleadoGetInput{ID: 99})
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("missing empleado error = %v, want not found", err)
	}
}

func TestContratosAndPrestamosList(t *testing.T) {
	t.Parallel()

	contratos := fakeList[domain.Contrato]{items: []domain.Contrato{
		{ID: 1, Empleado: 1, TipoContrato: domain.ContratoFijo, Estado: domain.ContratoVigente, Salario: 2500000, FechaInicio: domain.NewDate(2024, 1, 1)},
		{ID: 2, Empleado: 2, TipoContrato: domain.ContratoIndefinido, Estado: domain.ContratoFinalizado, Salario: 3000000, FechaInicio: domain.NewDate(2020, 1, 1)},
	}}
	_, gotContratos, err := ContratosListHandler(contratos)(context.Background(), nil, ListInput{Filter: `estado = "vigente"`})
	if err != nil {
		t.Fatalf("contratos error = %v", err)
	}
	if gotContratos.Total != 1 || gotContratos.Items[0].Salario != 2500000 || gotContratos.Items[0].FechaInicio != "2024-01-01" {
		t.Fatalf("contratos = %+v", gotContratos)
	}

	prestamos := fakeList[domain.Prestamo]{err: errors.New("backend down")}
	if _, _, err := PrestamosListHandler(prestamos)(context.Background(), nil, ListInput{}); err == nil {
		t.Fatal("expected prestamos backend error")
	}
}

func TestPrestamoSimular(t *testing.T) {
	t.Parallel()

	handler := PrestamoSimularHandler()
	_, got, err := handler(context.Background(), nil, SimularInput{Monto: 1200000, TasaInteres: 0, PlazoMeses: 12})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got.CuotaMensual != 100000 || len(got.Tabla) != 12 || got.TotalInteres != 0 {
		t.Fatalf("simulacion = %+v", got)
	}
	if got.Tabla[11].Saldo != 0 {
		t.Fatalf("final saldo = %v, want 0", got.Tabla[11].Saldo)
	}

	_, _, err = handler(context.Background(), nil, SimularInput{Monto: 0, TasaInteres: 1, PlazoMeses: 12})
	if !apperrors.Is(err, apperrors.KindInvalidInput) {
		t.Fatalf("invalid simulation error = %v, want invalid input", err)
	}
}

func TestFlujoCajaResumenRange(t *testing.T) {
	t.Parallel()

	source := fakeList[domain.MovimientoCaja]{items: []domain.MovimientoCaja{
		{ID: 1, Fecha: domain.NewDate(2025, 1, 5), Tipo: domain.MovimientoIngreso, Valor: 1000},
		{ID: 2, Fecha: domain.NewDate(2025, 1, 20), Tipo: domain.MovimientoEgreso, Valor: 250.5},
		{ID: 3, Fecha: domain.NewDate(2025, 2, 3), Tipo: domain.MovimientoIngreso, Valor: 400},
		{ID: 4, Fecha: domain.NewDate(2025, 3, 1), Tipo: domain.MovimientoEgreso, Valor: 90},
	}}
	handler := FlujoCajaResumenHandler(source)
	_, got, err := handler(context.Background(), nil, ResumenInput{Desde: "2025-01-01", Hasta: "2025-02-28"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	want := ResumenResult{
		Movimientos: 3,
		Ingresos:    1400,
		Egresos:     250.5,
		Saldo:       1149.5,
		Meses: []MesResult{
			{Mes: "2025-01", Ingresos: 1000, Egresos: 250.5, Saldo: 749.5},
			{Mes: "2025-02", Ingresos: 400, Egresos: 0, Saldo: 400},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resumen mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := handler(context.Background(), nil, ResumenInput{Desde: "2025-03-01", Hasta: "2025-01-01"}); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, _, err := handler(context.Background(), nil, ResumenInput{Desde: "ayer"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestFlujoCajaResumenFilter(t *testing.T) {
	t.Parallel()

	source := fakeList[domain.MovimientoCaja]{items: []domain.MovimientoCaja{
		{ID: 1, Fecha: domain.NewDate(2025, 1, 5), Tipo: domain.MovimientoIngreso, Valor: 1000, Categoria: "ventas"},
		{ID: 2, Fecha: domain.NewDate(2025, 1, 6), Tipo: domain.MovimientoIngreso, Valor: 300, Categoria: "otros"},
	}}
	_, got, err := FlujoCajaResumenHandler(source)(context.Background(), nil, ResumenInput{Filter: `categoria = "ventas"`})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got.Movimientos != 1 || got.Ingresos != 1000 {
		t.Fatalf("resumen = %+v", got)
	}
}
