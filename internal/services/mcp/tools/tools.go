// Package tools defines the read-only MCP tools over the HR and accounting
// backend: tool schemas, input and result shapes, and handlers.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/schemas"
)

// Lister loads a whole backend collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// EmpleadoSource lists and loads employees.
type EmpleadoSource interface {
	Lister[domain.Empleado]
	Get(ctx context.Context, id int64) (domain.Empleado, error)
}

// Sources groups the collections the tools read.
type Sources struct {
	Empleados EmpleadoSource
	Contratos Lister[domain.Contrato]
	Prestamos Lister[domain.Prestamo]
	FlujoCaja Lister[domain.MovimientoCaja]
}

// ListInput is the shared input of list tools.
type ListInput struct {
	Q        string `json:"q,omitempty" jsonschema:"free-text search over the searchable fields"`
	Filter   string `json:"filter,omitempty" jsonschema:"AIP-160 filter, for example estado = \"activo\""`
	OrderBy  string `json:"order_by,omitempty" jsonschema:"AIP-132 order, for example fecha_ingreso desc"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"items per page"`
}

func (in ListInput) query() listing.Query {
	return listing.Query{
		Search:   strings.TrimSpace(in.Q),
		Filter:   strings.TrimSpace(in.Filter),
		OrderBy:  strings.TrimSpace(in.OrderBy),
		Page:     in.Page,
		PageSize: in.PageSize,
	}
}

// ListResult is one page of a list tool.
type ListResult[R any] struct {
	Items     []R `json:"items" jsonschema:"records on this page"`
	Total     int `json:"total" jsonschema:"records matching the query"`
	Page      int `json:"page" jsonschema:"current page"`
	PageSize  int `json:"page_size" jsonschema:"items per page"`
	PageCount int `json:"page_count" jsonschema:"total pages"`
}

// EmpleadoResult is an employee as returned by the tools.
type EmpleadoResult struct {
	ID            int64  `json:"id"`
	TipoDocumento string `json:"tipo_documento"`
	Documento     string `json:"documento"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Cargo         int64  `json:"cargo,omitempty" jsonschema:"cargo id, 0 when unset"`
	Municipio     int64  `json:"municipio,omitempty" jsonschema:"municipio id, 0 when unset"`
	Estado        string `json:"estado" jsonschema:"activo or inactivo"`
	FechaIngreso  string `json:"fecha_ingreso" jsonschema:"YYYY-MM-DD"`
}

// ContratoResult is a contract as returned by the tools.
type ContratoResult struct {
	ID           int64   `json:"id"`
	Empleado     int64   `json:"empleado"`
	Cargo        int64   `json:"cargo,omitempty"`
	TipoContrato string  `json:"tipo_contrato"`
	FechaInicio  string  `json:"fecha_inicio" jsonschema:"YYYY-MM-DD"`
	FechaFin     string  `json:"fecha_fin,omitempty" jsonschema:"YYYY-MM-DD, empty for open-ended contracts"`
	Salario      float64 `json:"salario"`
	Estado       string  `json:"estado"`
}

// PrestamoResult is a loan as returned by the tools.
type PrestamoResult struct {
	ID              int64   `json:"id"`
	Empleado        int64   `json:"empleado"`
	Monto           float64 `json:"monto"`
	TasaInteres     float64 `json:"tasa_interes" jsonschema:"monthly rate in percent"`
	PlazoMeses      int     `json:"plazo_meses"`
	CuotaMensual    float64 `json:"cuota_mensual"`
	Saldo           float64 `json:"saldo"`
	FechaDesembolso string  `json:"fecha_desembolso,omitempty"`
	Estado          string  `json:"estado"`
}

func empleadoResult(e domain.Empleado) EmpleadoResult {
	return EmpleadoResult{
		ID:            e.ID,
		TipoDocumento: e.TipoDocumento,
		Documento:     e.Documento,
		Nombre:        e.NombreCompleto(),
		Email:         e.Email,
		Telefono:      e.Telefono,
		Cargo:         domain.ID(e.Cargo),
		Municipio:     domain.ID(e.Municipio),
		Estado:        e.Estado,
		FechaIngreso:  e.FechaIngreso.String(),
	}
}

func contratoResult(c domain.Contrato) ContratoResult {
	return ContratoResult{
		ID:           c.ID,
		Empleado:     c.Empleado,
		Cargo:        domain.ID(c.Cargo),
		TipoContrato: c.TipoContrato,
		FechaInicio:  c.FechaInicio.String(),
		FechaFin:     c.FechaFin.String(),
		Salario:      domain.Round2(c.Salario.Float()),
		Estado:       c.Estado,
	}
}

func prestamoResult(p domain.Prestamo) PrestamoResult {
	return PrestamoResult{
		ID:              p.ID,
		Empleado:        p.Empleado,
		Monto:           domain.Round2(p.Monto.Float()),
		TasaInteres:     p.TasaInteres.Float(),
		PlazoMeses:      p.PlazoMeses,
		CuotaMensual:    domain.Round2(p.CuotaMensual.Float()),
		Saldo:           domain.Round2(p.Saldo.Float()),
		FechaDesembolso: p.FechaDesembolso.String(),
		Estado:          p.Estado,
	}
}

func readOnly(name, description string) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}
}

// listHandler loads the collection, then applies search, filter, order, and
// pagination locally.
func listHandler[T any, R any](name string, schema listing.Schema[T], source Lister[T], convert func(T) R) mcp.ToolHandlerFor[ListInput, ListResult[R]] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListResult[R], error) {
		if source == nil {
			return nil, ListResult[R]{}, fmt.Errorf("%s: backend is not configured", name)
		}
		items, err := source.List(ctx)
		if err != nil {
			return nil, ListResult[R]{}, fmt.Errorf("%s: %w", name, err)
		}
		page, err := listing.Apply(schema, items, input.query())
		if err != nil {
			return nil, ListResult[R]{}, fmt.Errorf("%s: %w", name, err)
		}
		result := ListResult[R]{
			Items:     make([]R, 0, len(page.Items)),
			Total:     page.Total,
			Page:      page.Page,
			PageSize:  page.PageSize,
			PageCount: page.PageCount,
		}
		for _, item := range page.Items {
			result.Items = append(result.Items, convert(item))
		}
		return nil, result, nil
	}
}

// EmpleadosListTool defines the employee list tool.
func EmpleadosListTool() *mcp.Tool {
	return readOnly("empleados_list", "Lists employees with optional search, AIP-160 filter, order_by, and pagination.")
}

// EmpleadosListHandler lists employees.
func EmpleadosListHandler(source EmpleadoSource) mcp.ToolHandlerFor[ListInput, ListResult[EmpleadoResult]] {
	var lister Lister[domain.Empleado]
	if source != nil {
		lister = source
	}
	return listHandler("empleados_list", schemas.Empleados, lister, empleadoResult)
}

// EmpleadoGetInput identifies one employee.
type EmpleadoGetInput struct {
	ID int64 `json:"id" jsonschema:"employee id"`
}

// EmpleadoGetTool defines the employee lookup tool.
func EmpleadoGetTool() *mcp.Tool {
	return readOnly("empleado_get", "Returns one employee by id.")
}

// EmpleadoGetHandler loads one employee.
func EmpleadoGetHandler(source EmpleadoSource) mcp.ToolHandlerFor[EmpleadoGetInput, EmpleadoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EmpleadoGetInput) (*mcp.CallToolResult, EmpleadoResult, error) {
		if input.ID <= 0 {
			return nil, EmpleadoResult{}, fmt.Errorf("empleado_get: id must be positive")
		}
		if source == nil {
			return nil, EmpleadoResult{}, fmt.Errorf("empleado_get: backend is not configured")
		}
		empleado, err := source.Get(ctx, input.ID)
		if err != nil {
			return nil, EmpleadoResult{}, fmt.Errorf("empleado_get: %w", err)
		}
		return nil, empleadoResult(empleado), nil
	}
}

// ContratosListTool defines the contract list tool.
func ContratosListTool() *mcp.Tool {
	return readOnly("contratos_list", "Lists employment contracts with optional search, filter, order_by, and pagination.")
}

// ContratosListHandler lists contracts.
func ContratosListHandler(source Lister[domain.Contrato]) mcp.ToolHandlerFor[ListInput, ListResult[ContratoResult]] {
	return listHandler("contratos_list", schemas.Contratos, source, contratoResult)
}

// PrestamosListTool defines the loan list tool.
func PrestamosListTool() *mcp.Tool {
	return readOnly("prestamos_list", "Lists employee loans with optional search, filter, order_by, and pagination.")
}

// PrestamosListHandler lists loans.
func PrestamosListHandler(source Lister[domain.Prestamo]) mcp.ToolHandlerFor[ListInput, ListResult[PrestamoResult]] {
	return listHandler("prestamos_list", schemas.Prestamos, source, prestamoResult)
}

// SimularInput describes a prospective loan.
type SimularInput struct {
	Monto       float64 `json:"monto" jsonschema:"loan amount in pesos"`
	TasaInteres float64 `json:"tasa_interes" jsonschema:"monthly interest rate in percent"`
	PlazoMeses  int     `json:"plazo_meses" jsonschema:"term in months"`
}

// PrestamoSimularTool defines the amortization simulator tool.
func PrestamoSimularTool() *mcp.Tool {
	return readOnly("prestamo_simular", "Computes the fixed monthly installment and amortization schedule of a prospective loan.")
}

// PrestamoSimularHandler runs the simulator. It never calls the backend.
func PrestamoSimularHandler() mcp.ToolHandlerFor[SimularInput, domain.Simulacion] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SimularInput) (*mcp.CallToolResult, domain.Simulacion, error) {
		sim, err := domain.Simular(input.Monto, input.TasaInteres, input.PlazoMeses)
		if err != nil {
			return nil, domain.Simulacion{}, fmt.Errorf("prestamo_simular: %w", err)
		}
		return nil, sim, nil
	}
}

// ResumenInput narrows the cash-flow summary.
type ResumenInput struct {
	Desde  string `json:"desde,omitempty" jsonschema:"first date included, YYYY-MM-DD"`
	Hasta  string `json:"hasta,omitempty" jsonschema:"last date included, YYYY-MM-DD"`
	Filter string `json:"filter,omitempty" jsonschema:"AIP-160 filter over cash-flow entries"`
}

// MesResult totals one month.
type MesResult struct {
	Mes      string  `json:"mes" jsonschema:"YYYY-MM"`
	Ingresos float64 `json:"ingresos"`
	Egresos  float64 `json:"egresos"`
	Saldo    float64 `json:"saldo"`
}

// ResumenResult totals the selected cash-flow entries.
type ResumenResult struct {
	Movimientos int         `json:"movimientos" jsonschema:"entries included"`
	Ingresos    float64     `json:"ingresos"`
	Egresos     float64     `json:"egresos"`
	Saldo       float64     `json:"saldo"`
	Meses       []MesResult `json:"meses"`
}

// FlujoCajaResumenTool defines the cash-flow summary tool.
func FlujoCajaResumenTool() *mcp.Tool {
	return readOnly("flujo_caja_resumen", "Totals cash-flow ingresos and egresos overall and per month.")
}

// FlujoCajaResumenHandler summarizes cash-flow entries.
func FlujoCajaResumenHandler(source Lister[domain.MovimientoCaja]) mcp.ToolHandlerFor[ResumenInput, ResumenResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResumenInput) (*mcp.CallToolResult, ResumenResult, error) {
		desde, err := domain.ParseDate(input.Desde)
		if err != nil {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: desde: %w", err)
		}
		hasta, err := domain.ParseDate(input.Hasta)
		if err != nil {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: hasta: %w", err)
		}
		if !desde.IsZero() && !hasta.IsZero() && hasta.Before(desde) {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: hasta is before desde")
		}
		if source == nil {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: backend is not configured")
		}
		items, err := source.List(ctx)
		if err != nil {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: %w", err)
		}
		items, err = listing.Select(schemas.FlujoCaja, items, listing.Query{Filter: strings.TrimSpace(input.Filter)})
		if err != nil {
			return nil, ResumenResult{}, fmt.Errorf("flujo_caja_resumen: %w", err)
		}
		selected := make([]domain.MovimientoCaja, 0, len(items))
		for _, item := range items {
			if !desde.IsZero() && item.Fecha.Before(desde) {
				continue
			}
			if !hasta.IsZero() && item.Fecha.After(hasta) {
				continue
			}
			selected = append(selected, item)
		}
		resumen := domain.Resumir(selected)
		result := ResumenResult{
			Movimientos: len(selected),
			Ingresos:    resumen.Ingresos.Float(),
			Egresos:     resumen.Egresos.Float(),
			Saldo:       resumen.Saldo.Float(),
			Meses:       make([]MesResult, 0, len(resumen.Meses)),
		}
		for _, mes := range resumen.Meses {
			result.Meses = append(result.Meses, MesResult{
				Mes:      mes.Mes,
				Ingresos: mes.Ingresos.Float(),
				Egresos:  mes.Egresos.Float(),
				Saldo:    mes.Saldo.Float(),
			})
		}
		return nil, result, nil
	}
}
