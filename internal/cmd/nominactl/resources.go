package nominactl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/schemas"
)

// resourceCommand is one backend collection exposed by the CLI.
type resourceCommand interface {
	name() string
	command(a *app) *cobra.Command
	fetchAll(ctx context.Context, services backend.Services) (any, error)
}

type resource[T any] struct {
	use     string
	short   string
	schema  listing.Schema[T]
	source  func(backend.Services) backend.Resource[T]
	headers []string
	row     func(T) []string
}

func (r resource[T]) name() string { return r.use }

func (r resource[T]) fetchAll(ctx context.Context, services backend.Services) (any, error) {
	items, err := r.source(services).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.use, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r resource[T]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.use,
		Short: r.short,
	}
	cmd.AddCommand(r.listCommand(a), r.getCommand(a))
	return cmd
}

func (r resource[T]) listCommand(a *app) *cobra.Command {
	var (
		query  listing.Query
		output string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + r.use + " with search, AIP-160 filter, and AIP-132 ordering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := normalizeFormat(output, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			services, err := a.backend()
			if err != nil {
				return err
			}
			items, err := r.source(services).List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list %s: %w", r.use, err)
			}
			page, err := listing.Apply(r.schema, items, query)
			if err != nil {
				return err
			}
			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, listOutput[T]{
					Items:     nonNil(page.Items),
					Total:     page.Total,
					Page:      page.Page,
					PageSize:  page.PageSize,
					PageCount: page.PageCount,
				})
			}
			rows := make([][]string, 0, len(page.Items))
			for _, item := range page.Items {
				rows = append(rows, r.row(item))
			}
			if err := writeTable(cmd.OutOrStdout(), r.headers, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d/%d, %d total\n", page.Page, max(page.PageCount, 1), page.Total)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&query.Search, "q", "", "Free-text search")
	flags.StringVar(&query.Filter, "filter", "", `AIP-160 filter, for example 'estado = "activo"'`)
	flags.StringVar(&query.OrderBy, "order-by", "", "AIP-132 ordering, for example 'fecha desc'")
	flags.IntVar(&query.Page, "page", 1, "Page number")
	flags.IntVar(&query.PageSize, "page-size", 0, "Items per page")
	flags.StringVarP(&output, "output", "o", formatTable, "Output format: table, json, or yaml")
	return cmd
}

func (r resource[T]) getCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record of " + r.use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := normalizeFormat(output, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			recordID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || recordID <= 0 {
				return fmt.Errorf("id %q must be a positive integer", args[0])
			}
			services, err := a.backend()
			if err != nil {
				return err
			}
			item, err := r.source(services).Get(cmd.Context(), recordID)
			if err != nil {
				return fmt.Errorf("get %s %d: %w", r.use, recordID, err)
			}
			if format == formatTable {
				return writeTable(cmd.OutOrStdout(), r.headers, [][]string{r.row(item)})
			}
			return writeStructured(cmd.OutOrStdout(), format, item)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatYAML, "Output format: table, json, or yaml")
	return cmd
}

type listOutput[T any] struct {
	Items     []T `json:"items" yaml:"items"`
	Total     int `json:"total" yaml:"total"`
	Page      int `json:"page" yaml:"page"`
	PageSize  int `json:"page_size" yaml:"page_size"`
	PageCount int `json:"page_count" yaml:"page_count"`
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func resources() []resourceCommand {
	return []resourceCommand{
		resource[domain.Empleado]{
			use:     backend.ResourceEmpleados,
			short:   "Employees",
			schema:  schemas.Empleados,
			source:  func(s backend.Services) backend.Resource[domain.Empleado] { return s.Empleados },
			headers: []string{"ID", "DOCUMENTO", "NOMBRE", "EMAIL", "CARGO", "INGRESO", "ESTADO"},
			row: func(e domain.Empleado) []string {
				return []string{id(e.ID), e.TipoDocumento + " " + e.Documento, e.NombreCompleto(), dash(e.Email), id(domain.ID(e.Cargo)), dash(e.FechaIngreso.String()), e.Estado}
			},
		},
		resource[domain.Cargo]{
			use:     backend.ResourceCargos,
			short:   "Job positions",
			schema:  schemas.Cargos,
			source:  func(s backend.Services) backend.Resource[domain.Cargo] { return s.Cargos },
			headers: []string{"ID", "NOMBRE", "SALARIO BASE", "ACTIVO"},
			row: func(c domain.Cargo) []string {
				return []string{id(c.ID), c.Nombre, money(c.SalarioBase.Float()), strconv.FormatBool(c.Activo)}
			},
		},
		resource[domain.Contrato]{
			use:     backend.ResourceContratos,
			short:   "Employment contracts",
			schema:  schemas.Contratos,
			source:  func(s backend.Services) backend.Resource[domain.Contrato] { return s.Contratos },
			headers: []string{"ID", "EMPLEADO", "TIPO", "INICIO", "FIN", "SALARIO", "ESTADO"},
			row: func(c domain.Contrato) []string {
				return []string{id(c.ID), id(c.Empleado), c.TipoContrato, dash(c.FechaInicio.String()), dash(c.FechaFin.String()), money(c.Salario.Float()), c.Estado}
			},
		},
		resource[domain.Prestamo]{
			use:     backend.ResourcePrestamos,
			short:   "Employee loans",
			schema:  schemas.Prestamos,
			source:  func(s backend.Services) backend.Resource[domain.Prestamo] { return s.Prestamos },
			headers: []string{"ID", "EMPLEADO", "MONTO", "TASA %", "PLAZO", "CUOTA", "SALDO", "ESTADO"},
			row: func(p domain.Prestamo) []string {
				return []string{id(p.ID), id(p.Empleado), money(p.Monto.Float()), p.TasaInteres.String(), strconv.Itoa(p.PlazoMeses), money(p.CuotaMensual.Float()), money(p.Saldo.Float()), p.Estado}
			},
		},
		resource[domain.Comprobante]{
			use:     backend.ResourceComprobantes,
			short:   "Accounting vouchers",
			schema:  schemas.Comprobantes,
			source:  func(s backend.Services) backend.Resource[domain.Comprobante] { return s.Comprobantes },
			headers: []string{"ID", "NUMERO", "TIPO", "FECHA", "TERCERO", "DEBITO", "CREDITO", "ESTADO"},
			row: func(c domain.Comprobante) []string {
				return []string{id(c.ID), c.Numero, c.Tipo, dash(c.Fecha.String()), dash(c.Tercero), money(c.TotalDebito.Float()), money(c.TotalCredito.Float()), c.Estado}
			},
		},
		resource[domain.Cuenta]{
			use:     backend.ResourceCuentas,
			short:   "Ledger accounts",
			schema:  schemas.Cuentas,
			source:  func(s backend.Services) backend.Resource[domain.Cuenta] { return s.Cuentas },
			headers: []string{"ID", "CODIGO", "NOMBRE", "NATURALEZA", "NIVEL", "ACTIVA"},
			row: func(c domain.Cuenta) []string {
				return []string{id(c.ID), c.Codigo, c.Nombre, c.Naturaleza, strconv.Itoa(c.Nivel), strconv.FormatBool(c.Activa)}
			},
		},
		resource[domain.MovimientoCaja]{
			use:     backend.ResourceFlujoCaja,
			short:   "Cash-flow entries",
			schema:  schemas.FlujoCaja,
			source:  func(s backend.Services) backend.Resource[domain.MovimientoCaja] { return s.FlujoCaja },
			headers: []string{"ID", "FECHA", "TIPO", "CONCEPTO", "VALOR", "CUENTA"},
			row: func(m domain.MovimientoCaja) []string {
				return []string{id(m.ID), dash(m.Fecha.String()), m.Tipo, m.Concepto, money(m.Signed().Float()), id(domain.ID(m.Cuenta))}
			},
		},
		resource[domain.Departamento]{
			use:     backend.ResourceDepartamentos,
			short:   "Departments",
			schema:  schemas.Departamentos,
			source:  func(s backend.Services) backend.Resource[domain.Departamento] { return s.Departamentos },
			headers: []string{"ID", "CODIGO", "NOMBRE"},
			row: func(d domain.Departamento) []string {
				return []string{id(d.ID), d.Codigo, d.Nombre}
			},
		},
		resource[domain.Municipio]{
			use:     backend.ResourceMunicipios,
			short:   "Municipalities",
			schema:  schemas.Municipios,
			source:  func(s backend.Services) backend.Resource[domain.Municipio] { return s.Municipios },
			headers: []string{"ID", "CODIGO", "NOMBRE", "DEPARTAMENTO"},
			row: func(m domain.Municipio) []string {
				return []string{id(m.ID), m.Codigo, m.Nombre, id(m.Departamento)}
			},
		},
	}
}
