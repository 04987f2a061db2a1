package nominactl

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nominaweb/nominaweb/internal/domain"
)

func simularCommand() *cobra.Command {
	var (
		monto, tasa string
		plazo       int
		output      string
	)
	cmd := &cobra.Command{
		Use:   "simular",
		Short: "Print the amortization schedule of a prospective loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := normalizeFormat(output, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			montoValue, err := domain.ParseDecimal(monto)
			if err != nil {
				return fmt.Errorf("--monto: %w", err)
			}
			tasaValue, err := domain.ParseDecimal(tasa)
			if err != nil {
				return fmt.Errorf("--tasa: %w", err)
			}
			sim, err := domain.Simular(montoValue.Float(), tasaValue.Float(), plazo)
			if err != nil {
				return fmt.Errorf("invalid loan terms: %w", err)
			}
			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, sim)
			}
			rows := make([][]string, 0, len(sim.Tabla))
			for _, cuota := range sim.Tabla {
				rows = append(rows, []string{strconv.Itoa(cuota.Numero), money(cuota.Cuota), money(cuota.Interes), money(cuota.Abono), money(cuota.Saldo)})
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"#", "CUOTA", "INTERES", "ABONO", "SALDO"}, rows); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\ncuota mensual: %s\n", money(sim.CuotaMensual))
			fmt.Fprintf(out, "total pagado:  %s\n", money(sim.TotalPagado))
			fmt.Fprintf(out, "total interes: %s\n", money(sim.TotalInteres))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&monto, "monto", "", "Loan amount, for example 5000000 or 5.000.000,00")
	flags.StringVar(&tasa, "tasa", "0", "Monthly interest rate in percent")
	flags.IntVar(&plazo, "plazo", 12, "Term in months")
	flags.StringVarP(&output, "output", "o", formatTable, "Output format: table, json, or yaml")
	_ = cmd.MarkFlagRequired("monto")
	return cmd
}
