// Package cli comandos de dtectl: cálculos fiscales fuera de línea sobre archivos JSON,
// sin base de datos ni conexión con el servicio de recepción.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
)

var version = "1.0.0"

// NewRootCommand arma el árbol de comandos. log recibe la traza de cada comando;
// la salida de resultados va siempre a cmd.OutOrStdout() en JSON.
func NewRootCommand(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "dtectl",
		Short: "Herramientas de cálculo para documentos tributarios electrónicos",
		Long: `dtectl ejecuta las reglas fiscales del emisor sobre archivos locales:
desglose de IVA, totales de un documento, regla de antigüedad de compras
y conciliación de comprobantes de retención.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("vat-rate", dte.DefaultVATRate.String(), "Tasa de IVA")

	root.AddCommand(
		newTotalsCommand(log),
		newVATCommand(log),
		newPurchaseCheckCommand(log),
		newReconcileCommand(log),
	)
	return root
}

// Execute punto de entrada de cmd/dtectl.
func Execute(log zerolog.Logger) {
	if err := NewRootCommand(log).Execute(); err != nil {
		log.Error().Err(err).Msg("ejecución de comando fallida")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func vatRate(cmd *cobra.Command) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString("vat-rate")
	rate, err := decimal.NewFromString(s)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("--vat-rate inválida: %q", s)
	}
	return rate, nil
}

func readJSON(path string, v any) error {
	if path == "" {
		return fmt.Errorf("--file es requerido")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s no es JSON válido: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
