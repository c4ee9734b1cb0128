package cli

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

type totalsOutput struct {
	Mode    string            `json:"mode"`
	Lines   []dte.PayloadLine `json:"lines"`
	Totals  dte.PayloadTotals `json:"totals"`
	InWords string            `json:"in_words"`
}

func newTotalsCommand(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Calcula líneas y totales de un documento",
		Long: `Lee un arreglo JSON de líneas (description, kind, quantity, unit_price, discount)
y devuelve base, IVA y total por línea y del documento.

En modo exclusive el precio unitario es la base; en inclusive trae el IVA incluido.`,
		Example: `  dtectl totals --mode exclusive --file lines.json
  dtectl totals --mode inclusive --file lines.json --no-vat`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTotals(cmd, log.With().Str("component", "totals").Logger())
		},
	}
	cmd.Flags().String("mode", "exclusive", "Modo de cálculo: exclusive | inclusive")
	cmd.Flags().String("file", "", "Archivo JSON con las líneas")
	cmd.Flags().Bool("no-vat", false, "El tipo de documento no liquida IVA (ej. sujeto excluido)")
	return cmd
}

func runTotals(cmd *cobra.Command, log zerolog.Logger) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	path, _ := cmd.Flags().GetString("file")
	noVAT, _ := cmd.Flags().GetBool("no-vat")

	mode, err := dte.ParseMode(strings.ToLower(strings.TrimSpace(modeFlag)))
	if err != nil {
		return err
	}
	rate, err := vatRate(cmd)
	if err != nil {
		return err
	}
	var in []dto.LineRequest
	if err := readJSON(path, &in); err != nil {
		return err
	}
	if len(in) == 0 {
		return domain.NewValidationError("lines", "debe incluir al menos una línea")
	}

	calc := dte.NewCalculator(rate)
	lines := make([]entity.LineItem, 0, len(in))
	var errs domain.ValidationErrors
	for i, l := range in {
		item, err := calc.Line(mode, !noVAT, i+1, dte.LineInput{
			ItemCode:    l.ItemCode,
			Description: strings.TrimSpace(l.Description),
			Kind:        entity.LineKind(strings.ToUpper(strings.TrimSpace(l.Kind))),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
		})
		var list domain.ValidationErrors
		switch {
		case errors.As(err, &list):
			errs = append(errs, list...)
			continue
		case err != nil:
			errs = append(errs, err)
			continue
		}
		lines = append(lines, item)
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	totals := dte.Aggregate(lines)
	out := totalsOutput{
		Mode:  mode.String(),
		Lines: make([]dte.PayloadLine, 0, len(lines)),
		Totals: dte.PayloadTotals{
			Taxable:    totals.Taxable,
			Exempt:     totals.Exempt,
			NonSubject: totals.NonSubject,
			VAT:        totals.VAT,
			Total:      totals.Total,
		},
		InWords: mh.AmountInWords(totals.Total),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dte.PayloadLine{
			LineNumber:  l.LineNumber,
			Description: l.Description,
			Kind:        l.Kind,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			TaxableBase: l.TaxableBase,
			VATAmount:   l.VATAmount,
		})
	}

	log.Debug().Int("lines", len(lines)).Str("mode", mode.String()).Str("total", totals.Total.StringFixed(2)).Msg("totales calculados")
	return writeJSON(cmd.OutOrStdout(), out)
}

func newVATCommand(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Desglosa un monto en base e IVA",
		Example: `  dtectl vat --mode exclusive --amount 100
  dtectl vat --mode inclusive --amount 113`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modeFlag, _ := cmd.Flags().GetString("mode")
			amountFlag, _ := cmd.Flags().GetString("amount")

			mode, err := dte.ParseMode(strings.ToLower(strings.TrimSpace(modeFlag)))
			if err != nil {
				return err
			}
			rate, err := vatRate(cmd)
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", amountFlag)
			if err != nil {
				return err
			}
			split, err := dte.NewCalculator(rate).Split(mode, amount)
			if err != nil {
				return err
			}
			log.Debug().Str("component", "vat").Str("mode", mode.String()).Msg("desglose calculado")
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"mode":     mode.String(),
				"base":     split.Base,
				"vat":      split.VAT,
				"total":    split.Total,
				"in_words": mh.AmountInWords(split.Total),
			})
		},
	}
	cmd.Flags().String("mode", "exclusive", "Modo de cálculo: exclusive | inclusive")
	cmd.Flags().String("amount", "", "Base (exclusive) o total con IVA (inclusive)")
	return cmd
}
