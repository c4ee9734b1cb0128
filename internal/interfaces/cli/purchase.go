package cli

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	domainpurchase "github.com/jhoicas/facturacion-sv/internal/domain/purchase"
)

func newPurchaseCheckCommand(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase-check",
		Short: "Evalúa la antigüedad de una compra respecto al período",
		Long: `Aplica la regla de antigüedad del crédito fiscal: un comprobante con IVA cuyo
plazo desde la emisión hasta el cierre del período supera la ventana se registra
como no deducible.`,
		Example: `  dtectl purchase-check --period 2024-05 --emitted 2024-02-01 --type 03
  dtectl purchase-check --period 2024-05 --emitted 2024-02-26 --type 03 --today 2024-06-05`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPurchaseCheck(cmd, log.With().Str("component", "purchase-check").Logger())
		},
	}
	cmd.Flags().String("period", "", "Período de trabajo YYYY-MM")
	cmd.Flags().String("emitted", "", "Fecha de emisión del comprobante YYYY-MM-DD")
	cmd.Flags().String("type", "03", "Tipo de documento (CAT-002)")
	cmd.Flags().String("today", "", "Fecha de referencia YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().Int("window", domainpurchase.DefaultWindowDays, "Días máximos para deducir")
	return cmd
}

func runPurchaseCheck(cmd *cobra.Command, log zerolog.Logger) error {
	period, _ := cmd.Flags().GetString("period")
	emitted, _ := cmd.Flags().GetString("emitted")
	docType, _ := cmd.Flags().GetString("type")
	today, _ := cmd.Flags().GetString("today")
	window, _ := cmd.Flags().GetInt("window")

	var errs domain.ValidationErrors
	emission, err := time.Parse(dte.DateLayout, strings.TrimSpace(emitted))
	if err != nil {
		errs = append(errs, domain.NewValidationError("emitted", "formato esperado YYYY-MM-DD"))
	}
	now := time.Now
	if s := strings.TrimSpace(today); s != "" {
		ref, err := time.Parse(dte.DateLayout, s)
		if err != nil {
			errs = append(errs, domain.NewValidationError("today", "formato esperado YYYY-MM-DD"))
		}
		now = func() time.Time { return ref }
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	out, err := domainpurchase.NewEvaluator(window, now).Evaluate(strings.TrimSpace(period), emission, strings.TrimSpace(docType))
	if err != nil {
		return err
	}
	resp := dto.PurchaseResponse{
		OriginalDocumentType: out.OriginalType,
		DocumentType:         out.EffectiveType,
		Deductibility:        string(out.State),
		DaysElapsed:          out.DaysElapsed,
		Reclassified:         out.Reclassified,
		Total:                decimal.Zero,
		Warnings:             make([]dto.WarningDTO, 0, len(out.Warnings)),
	}
	for _, w := range out.Warnings {
		resp.Warnings = append(resp.Warnings, dto.WarningDTO{Code: w.Code, Message: w.Message, Days: w.Days})
		log.Warn().Str("code", w.Code).Int("days", w.Days).Msg(w.Message)
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "debe ser un monto decimal")
	}
	return d, nil
}
