package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	domainretention "github.com/jhoicas/facturacion-sv/internal/domain/retention"
)

// reconciliationFile comprobante, ventas candidatas y selección del operador.
type reconciliationFile struct {
	CertificateID   string          `json:"certificate_id"`
	CertificateDate string          `json:"certificate_date"`
	RetainedAmount  decimal.Decimal `json:"retained_amount"`
	Sales           []saleLine      `json:"sales"`
	SelectedSaleIDs []string        `json:"selected_sale_ids"`
	Justification   string          `json:"justification"`
}

type saleLine struct {
	ID           string          `json:"id"`
	EmissionDate string          `json:"emission_date"`
	DocumentType string          `json:"document_type"`
	TaxableBase  decimal.Decimal `json:"taxable_base"`
}

func newReconcileCommand(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Concilia un comprobante de retención contra ventas seleccionadas",
		Long: `Suma la retención esperada de las ventas seleccionadas y la compara con el monto
retenido. Si la diferencia supera la tolerancia se exige --justification
(o el campo justification del archivo).`,
		Example: `  dtectl reconcile --file reconciliation.json
  dtectl reconcile --file reconciliation.json --justification "redondeo del agente"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd, log.With().Str("component", "reconcile").Logger())
		},
	}
	cmd.Flags().String("file", "", "Archivo JSON de conciliación")
	cmd.Flags().String("justification", "", "Justificación cuando la diferencia supera la tolerancia")
	cmd.Flags().String("rate", domainretention.DefaultRate.String(), "Tasa de retención")
	cmd.Flags().String("tolerance", domainretention.DefaultTolerance.String(), "Tolerancia sin justificación")
	return cmd
}

func runReconcile(cmd *cobra.Command, log zerolog.Logger) error {
	path, _ := cmd.Flags().GetString("file")
	justification, _ := cmd.Flags().GetString("justification")
	rateFlag, _ := cmd.Flags().GetString("rate")
	toleranceFlag, _ := cmd.Flags().GetString("tolerance")

	var errs domain.ValidationErrors
	rate, err := parseAmount("rate", rateFlag)
	if err != nil {
		errs = append(errs, err)
	}
	tolerance, err := parseAmount("tolerance", toleranceFlag)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	var in reconciliationFile
	if err := readJSON(path, &in); err != nil {
		return err
	}
	if strings.TrimSpace(justification) == "" {
		justification = in.Justification
	}

	engine := domainretention.NewEngine(rate, tolerance)
	cert := &entity.RetentionCertificate{
		ID:             in.CertificateID,
		RetainedAmount: in.RetainedAmount,
		State:          entity.RetentionPending,
	}
	if s := strings.TrimSpace(in.CertificateDate); s != "" {
		d, err := time.Parse(dte.DateLayout, s)
		if err != nil {
			errs = append(errs, domain.NewValidationError("certificate_date", "formato esperado YYYY-MM-DD"))
		}
		cert.CertificateDate = d
	}

	candidates := make([]entity.SaleCandidate, 0, len(in.Sales))
	for i, s := range in.Sales {
		var emission time.Time
		if strings.TrimSpace(s.EmissionDate) != "" {
			d, err := time.Parse(dte.DateLayout, s.EmissionDate)
			if err != nil {
				errs = append(errs, domain.NewValidationError(fmt.Sprintf("sales[%d].emission_date", i), "formato esperado YYYY-MM-DD"))
			}
			emission = d
		}
		candidates = append(candidates, engine.Candidate(s.ID, emission, s.DocumentType, s.TaxableBase))
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	res, err := engine.Reconcile(cert, candidates, in.SelectedSaleIDs, justification, time.Now())
	if err != nil {
		return err
	}
	log.Info().
		Int("sales", len(res.MatchedSaleIDs)).
		Str("sum", res.Sum.StringFixed(2)).
		Str("diff", res.Diff.StringFixed(2)).
		Bool("justified", res.JustificationRequired).
		Msg("retención conciliada")

	return writeJSON(cmd.OutOrStdout(), dto.ReconcileResponse{
		CertificateID:         cert.ID,
		State:                 string(cert.State),
		MatchedSaleIDs:        res.MatchedSaleIDs,
		Sum:                   res.Sum,
		RetainedAmount:        cert.RetainedAmount,
		Diff:                  res.Diff,
		JustificationRequired: res.JustificationRequired,
		Justification:         res.Justification,
	})
}
