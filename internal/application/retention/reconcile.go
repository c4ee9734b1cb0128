// Package retention concilia comprobantes de retención contra las ventas del período.
package retention

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	domainretention "github.com/jhoicas/facturacion-sv/internal/domain/retention"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// ReconcileUseCase consulta candidatas y aplica la conciliación.
type ReconcileUseCase struct {
	retentions     repository.RetentionRepository
	sales          repository.SaleRepository
	engine         *domainretention.Engine
	lookbackMonths int
	log            zerolog.Logger
	now            func() time.Time
}

// NewReconcileUseCase construye el caso de uso. lookbackMonths <= 0 usa el valor por defecto.
func NewReconcileUseCase(
	retentions repository.RetentionRepository,
	sales repository.SaleRepository,
	engine *domainretention.Engine,
	lookbackMonths int,
	log zerolog.Logger,
) *ReconcileUseCase {
	if lookbackMonths <= 0 {
		lookbackMonths = domainretention.DefaultLookbackMonths
	}
	return &ReconcileUseCase{
		retentions:     retentions,
		sales:          sales,
		engine:         engine,
		lookbackMonths: lookbackMonths,
		log:            log,
		now:            time.Now,
	}
}

// Candidates ventas aceptadas del rango (por defecto los meses previos a la fecha del comprobante).
// from/to en YYYY-MM-DD, opcionales.
func (uc *ReconcileUseCase) Candidates(ctx context.Context, companyID, certificateID, from, to string) (*dto.RetentionCandidatesResponse, error) {
	cert, err := uc.load(ctx, companyID, certificateID)
	if err != nil {
		return nil, err
	}
	start, end, err := uc.window(cert, from, to)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.pool(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.RetentionCandidatesResponse{
		CertificateID:  cert.ID,
		RetainedAmount: cert.RetainedAmount,
		From:           start.Format(dte.DateLayout),
		To:             end.Format(dte.DateLayout),
		Candidates:     make([]dto.SaleCandidateDTO, 0, len(candidates)),
	}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, dto.SaleCandidateDTO{
			ID:                c.ID,
			EmissionDate:      c.EmissionDate.Format(dte.DateLayout),
			DocumentType:      c.DocumentType,
			ControlNumber:     c.ControlNumber,
			CounterpartyName:  c.CounterpartyName,
			TaxableBase:       c.TaxableBase,
			ExpectedRetention: c.ExpectedRetention,
		})
	}
	return resp, nil
}

// Reconcile aplica la selección. El pool de candidatas sale del mismo rango que Candidates:
// req.From/req.To si vienen, si no la ventana por defecto del comprobante.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, companyID, certificateID string, req dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	cert, err := uc.load(ctx, companyID, certificateID)
	if err != nil {
		return nil, err
	}
	if cert.State == entity.RetentionApplied {
		return nil, domain.ErrAlreadyApplied
	}
	start, end, err := uc.window(cert, req.From, req.To)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.pool(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	res, err := uc.engine.Reconcile(cert, candidates, req.SelectedSaleIDs, req.Justification, uc.now())
	if err != nil {
		return nil, err
	}

	applied, err := uc.retentions.MarkApplied(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("guardar conciliación: %w", err)
	}
	if !applied {
		return nil, domain.ErrAlreadyApplied
	}

	uc.log.Info().
		Str("certificate_id", cert.ID).
		Int("sales", len(res.MatchedSaleIDs)).
		Str("sum", res.Sum.StringFixed(2)).
		Str("diff", res.Diff.StringFixed(2)).
		Bool("justified", res.JustificationRequired).
		Msg("retención conciliada")

	return &dto.ReconcileResponse{
		CertificateID:         cert.ID,
		State:                 string(cert.State),
		MatchedSaleIDs:        res.MatchedSaleIDs,
		Sum:                   res.Sum,
		RetainedAmount:        cert.RetainedAmount,
		Diff:                  res.Diff,
		JustificationRequired: res.JustificationRequired,
		Justification:         res.Justification,
	}, nil
}

func (uc *ReconcileUseCase) load(ctx context.Context, companyID, id string) (*entity.RetentionCertificate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("certificate_id", "requerido")
	}
	cert, err := uc.retentions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, domain.ErrNotFound
	}
	if cert.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return cert, nil
}

func (uc *ReconcileUseCase) window(cert *entity.RetentionCertificate, from, to string) (time.Time, time.Time, error) {
	start, end := domainretention.Window(cert.CertificateDate, uc.lookbackMonths)
	var errs domain.ValidationErrors
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse(dte.DateLayout, s)
		if err != nil {
			errs = append(errs, domain.NewValidationError("from", "formato esperado YYYY-MM-DD"))
		}
		start = t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse(dte.DateLayout, s)
		if err != nil {
			errs = append(errs, domain.NewValidationError("to", "formato esperado YYYY-MM-DD"))
		}
		end = t
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, domain.NewValidationError("to", "debe ser posterior a from"))
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

func (uc *ReconcileUseCase) pool(ctx context.Context, companyID string, from, to time.Time) ([]entity.SaleCandidate, error) {
	sales, err := uc.sales.ListCandidates(ctx, repository.SaleCandidateFilter{
		CompanyID:     companyID,
		From:          from,
		To:            to,
		DocumentTypes: mh.ReconcilableSaleTypes,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.SaleCandidate, 0, len(sales))
	for _, s := range sales {
		c := uc.engine.Candidate(s.ID, s.EmissionDate, s.DocumentType, s.TaxableBase)
		c.ControlNumber = s.ControlNumber
		c.CounterpartyName = s.CounterpartyName
		out = append(out, c)
	}
	return out, nil
}
