// Package purchase registra compras en el libro de compras aplicando la regla de antigüedad.
package purchase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	domainpurchase "github.com/jhoicas/facturacion-sv/internal/domain/purchase"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

var validClassifications = map[string]bool{
	entity.PurchaseTaxable:    true,
	entity.PurchaseExempt:     true,
	entity.PurchaseNonSubject: true,
}

var validCostTypes = map[string]bool{
	entity.PurchaseCost:    true,
	entity.PurchaseExpense: true,
}

// RegisterPurchaseUseCase evalúa la deducibilidad y guarda la compra.
type RegisterPurchaseUseCase struct {
	repo      repository.PurchaseRepository
	evaluator *domainpurchase.Evaluator
	log       zerolog.Logger
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(repo repository.PurchaseRepository, evaluator *domainpurchase.Evaluator, log zerolog.Logger) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{repo: repo, evaluator: evaluator, log: log}
}

// Register valida la captura completa, aplica la regla de los días y, salvo DryRun, persiste.
// Una compra reclasificada en una vista previa (Reclassified=true) se mantiene no deducible
// aunque el operador corrija la fecha o el tipo.
func (uc *RegisterPurchaseUseCase) Register(ctx context.Context, companyID string, req dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if companyID == "" {
		return nil, domain.ErrForbidden
	}

	var errs domain.ValidationErrors
	if strings.TrimSpace(req.SupplierName) == "" {
		errs = append(errs, domain.NewValidationError("supplier_name", "requerido"))
	}
	if strings.TrimSpace(req.DocumentNumber) == "" {
		errs = append(errs, domain.NewValidationError("document_number", "requerido"))
	}
	classification := strings.ToUpper(strings.TrimSpace(req.Classification))
	if classification == "" {
		classification = entity.PurchaseTaxable
	}
	if !validClassifications[classification] {
		errs = append(errs, domain.NewValidationError("classification", "debe ser TAXABLE, EXEMPT o NON_SUBJECT"))
	}
	costType := strings.ToUpper(strings.TrimSpace(req.CostType))
	if costType != "" && !validCostTypes[costType] {
		errs = append(errs, domain.NewValidationError("cost_type", "debe ser COST o EXPENSE"))
	}
	for field, amount := range map[string]decimal.Decimal{
		"taxable_amount":    req.TaxableAmount,
		"vat_amount":        req.VATAmount,
		"perception_amount": req.PerceptionAmount,
	} {
		if amount.IsNegative() {
			errs = append(errs, domain.NewValidationError(field, "no puede ser negativo"))
		}
	}

	var emission time.Time
	parsed := true
	if s := strings.TrimSpace(req.EmissionDate); s != "" {
		t, err := time.Parse(dte.DateLayout, s)
		if err != nil {
			errs = append(errs, domain.NewValidationError("emission_date", "formato esperado YYYY-MM-DD"))
			parsed = false
		}
		emission = t
	}

	docType := strings.TrimSpace(req.DocumentType)
	period := strings.TrimSpace(req.AppliedPeriod)
	entry := uc.evaluator.ResumeEntry(req.Reclassified)
	var out domainpurchase.Outcome
	if parsed {
		o, err := entry.Evaluate(period, emission, docType)
		var list domain.ValidationErrors
		switch {
		case errors.As(err, &list):
			errs = append(errs, list...)
		case err != nil:
			errs = append(errs, err)
		}
		out = o
	}
	if len(errs) > 0 {
		return nil, errs
	}

	total := dte.Round2(req.TaxableAmount.Add(req.VATAmount).Add(req.PerceptionAmount))
	resp := &dto.PurchaseResponse{
		OriginalDocumentType: out.OriginalType,
		DocumentType:         out.EffectiveType,
		Deductibility:        string(out.State),
		DaysElapsed:          out.DaysElapsed,
		Reclassified:         out.Reclassified,
		Total:                total,
		Warnings:             make([]dto.WarningDTO, 0, len(out.Warnings)),
	}
	for _, w := range out.Warnings {
		resp.Warnings = append(resp.Warnings, dto.WarningDTO{Code: w.Code, Message: w.Message, Days: w.Days})
	}
	if req.DryRun {
		return resp, nil
	}

	rec := &entity.PurchaseRecord{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		SupplierName:     strings.TrimSpace(req.SupplierName),
		SupplierNRC:      strings.TrimSpace(req.SupplierNRC),
		SupplierNIT:      strings.TrimSpace(req.SupplierNIT),
		DocumentNumber:   strings.TrimSpace(req.DocumentNumber),
		EmissionDate:     emission,
		AppliedPeriod:    period,
		Classification:   classification,
		CostType:         costType,
		TaxableAmount:    req.TaxableAmount,
		VATAmount:        req.VATAmount,
		PerceptionAmount: req.PerceptionAmount,
		Total:            total,
		CreatedAt:        time.Now(),
	}
	domainpurchase.Apply(rec, out)
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if out.Reclassified {
		uc.log.Warn().
			Str("purchase_id", rec.ID).
			Str("original_type", out.OriginalType).
			Int("days", out.DaysElapsed).
			Msg("compra reclasificada como no deducible")
	}
	resp.ID = rec.ID
	resp.Saved = true
	return resp, nil
}

// ListByPeriod libro de compras de un período.
func (uc *RegisterPurchaseUseCase) ListByPeriod(ctx context.Context, companyID, period string) ([]dto.PurchaseBookEntryDTO, error) {
	if _, err := domainpurchase.PeriodEnd(period); err != nil {
		return nil, err
	}
	records, err := uc.repo.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseBookEntryDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.PurchaseBookEntryDTO{
			ID:                   r.ID,
			SupplierName:         r.SupplierName,
			SupplierNRC:          r.SupplierNRC,
			DocumentNumber:       r.DocumentNumber,
			OriginalDocumentType: r.OriginalDocumentType,
			DocumentType:         r.DocumentType,
			EmissionDate:         r.EmissionDate.Format(dte.DateLayout),
			AppliedPeriod:        r.AppliedPeriod,
			Classification:       r.Classification,
			CostType:             r.CostType,
			TaxableAmount:        r.TaxableAmount,
			VATAmount:            r.VATAmount,
			PerceptionAmount:     r.PerceptionAmount,
			Total:                r.Total,
			Deductibility:        string(r.Deductibility),
		})
	}
	return out, nil
}
