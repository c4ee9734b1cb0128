package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo libro de compras.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create registra la compra con el tipo original y el efectivo.
func (r *PurchaseRepo) Create(ctx context.Context, rec *entity.PurchaseRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO purchases (
			id, company_id, supplier_name, supplier_nrc, supplier_nit, document_number,
			original_document_type, document_type, emission_date, applied_period,
			classification, cost_type, taxable_amount, vat_amount, perception_amount, total,
			deductibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.SupplierName, nullIfEmpty(rec.SupplierNRC), nullIfEmpty(rec.SupplierNIT), rec.DocumentNumber,
		rec.OriginalDocumentType, rec.DocumentType, rec.EmissionDate, rec.AppliedPeriod,
		rec.Classification, nullIfEmpty(rec.CostType), rec.TaxableAmount, rec.VATAmount, rec.PerceptionAmount, rec.Total,
		string(rec.Deductibility), rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("compra %s ya registrada: %w", rec.DocumentNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// ListByPeriod compras del período ordenadas por fecha de emisión.
func (r *PurchaseRepo) ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.PurchaseRecord, error) {
	const query = `
		SELECT id, company_id, supplier_name, supplier_nrc, supplier_nit, document_number,
		       original_document_type, document_type, emission_date, applied_period,
		       classification, cost_type, taxable_amount, vat_amount, perception_amount, total,
		       deductibility, created_at
		FROM purchases
		WHERE company_id = $1 AND applied_period = $2
		ORDER BY emission_date, document_number`
	rows, err := r.q.Query(ctx, query, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseRecord
	for rows.Next() {
		var p entity.PurchaseRecord
		var nrc, nit, costType *string
		var deductibility string
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.SupplierName, &nrc, &nit, &p.DocumentNumber,
			&p.OriginalDocumentType, &p.DocumentType, &p.EmissionDate, &p.AppliedPeriod,
			&p.Classification, &costType, &p.TaxableAmount, &p.VATAmount, &p.PerceptionAmount, &p.Total,
			&deductibility, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.SupplierNRC = derefStr(nrc)
		p.SupplierNIT = derefStr(nit)
		p.CostType = derefStr(costType)
		p.Deductibility = entity.DeductibilityState(deductibility)
		out = append(out, &p)
	}
	return out, rows.Err()
}
