package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

var _ repository.RetentionRepository = (*RetentionRepo)(nil)

// RetentionRepo comprobantes de retención recibidos.
type RetentionRepo struct {
	q Querier
}

// NewRetentionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRetentionRepository(q Querier) *RetentionRepo {
	return &RetentionRepo{q: q}
}

// GetByID obtiene un comprobante. Devuelve nil, nil si no existe.
func (r *RetentionRepo) GetByID(ctx context.Context, id string) (*entity.RetentionCertificate, error) {
	const query = `
		SELECT id, company_id, counterparty_name, COALESCE(counterparty_nit, ''), retention_type,
		       certificate_number, certificate_date, subject_amount, retained_amount,
		       status, matched_sale_ids, COALESCE(justification, ''), applied_at, created_at
		FROM retention_certificates WHERE id = $1`
	var c entity.RetentionCertificate
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.CounterpartyName, &c.CounterpartyNIT, &c.RetentionType,
		&c.CertificateNumber, &c.CertificateDate, &c.SubjectAmount, &c.RetainedAmount,
		&status, &c.MatchedSaleIDs, &c.Justification, &c.AppliedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get retention certificate: %w", err)
	}
	c.State = entity.ReconciliationState(status)
	return &c, nil
}

// MarkApplied guarda la conciliación solo si el comprobante sigue PENDING.
func (r *RetentionRepo) MarkApplied(ctx context.Context, cert *entity.RetentionCertificate) (bool, error) {
	const query = `
		UPDATE retention_certificates
		SET status = $2, matched_sale_ids = $3, justification = $4, applied_at = $5
		WHERE id = $1 AND status = $6`
	tag, err := r.q.Exec(ctx, query,
		cert.ID, string(entity.RetentionApplied), cert.MatchedSaleIDs, nullIfEmpty(cert.Justification),
		cert.AppliedAt, string(entity.RetentionPending),
	)
	if err != nil {
		return false, fmt.Errorf("apply retention certificate: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
