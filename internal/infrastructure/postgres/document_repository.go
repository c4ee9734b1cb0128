package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

var (
	_ repository.DocumentRepository    = (*DocumentRepo)(nil)
	_ repository.CorrelativeRepository = (*CorrelativeRepo)(nil)
	_ repository.SaleRepository        = (*DocumentRepo)(nil)
)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste cabecera y líneas. Debe ir dentro de una tx para que sea atómico.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	var termUnit *string
	var termCount *int
	if doc.CreditTerm != nil {
		termUnit = &doc.CreditTerm.UnitCode
		termCount = &doc.CreditTerm.Count
	}
	var relGenType *int
	var relDocType, relCode, relControl *string
	var relEmission *time.Time
	if rel := doc.Related; rel != nil {
		relDocType = nullIfEmpty(rel.DocumentType)
		relGenType = &rel.GenerationType
		relCode = nullIfEmpty(rel.GenerationCode)
		relControl = nullIfEmpty(rel.ControlNumber)
		relEmission = &rel.EmissionDate
	}

	const query = `
		INSERT INTO fiscal_documents (
			id, company_id, document_type, generation_code, control_number,
			counterparty_name, counterparty_id_type, counterparty_id_number, counterparty_nrc,
			counterparty_activity_code, counterparty_address, counterparty_email, counterparty_phone,
			operation_condition, credit_term_unit, credit_term_count,
			emission_date, applied_period,
			related_document_type, related_generation_type, related_generation_code,
			related_control_number, related_emission_date,
			taxable, exempt, non_subject, vat, total,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	c := doc.Counterparty
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.DocumentType, doc.GenerationCode, doc.ControlNumber,
		c.Name, nullIfEmpty(c.IDType), nullIfEmpty(c.IDNumber), nullIfEmpty(c.NRC),
		nullIfEmpty(c.ActivityCode), nullIfEmpty(c.Address), nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		doc.OperationCondition, termUnit, termCount,
		doc.EmissionDate, doc.AppliedPeriod,
		relDocType, relGenType, relCode, relControl, relEmission,
		doc.Totals.Taxable, doc.Totals.Exempt, doc.Totals.NonSubject, doc.Totals.VAT, doc.Totals.Total,
		string(doc.State), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de control o código de generación repetido: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert fiscal document: %w", err)
	}

	const lineQuery = `
		INSERT INTO fiscal_document_lines (
			document_id, line_number, item_code, description, kind,
			quantity, unit_price, discount, taxable_base, vat_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, l := range doc.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			doc.ID, l.LineNumber, nullIfEmpty(l.ItemCode), l.Description, string(l.Kind),
			l.Quantity, l.UnitPrice, l.Discount, l.TaxableBase, l.VATAmount, l.LineTotal,
		); err != nil {
			return fmt.Errorf("insert fiscal document line %d: %w", l.LineNumber, err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas. Devuelve nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	const query = `
		SELECT id, company_id, document_type, generation_code, control_number,
		       counterparty_name, counterparty_id_type, counterparty_id_number, counterparty_nrc,
		       counterparty_activity_code, counterparty_address, counterparty_email, counterparty_phone,
		       operation_condition, credit_term_unit, credit_term_count,
		       emission_date, applied_period,
		       related_document_type, related_generation_type, related_generation_code,
		       related_control_number, related_emission_date,
		       taxable, exempt, non_subject, vat, total,
		       status, reception_seal, rejection_code, rejection_description, rejection_observations,
		       invalidation, created_at, updated_at
		FROM fiscal_documents WHERE id = $1`

	var doc entity.FiscalDocument
	var idType, idNumber, nrc, activity, address, email, phone *string
	var termUnit *string
	var termCount *int
	var relDocType, relCode, relControl *string
	var relGenType *int
	var relEmission *time.Time
	var status string
	var seal, rejCode, rejDesc *string
	var rejObs []string
	var invalidation []byte

	err := r.q.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.CompanyID, &doc.DocumentType, &doc.GenerationCode, &doc.ControlNumber,
		&doc.Counterparty.Name, &idType, &idNumber, &nrc,
		&activity, &address, &email, &phone,
		&doc.OperationCondition, &termUnit, &termCount,
		&doc.EmissionDate, &doc.AppliedPeriod,
		&relDocType, &relGenType, &relCode, &relControl, &relEmission,
		&doc.Totals.Taxable, &doc.Totals.Exempt, &doc.Totals.NonSubject, &doc.Totals.VAT, &doc.Totals.Total,
		&status, &seal, &rejCode, &rejDesc, &rejObs,
		&invalidation, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal document: %w", err)
	}

	doc.Counterparty.CompanyID = doc.CompanyID
	doc.Counterparty.IDType = derefStr(idType)
	doc.Counterparty.IDNumber = derefStr(idNumber)
	doc.Counterparty.NRC = derefStr(nrc)
	doc.Counterparty.ActivityCode = derefStr(activity)
	doc.Counterparty.Address = derefStr(address)
	doc.Counterparty.Email = derefStr(email)
	doc.Counterparty.Phone = derefStr(phone)
	if termUnit != nil && termCount != nil {
		doc.CreditTerm = &entity.CreditTerm{UnitCode: *termUnit, Count: *termCount}
	}
	if relCode != nil {
		doc.Related = &entity.RelatedDocumentRef{
			DocumentType:   derefStr(relDocType),
			GenerationCode: *relCode,
			ControlNumber:  derefStr(relControl),
		}
		if relGenType != nil {
			doc.Related.GenerationType = *relGenType
		}
		if relEmission != nil {
			doc.Related.EmissionDate = *relEmission
		}
	}
	doc.State = entity.LifecycleState(status)
	doc.ReceptionSeal = derefStr(seal)
	if rejCode != nil || rejDesc != nil {
		doc.Rejection = &entity.RejectionDetail{
			Code:         derefStr(rejCode),
			Description:  derefStr(rejDesc),
			Observations: rejObs,
		}
	}
	if len(invalidation) > 0 {
		var rec entity.InvalidationRecord
		if err := json.Unmarshal(invalidation, &rec); err != nil {
			return nil, fmt.Errorf("decode invalidation: %w", err)
		}
		doc.Invalidation = &rec
	}

	lines, err := r.lines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return &doc, nil
}

func (r *DocumentRepo) lines(ctx context.Context, documentID string) ([]entity.LineItem, error) {
	const query = `
		SELECT line_number, COALESCE(item_code, ''), description, kind,
		       quantity, unit_price, discount, taxable_base, vat_amount, line_total
		FROM fiscal_document_lines WHERE document_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list fiscal document lines: %w", err)
	}
	defer rows.Close()

	var out []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		var kind string
		if err := rows.Scan(&l.LineNumber, &l.ItemCode, &l.Description, &kind,
			&l.Quantity, &l.UnitPrice, &l.Discount, &l.TaxableBase, &l.VATAmount, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan fiscal document line: %w", err)
		}
		l.Kind = entity.LineKind(kind)
		out = append(out, l)
	}
	return out, rows.Err()
}

// ClaimSubmission toma el lease de envío con el reloj de la base, común a todas las instancias.
func (r *DocumentRepo) ClaimSubmission(ctx context.Context, id string, from entity.LifecycleState, lease time.Duration) (bool, error) {
	const query = `
		UPDATE fiscal_documents
		SET status             = $3,
		    submit_lease_until = NOW() + $4 * INTERVAL '1 millisecond',
		    updated_at         = NOW()
		WHERE id = $1
		  AND status = $2
		  AND (submit_lease_until IS NULL OR submit_lease_until < NOW())`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(entity.StateSubmitted), lease.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("claim submission: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseSubmission suelta el lease de envío.
func (r *DocumentRepo) ReleaseSubmission(ctx context.Context, id string) error {
	const query = `UPDATE fiscal_documents SET submit_lease_until = NULL WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("release submission: %w", err)
	}
	return nil
}

// Update guarda estado, sello, rechazo e invalidación.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.FiscalDocument) error {
	var rejCode, rejDesc *string
	var rejObs []string
	if rj := doc.Rejection; rj != nil {
		rejCode = &rj.Code
		rejDesc = &rj.Description
		rejObs = rj.Observations
	}
	var invalidation []byte
	if doc.Invalidation != nil {
		b, err := json.Marshal(doc.Invalidation)
		if err != nil {
			return fmt.Errorf("encode invalidation: %w", err)
		}
		invalidation = b
	}
	const query = `
		UPDATE fiscal_documents
		SET status                 = $2,
		    reception_seal         = COALESCE($3, reception_seal),
		    rejection_code         = $4,
		    rejection_description  = $5,
		    rejection_observations = $6,
		    invalidation           = $7,
		    submit_lease_until     = NULL,
		    updated_at             = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, string(doc.State), nullIfEmpty(doc.ReceptionSeal),
		rejCode, rejDesc, rejObs, invalidation, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fiscal document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCandidates ventas aceptadas de los tipos y rango indicados (para conciliar retenciones).
func (r *DocumentRepo) ListCandidates(ctx context.Context, f repository.SaleCandidateFilter) ([]entity.SaleCandidate, error) {
	const query = `
		SELECT id, emission_date, document_type, control_number, counterparty_name, taxable
		FROM fiscal_documents
		WHERE company_id = $1
		  AND status = $2
		  AND document_type = ANY($3)
		  AND emission_date BETWEEN $4 AND $5
		ORDER BY emission_date, control_number`
	rows, err := r.q.Query(ctx, query, f.CompanyID, string(entity.StateAccepted), f.DocumentTypes, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("list sale candidates: %w", err)
	}
	defer rows.Close()

	var out []entity.SaleCandidate
	for rows.Next() {
		var c entity.SaleCandidate
		var base decimal.Decimal
		if err := rows.Scan(&c.ID, &c.EmissionDate, &c.DocumentType, &c.ControlNumber, &c.CounterpartyName, &base); err != nil {
			return nil, fmt.Errorf("scan sale candidate: %w", err)
		}
		c.TaxableBase = base
		out = append(out, c)
	}
	return out, rows.Err()
}

// CorrelativeRepo contador de correlativos por empresa, tipo, establecimiento y punto de venta.
type CorrelativeRepo struct {
	q Querier
}

// NewCorrelativeRepository construye el adaptador. Usar dentro de la misma tx que el documento.
func NewCorrelativeRepository(q Querier) *CorrelativeRepo {
	return &CorrelativeRepo{q: q}
}

// Next incrementa y devuelve el siguiente correlativo. El UPSERT bloquea la fila hasta el commit.
func (r *CorrelativeRepo) Next(ctx context.Context, companyID, docType, establishment, pointOfSale string) (int64, error) {
	const query = `
		INSERT INTO dte_correlatives (company_id, document_type, establishment_code, point_of_sale_code, last_value)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (company_id, document_type, establishment_code, point_of_sale_code)
		DO UPDATE SET last_value = dte_correlatives.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, docType, establishment, pointOfSale).Scan(&n); err != nil {
		return 0, fmt.Errorf("next correlative: %w", err)
	}
	return n, nil
}
