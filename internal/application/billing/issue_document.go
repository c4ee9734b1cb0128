package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// IssueDocumentUseCase valida y persiste un documento nuevo en estado GENERATED.
// El número de control se asigna con el correlativo dentro de la misma transacción.
type IssueDocumentUseCase struct {
	txRunner    DocumentTxRunner
	companyRepo repository.CompanyRepository
	builder     *dte.Builder
	log         zerolog.Logger
	now         func() time.Time
}

// NewIssueDocumentUseCase construye el caso de uso.
func NewIssueDocumentUseCase(
	txRunner DocumentTxRunner,
	companyRepo repository.CompanyRepository,
	builder *dte.Builder,
	log zerolog.Logger,
) *IssueDocumentUseCase {
	return &IssueDocumentUseCase{
		txRunner:    txRunner,
		companyRepo: companyRepo,
		builder:     builder,
		log:         log,
		now:         time.Now,
	}
}

// Issue construye el documento (todas las validaciones en una pasada) y lo guarda.
func (uc *IssueDocumentUseCase) Issue(ctx context.Context, companyID string, req dto.IssueDocumentRequest) (*dto.DocumentResponse, error) {
	if companyID == "" {
		return nil, domain.ErrForbidden
	}
	header, lines, related, formatErrs := toDomain(companyID, req)

	doc, err := uc.builder.Build(header, lines, related)
	if err != nil {
		var list domain.ValidationErrors
		if errors.As(err, &list) && len(formatErrs) > 0 {
			return nil, append(formatErrs, list...)
		}
		return nil, err
	}
	if len(formatErrs) > 0 {
		return nil, formatErrs
	}

	company, err := uc.companyRepo.GetProfile(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("perfil de empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	now := uc.now()
	doc.ID = uuid.New().String()
	doc.GenerationCode = mh.NewGenerationCode()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	err = uc.txRunner.RunDocument(ctx, func(docRepo repository.DocumentRepository, correlatives repository.CorrelativeRepository) error {
		n, err := correlatives.Next(ctx, companyID, doc.DocumentType, company.EstablishmentCode, company.PointOfSaleCode)
		if err != nil {
			return fmt.Errorf("correlativo: %w", err)
		}
		control, err := mh.ControlNumber(doc.DocumentType, company.EstablishmentCode, company.PointOfSaleCode, n)
		if err != nil {
			return err
		}
		doc.ControlNumber = control
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("document_type", doc.DocumentType).
		Str("control_number", doc.ControlNumber).
		Str("total", doc.Totals.Total.StringFixed(2)).
		Msg("documento generado")

	return ToDocumentResponse(doc), nil
}

// DocumentQueryUseCase lectura de documentos de la empresa.
type DocumentQueryUseCase struct {
	docRepo repository.DocumentRepository
}

// NewDocumentQueryUseCase construye el caso de uso.
func NewDocumentQueryUseCase(docRepo repository.DocumentRepository) *DocumentQueryUseCase {
	return &DocumentQueryUseCase{docRepo: docRepo}
}

// Get devuelve el documento si pertenece a la empresa.
func (uc *DocumentQueryUseCase) Get(ctx context.Context, companyID, documentID string) (*dto.DocumentResponse, error) {
	doc, err := loadOwned(ctx, uc.docRepo, companyID, documentID)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// loadOwned obtiene el documento y verifica que pertenezca a companyID.
func loadOwned(ctx context.Context, repo repository.DocumentRepository, companyID, documentID string) (*entity.FiscalDocument, error) {
	if documentID == "" {
		return nil, domain.NewValidationError("id", "requerido")
	}
	doc, err := repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}
