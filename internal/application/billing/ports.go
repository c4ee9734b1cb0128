package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

// DocumentTxRunner ejecuta fn en una transacción que incluye documentos y correlativos.
// Si fn retorna error se hace rollback: no se consume correlativo sin documento.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		correlatives repository.CorrelativeRepository,
	) error) error
}

// SubmissionOutcome respuesta definitiva del servicio de recepción.
// Accepted=false siempre trae Rejection con el detalle sin alterar.
type SubmissionOutcome struct {
	Accepted      bool
	ReceptionSeal string
	Rejection     *entity.RejectionDetail
	ProcessedAt   time.Time
}

// InvalidationEvent evento de invalidación a transmitir.
type InvalidationEvent struct {
	Code     string // código de generación del evento
	Request  entity.InvalidationRequest
	IssuedAt time.Time
}

// SubmissionService puerto hacia el servicio de recepción de la autoridad tributaria.
//
// Un error que satisface domain.IsRetryable significa resultado desconocido (red, 5xx,
// tiempo agotado): el documento debe quedar SUBMITTED y puede reenviarse con el mismo
// código de generación. Cualquier otro error tampoco es un rechazo.
type SubmissionService interface {
	Submit(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument) (*SubmissionOutcome, error)
	Invalidate(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument, ev InvalidationEvent) (*SubmissionOutcome, error)
}
