package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// RetentionRepository puerto de persistencia de comprobantes de retención.
type RetentionRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.RetentionCertificate, error)
	// MarkApplied guarda la conciliación solo si el comprobante sigue pendiente.
	MarkApplied(ctx context.Context, cert *entity.RetentionCertificate) (bool, error)
}

// SaleCandidateFilter criterio de búsqueda de ventas candidatas.
type SaleCandidateFilter struct {
	CompanyID     string
	From          time.Time
	To            time.Time
	DocumentTypes []string
}

// SaleRepository consulta ventas aceptadas elegibles para conciliación.
// La retención esperada la calcula el llamador.
type SaleRepository interface {
	ListCandidates(ctx context.Context, f SaleCandidateFilter) ([]entity.SaleCandidate, error)
}
