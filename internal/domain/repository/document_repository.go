package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// DocumentRepository puerto de persistencia de FiscalDocument y sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, doc *entity.FiscalDocument) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error)
	// ClaimSubmission pasa el documento de from a SUBMITTED y toma un lease de envío por lease.
	// Devuelve false si el estado ya no es from o si otra instancia tiene un lease vigente.
	ClaimSubmission(ctx context.Context, id string, from entity.LifecycleState, lease time.Duration) (bool, error)
	// ReleaseSubmission suelta el lease sin cambiar el estado (envío sin respuesta definitiva).
	ReleaseSubmission(ctx context.Context, id string) error
	// Update guarda estado, sello, rechazo e invalidación y suelta el lease de envío.
	Update(ctx context.Context, doc *entity.FiscalDocument) error
}

// CorrelativeRepository correlativos de número de control por empresa, tipo, establecimiento y punto de venta.
type CorrelativeRepository interface {
	Next(ctx context.Context, companyID, docType, establishment, pointOfSale string) (int64, error)
}
