package repository

import (
	"context"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia del libro de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, rec *entity.PurchaseRecord) error
	ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.PurchaseRecord, error)
}
