package repository

import (
	"context"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// CounterpartyRepository directorio de contrapartes de la empresa.
type CounterpartyRepository interface {
	Create(ctx context.Context, c *entity.Counterparty) error
	// SearchByIdentifier busca por prefijo del número de documento o NRC (solo dígitos).
	SearchByIdentifier(ctx context.Context, companyID, prefix string, limit int) ([]*entity.Counterparty, error)
}

// ItemRepository catálogo de productos y servicios.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	// SearchByText busca por la clave normalizada (sin tildes, minúsculas).
	SearchByText(ctx context.Context, companyID, key string, limit int) ([]*entity.CatalogItem, error)
}
