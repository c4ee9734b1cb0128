package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem producto o servicio del catálogo de la empresa.
type CatalogItem struct {
	ID          string
	CompanyID   string
	Code        string
	Description string
	SearchKey   string // descripción normalizada para búsquedas
	UnitPrice   decimal.Decimal
	Kind        LineKind
	CreatedAt   time.Time
}
