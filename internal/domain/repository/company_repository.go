package repository

import (
	"context"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// CompanyRepository lectura del perfil fiscal de la empresa emisora.
type CompanyRepository interface {
	// GetProfile devuelve nil, nil si la empresa no existe.
	GetProfile(ctx context.Context, companyID string) (*entity.CompanyProfile, error)
}
