package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo perfil fiscal de la empresa emisora sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetProfile obtiene la configuración vigente de la empresa.
func (r *CompanyRepo) GetProfile(ctx context.Context, companyID string) (*entity.CompanyProfile, error) {
	const query = `
		SELECT id, name, nit, nrc, activity_code, establishment_code, point_of_sale_code,
		       environment, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''), updated_at
		FROM company_profiles WHERE id = $1`
	var c entity.CompanyProfile
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&c.ID, &c.Name, &c.NIT, &c.NRC, &c.ActivityCode, &c.EstablishmentCode, &c.PointOfSaleCode,
		&c.Environment, &c.Address, &c.Phone, &c.Email, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	return &c, nil
}
