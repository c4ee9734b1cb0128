package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

var (
	_ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)
	_ repository.ItemRepository         = (*ItemRepo)(nil)
)

// CounterpartyRepo directorio de contrapartes.
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

// Create guarda la contraparte. id_digits y nrc_digits alimentan la búsqueda por prefijo.
func (r *CounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO counterparties (
			id, company_id, name, id_type, id_number, id_digits, nrc, nrc_digits,
			activity_code, address, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.IDType, c.IDNumber, mh.DigitsOnly(c.IDNumber),
		nullIfEmpty(c.NRC), nullIfEmpty(mh.DigitsOnly(c.NRC)),
		nullIfEmpty(c.ActivityCode), nullIfEmpty(c.Address), nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contraparte %s ya existe: %w", c.IDNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert counterparty: %w", err)
	}
	return nil
}

// SearchByIdentifier busca por prefijo de documento o NRC (solo dígitos).
func (r *CounterpartyRepo) SearchByIdentifier(ctx context.Context, companyID, prefix string, limit int) ([]*entity.Counterparty, error) {
	const query = `
		SELECT id, company_id, name, id_type, id_number, COALESCE(nrc, ''), COALESCE(activity_code, ''),
		       COALESCE(address, ''), COALESCE(email, ''), COALESCE(phone, ''), created_at, updated_at
		FROM counterparties
		WHERE company_id = $1 AND (id_digits LIKE $2 || '%' OR nrc_digits LIKE $2 || '%')
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, companyID, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("search counterparties: %w", err)
	}
	defer rows.Close()

	var out []*entity.Counterparty
	for rows.Next() {
		var c entity.Counterparty
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.IDType, &c.IDNumber, &c.NRC, &c.ActivityCode,
			&c.Address, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ItemRepo catálogo de productos y servicios.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create guarda el ítem calculando su clave de búsqueda.
func (r *ItemRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.SearchKey = mh.SearchKey(item.Code + " " + item.Description)
	const query = `
		INSERT INTO catalog_items (id, company_id, code, description, search_key, unit_price, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CompanyID, item.Code, item.Description, item.SearchKey,
		item.UnitPrice, string(item.Kind), item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código %s ya existe: %w", item.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// SearchByText busca por subcadena de la clave normalizada.
func (r *ItemRepo) SearchByText(ctx context.Context, companyID, key string, limit int) ([]*entity.CatalogItem, error) {
	const query = `
		SELECT id, company_id, code, description, search_key, unit_price, kind, created_at
		FROM catalog_items
		WHERE company_id = $1 AND search_key LIKE '%' || $2 || '%'
		ORDER BY description
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, companyID, key, limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog items: %w", err)
	}
	defer rows.Close()

	var out []*entity.CatalogItem
	for rows.Next() {
		var it entity.CatalogItem
		var kind string
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.Code, &it.Description, &it.SearchKey,
			&it.UnitPrice, &kind, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		it.Kind = entity.LineKind(kind)
		out = append(out, &it)
	}
	return out, rows.Err()
}
