package lookup

import (
	"context"
	"strings"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

const (
	// DefaultLimit resultados máximos por búsqueda.
	DefaultLimit = 10
	minQueryLen  = 2
)

// LookupUseCase búsquedas de autocompletado por sesión.
type LookupUseCase struct {
	counterparties repository.CounterpartyRepository
	items          repository.ItemRepository
	coord          *Coordinator
	limit          int
}

// NewLookupUseCase construye el caso de uso. limit <= 0 usa DefaultLimit.
func NewLookupUseCase(
	counterparties repository.CounterpartyRepository,
	items repository.ItemRepository,
	coord *Coordinator,
	limit int,
) *LookupUseCase {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &LookupUseCase{counterparties: counterparties, items: items, coord: coord, limit: limit}
}

// Counterparties busca por prefijo del documento de identidad o NRC. Los separadores se ignoran.
func (uc *LookupUseCase) Counterparties(ctx context.Context, companyID, session, q string) ([]dto.CounterpartyLookupDTO, error) {
	prefix := mh.DigitsOnly(q)
	key := sessionKey(companyID, session, "counterparty")
	return Run(ctx, uc.coord, key, func(ctx context.Context) ([]dto.CounterpartyLookupDTO, error) {
		out := []dto.CounterpartyLookupDTO{}
		if len(prefix) < minQueryLen {
			return out, nil
		}
		found, err := uc.counterparties.SearchByIdentifier(ctx, companyID, prefix, uc.limit)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			out = append(out, dto.CounterpartyLookupDTO{
				ID:       c.ID,
				Name:     c.Name,
				IDType:   c.IDType,
				IDNumber: c.IDNumber,
				NRC:      c.NRC,
			})
		}
		return out, nil
	})
}

// Items busca en el catálogo sin distinguir tildes ni mayúsculas.
func (uc *LookupUseCase) Items(ctx context.Context, companyID, session, q string) ([]dto.ItemLookupDTO, error) {
	searchKey := mh.SearchKey(q)
	key := sessionKey(companyID, session, "item")
	return Run(ctx, uc.coord, key, func(ctx context.Context) ([]dto.ItemLookupDTO, error) {
		out := []dto.ItemLookupDTO{}
		if len([]rune(searchKey)) < minQueryLen {
			return out, nil
		}
		found, err := uc.items.SearchByText(ctx, companyID, searchKey, uc.limit)
		if err != nil {
			return nil, err
		}
		for _, it := range found {
			out = append(out, dto.ItemLookupDTO{
				ID:          it.ID,
				Code:        it.Code,
				Description: it.Description,
				UnitPrice:   it.UnitPrice,
				Kind:        string(it.Kind),
			})
		}
		return out, nil
	})
}

func sessionKey(companyID, session, kind string) string {
	return strings.Join([]string{companyID, session, kind}, "|")
}
