package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetProfile(ctx context.Context, companyID string) (*entity.CompanyProfile, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyProfile), args.Error(1)
}
