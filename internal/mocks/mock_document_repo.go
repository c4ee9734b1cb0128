package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FiscalDocument), args.Error(1)
}

func (m *MockDocumentRepo) ClaimSubmission(ctx context.Context, id string, from entity.LifecycleState, lease time.Duration) (bool, error) {
	args := m.Called(ctx, id, from, lease)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepo) ReleaseSubmission(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *entity.FiscalDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockCorrelativeRepo struct {
	mock.Mock
}

func (m *MockCorrelativeRepo) Next(ctx context.Context, companyID, docType, establishment, pointOfSale string) (int64, error) {
	args := m.Called(ctx, companyID, docType, establishment, pointOfSale)
	return args.Get(0).(int64), args.Error(1)
}
