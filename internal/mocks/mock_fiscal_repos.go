package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) Create(ctx context.Context, rec *entity.PurchaseRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockPurchaseRepo) ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.PurchaseRecord, error) {
	args := m.Called(ctx, companyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PurchaseRecord), args.Error(1)
}

type MockRetentionRepo struct {
	mock.Mock
}

func (m *MockRetentionRepo) GetByID(ctx context.Context, id string) (*entity.RetentionCertificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RetentionCertificate), args.Error(1)
}

func (m *MockRetentionRepo) MarkApplied(ctx context.Context, cert *entity.RetentionCertificate) (bool, error) {
	args := m.Called(ctx, cert)
	return args.Bool(0), args.Error(1)
}

type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) ListCandidates(ctx context.Context, f repository.SaleCandidateFilter) ([]entity.SaleCandidate, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SaleCandidate), args.Error(1)
}

type MockCounterpartyRepo struct {
	mock.Mock
}

func (m *MockCounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCounterpartyRepo) SearchByIdentifier(ctx context.Context, companyID, prefix string, limit int) ([]*entity.Counterparty, error) {
	args := m.Called(ctx, companyID, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Counterparty), args.Error(1)
}

type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) SearchByText(ctx context.Context, companyID, key string, limit int) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, companyID, key, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CatalogItem), args.Error(1)
}
