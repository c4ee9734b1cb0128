package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument) (*billing.SubmissionOutcome, error) {
	args := m.Called(ctx, company, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SubmissionOutcome), args.Error(1)
}

func (m *MockSubmissionService) Invalidate(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument, ev billing.InvalidationEvent) (*billing.SubmissionOutcome, error) {
	args := m.Called(ctx, company, doc, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SubmissionOutcome), args.Error(1)
}

// FakeDocumentTxRunner ejecuta fn directamente con los repos dados, sin transacción.
type FakeDocumentTxRunner struct {
	Docs         *MockDocumentRepo
	Correlatives *MockCorrelativeRepo
}

func (f *FakeDocumentTxRunner) RunDocument(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	correlatives repository.CorrelativeRepository,
) error) error {
	return fn(f.Docs, f.Correlatives)
}
