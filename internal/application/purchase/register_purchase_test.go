package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/application/purchase"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	domainpurchase "github.com/jhoicas/facturacion-sv/internal/domain/purchase"
	"github.com/jhoicas/facturacion-sv/internal/mocks"
)

const companyID = "c0a80101-0000-4000-8000-000000000001"

func newUseCase(repo *mocks.MockPurchaseRepo) *purchase.RegisterPurchaseUseCase {
	now := func() time.Time { return time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC) }
	return purchase.NewRegisterPurchaseUseCase(repo, domainpurchase.NewEvaluator(90, now), zerolog.Nop())
}

func ccfPurchase(emission string) dto.RegisterPurchaseRequest {
	return dto.RegisterPurchaseRequest{
		SupplierName:   "Suministros Industriales, S.A.",
		SupplierNRC:    "123456-7",
		DocumentNumber: "DTE-03-0001P001-000000000000123",
		DocumentType:   "03",
		EmissionDate:   emission,
		AppliedPeriod:  "2024-05",
		TaxableAmount:  decimal.RequireFromString("100.00"),
		VATAmount:      decimal.RequireFromString("13.00"),
	}
}

// ── Regla de antigüedad ───────────────────────────────────────────────────────

func TestRegister_OldCCFIsReclassified(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.PurchaseRecord) bool {
		return r.DocumentType == "14" && r.OriginalDocumentType == "03" && r.Deductibility == entity.NonDeductible
	})).Return(nil)

	resp, err := newUseCase(repo).Register(context.Background(), companyID, ccfPurchase("2024-02-26"))
	require.NoError(t, err)

	assert.Equal(t, 95, resp.DaysElapsed)
	assert.True(t, resp.Reclassified)
	assert.Equal(t, "14", resp.DocumentType)
	assert.Equal(t, "NON_DEDUCTIBLE", resp.Deductibility)
	require.NotEmpty(t, resp.Warnings)
	assert.Equal(t, domainpurchase.WarningReclassified, resp.Warnings[0].Code)
	assert.Contains(t, resp.Warnings[0].Message, "95 días")
	assert.True(t, resp.Saved)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("113.00")))
	repo.AssertExpectations(t)
}

func TestRegister_RecentCCFIsDeductible(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := newUseCase(repo).Register(context.Background(), companyID, ccfPurchase("2024-05-02"))
	require.NoError(t, err)

	assert.Equal(t, "DEDUCTIBLE", resp.Deductibility)
	assert.Equal(t, "03", resp.DocumentType)
	assert.False(t, resp.Reclassified)
	assert.Empty(t, resp.Warnings)
}

func TestRegister_PreviewReclassificationIsKept(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := ccfPurchase("2024-05-02")
	req.Reclassified = true
	resp, err := newUseCase(repo).Register(context.Background(), companyID, req)
	require.NoError(t, err)

	assert.Equal(t, "NON_DEDUCTIBLE", resp.Deductibility, "la reclasificación no se revierte en la misma captura")
	assert.Equal(t, "14", resp.DocumentType)
}

func TestRegister_DryRunDoesNotPersist(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)

	req := ccfPurchase("2024-02-26")
	req.DryRun = true
	resp, err := newUseCase(repo).Register(context.Background(), companyID, req)
	require.NoError(t, err)

	assert.False(t, resp.Saved)
	assert.True(t, resp.Reclassified)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ── Validación ────────────────────────────────────────────────────────────────

func TestRegister_CollectsAllErrors(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)

	req := ccfPurchase("2024-05-02")
	req.SupplierName = ""
	req.AppliedPeriod = "mayo"
	req.VATAmount = decimal.RequireFromString("-1")
	_, err := newUseCase(repo).Register(context.Background(), companyID, req)

	var list domain.ValidationErrors
	require.ErrorAs(t, err, &list)
	fields := map[string]bool{}
	for _, fe := range list.Fields() {
		fields[fe.Field] = true
	}
	assert.True(t, fields["supplier_name"])
	assert.True(t, fields["applied_period"])
	assert.True(t, fields["vat_amount"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_BadEmissionFormat(t *testing.T) {
	_, err := newUseCase(new(mocks.MockPurchaseRepo)).Register(context.Background(), companyID, ccfPurchase("26/02/2024"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Libro de compras ──────────────────────────────────────────────────────────

func TestListByPeriod_MapsRecords(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)
	repo.On("ListByPeriod", mock.Anything, companyID, "2024-05").Return([]*entity.PurchaseRecord{
		{
			ID:                   "compra-1",
			SupplierName:         "Suministros Industriales, S.A.",
			DocumentNumber:       "DTE-03-0001P001-000000000000123",
			OriginalDocumentType: "03",
			DocumentType:         "14",
			EmissionDate:         time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
			AppliedPeriod:        "2024-05",
			Classification:       entity.PurchaseTaxable,
			TaxableAmount:        decimal.RequireFromString("100.00"),
			VATAmount:            decimal.RequireFromString("13.00"),
			Total:                decimal.RequireFromString("113.00"),
			Deductibility:        entity.NonDeductible,
		},
	}, nil)

	out, err := newUseCase(repo).ListByPeriod(context.Background(), companyID, "2024-05")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2024-02-26", out[0].EmissionDate)
	assert.Equal(t, "03", out[0].OriginalDocumentType)
	assert.Equal(t, "14", out[0].DocumentType)
	assert.Equal(t, "NON_DEDUCTIBLE", out[0].Deductibility)
	assert.True(t, out[0].Total.Equal(decimal.RequireFromString("113")))
}

func TestListByPeriod_InvalidPeriod(t *testing.T) {
	repo := new(mocks.MockPurchaseRepo)

	_, err := newUseCase(repo).ListByPeriod(context.Background(), companyID, "05/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "ListByPeriod", mock.Anything, mock.Anything, mock.Anything)
}
