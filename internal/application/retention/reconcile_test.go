package retention_test

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
	"github.com/jhoicas/facturacion-sv/internal/application/retention"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	domainretention "github.com/jhoicas/facturacion-sv/internal/domain/retention"
	"github.com/jhoicas/facturacion-sv/internal/mocks"
)

const (
	companyID     = "c0a80101-0000-4000-8000-000000000001"
	certificateID = "e0a80101-0000-4000-8000-000000000003"
)

var certDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func certificate() *entity.RetentionCertificate {
	return &entity.RetentionCertificate{
		ID:               certificateID,
		CompanyID:        companyID,
		CounterpartyName: "Gran Contribuyente, S.A.",
		RetentionType:    entity.RetentionClient,
		CertificateDate:  certDate,
		SubjectAmount:    decimal.RequireFromString("5000.00"),
		RetainedAmount:   decimal.RequireFromString("50.00"),
		State:            entity.RetentionPending,
	}
}

func sales() []entity.SaleCandidate {
	return []entity.SaleCandidate{
		{ID: "venta-1", EmissionDate: certDate.AddDate(0, 0, -20), DocumentType: "03", ControlNumber: "DTE-03-M001P001-000000000000010", TaxableBase: decimal.RequireFromString("2500.00")},
		{ID: "venta-2", EmissionDate: certDate.AddDate(0, 0, -10), DocumentType: "03", ControlNumber: "DTE-03-M001P001-000000000000011", TaxableBase: decimal.RequireFromString("2502.00")},
		{ID: "venta-3", EmissionDate: certDate.AddDate(0, 0, -5), DocumentType: "01", TaxableBase: decimal.RequireFromString("100.00")},
	}
}

func newUseCase(certs *mocks.MockRetentionRepo, saleRepo *mocks.MockSaleRepo) *retention.ReconcileUseCase {
	engine := domainretention.NewEngine(domainretention.DefaultRate, domainretention.DefaultTolerance)
	return retention.NewReconcileUseCase(certs, saleRepo, engine, 3, zerolog.Nop())
}

func defaultWindow() any {
	return mock.MatchedBy(func(f repository.SaleCandidateFilter) bool {
		return f.CompanyID == companyID &&
			f.From.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(certDate) &&
			len(f.DocumentTypes) == 2
	})
}

// ── Candidatas ────────────────────────────────────────────────────────────────

func TestCandidates_DefaultWindowAndExpectedRetention(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)
	saleRepo.On("ListCandidates", mock.Anything, defaultWindow()).Return(sales(), nil)

	resp, err := newUseCase(certs, saleRepo).Candidates(context.Background(), companyID, certificateID, "", "")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", resp.From)
	assert.Equal(t, "2024-06-15", resp.To)
	require.Len(t, resp.Candidates, 3)
	assert.True(t, resp.Candidates[0].ExpectedRetention.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, resp.Candidates[1].ExpectedRetention.Equal(decimal.RequireFromString("25.02")))
	assert.Equal(t, "DTE-03-M001P001-000000000000010", resp.Candidates[0].ControlNumber)
}

func TestCandidates_InvertedRange(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)

	_, err := newUseCase(certs, new(mocks.MockSaleRepo)).Candidates(context.Background(), companyID, certificateID, "2024-06-01", "2024-05-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Conciliación ──────────────────────────────────────────────────────────────

func TestReconcile_OverToleranceNeedsJustification(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	cert := certificate()
	certs.On("GetByID", mock.Anything, certificateID).Return(cert, nil)
	saleRepo.On("ListCandidates", mock.Anything, defaultWindow()).Return(sales(), nil)

	_, err := newUseCase(certs, saleRepo).Reconcile(context.Background(), companyID, certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-1", "venta-2"}})

	var te *domain.ToleranceExceededError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Sum.Equal(decimal.RequireFromString("50.02")))
	assert.True(t, te.Diff.Equal(decimal.RequireFromString("0.02")))
	assert.Equal(t, entity.RetentionPending, cert.State)
	certs.AssertNotCalled(t, "MarkApplied", mock.Anything, mock.Anything)
}

func TestReconcile_JustifiedIsApplied(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)
	saleRepo.On("ListCandidates", mock.Anything, defaultWindow()).Return(sales(), nil)
	certs.On("MarkApplied", mock.Anything, mock.MatchedBy(func(c *entity.RetentionCertificate) bool {
		return c.State == entity.RetentionApplied && c.Justification == "rounding on source system" && len(c.MatchedSaleIDs) == 2
	})).Return(true, nil)

	resp, err := newUseCase(certs, saleRepo).Reconcile(context.Background(), companyID, certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-1", "venta-2"}, Justification: "rounding on source system"})
	require.NoError(t, err)

	assert.Equal(t, "APPLIED", resp.State)
	assert.True(t, resp.JustificationRequired)
	assert.Equal(t, []string{"venta-1", "venta-2"}, resp.MatchedSaleIDs)
	certs.AssertExpectations(t)
}

func TestReconcile_UsesCandidatesRange(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	old := entity.SaleCandidate{ID: "venta-vieja", EmissionDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), DocumentType: "03", TaxableBase: decimal.RequireFromString("5000.00")}
	wide := mock.MatchedBy(func(f repository.SaleCandidateFilter) bool {
		return f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) && f.To.Equal(certDate)
	})
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)
	saleRepo.On("ListCandidates", mock.Anything, wide).Return(append(sales(), old), nil)
	certs.On("MarkApplied", mock.Anything, mock.Anything).Return(true, nil)
	uc := newUseCase(certs, saleRepo)

	listed, err := uc.Candidates(context.Background(), companyID, certificateID, "2024-01-01", "2024-06-15")
	require.NoError(t, err)
	require.Len(t, listed.Candidates, 4)
	assert.Equal(t, "venta-vieja", listed.Candidates[3].ID)

	resp, err := uc.Reconcile(context.Background(), companyID, certificateID, dto.ReconcileRequest{
		SelectedSaleIDs: []string{"venta-vieja"},
		From:            "2024-01-01",
		To:              "2024-06-15",
	})
	require.NoError(t, err, "una venta listada como candidata debe poder conciliarse")
	assert.Equal(t, "APPLIED", resp.State)
	assert.True(t, resp.Diff.IsZero())
	saleRepo.AssertNumberOfCalls(t, "ListCandidates", 2)
}

func TestReconcile_InvalidRange(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)

	_, err := newUseCase(certs, saleRepo).Reconcile(context.Background(), companyID, certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-1"}, From: "01/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	saleRepo.AssertNotCalled(t, "ListCandidates", mock.Anything, mock.Anything)
}

func TestReconcile_EmptySelection(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)
	saleRepo.On("ListCandidates", mock.Anything, mock.Anything).Return(sales(), nil)

	_, err := newUseCase(certs, saleRepo).Reconcile(context.Background(), companyID, certificateID, dto.ReconcileRequest{})

	var ee *domain.EmptySelectionError
	assert.ErrorAs(t, err, &ee)
}

func TestReconcile_AlreadyApplied(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	cert := certificate()
	cert.State = entity.RetentionApplied
	certs.On("GetByID", mock.Anything, certificateID).Return(cert, nil)

	_, err := newUseCase(certs, new(mocks.MockSaleRepo)).Reconcile(context.Background(), companyID, certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-1"}})
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
}

func TestReconcile_LostRaceReportsAlreadyApplied(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	saleRepo := new(mocks.MockSaleRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)
	saleRepo.On("ListCandidates", mock.Anything, mock.Anything).Return(sales(), nil)
	certs.On("MarkApplied", mock.Anything, mock.Anything).Return(false, nil)

	_, err := newUseCase(certs, saleRepo).Reconcile(context.Background(), companyID, certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-3"}})
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
}

func TestReconcile_OtherCompany(t *testing.T) {
	certs := new(mocks.MockRetentionRepo)
	certs.On("GetByID", mock.Anything, certificateID).Return(certificate(), nil)

	_, err := newUseCase(certs, new(mocks.MockSaleRepo)).Reconcile(context.Background(), "otra", certificateID,
		dto.ReconcileRequest{SelectedSaleIDs: []string{"venta-1"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
