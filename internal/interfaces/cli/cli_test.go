package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/interfaces/cli"
)

// run ejecuta dtectl con args y devuelve stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(zerolog.Nop())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type totalsResult struct {
	Mode   string `json:"mode"`
	Totals struct {
		Taxable decimal.Decimal `json:"taxable"`
		VAT     decimal.Decimal `json:"vat"`
		Total   decimal.Decimal `json:"total"`
	} `json:"totals"`
	InWords string `json:"in_words"`
}

// ── totals ────────────────────────────────────────────────────────────────────

func TestTotals_Exclusive(t *testing.T) {
	path := writeFile(t, "lines.json", `[{"description":"Cemento gris","kind":"TAXABLE","quantity":2,"unit_price":50}]`)

	out, err := run(t, "totals", "--mode", "exclusive", "--file", path)
	require.NoError(t, err)

	var res totalsResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "exclusive", res.Mode)
	assert.True(t, res.Totals.Taxable.Equal(dec("100")), "base: %s", res.Totals.Taxable)
	assert.True(t, res.Totals.VAT.Equal(dec("13")), "iva: %s", res.Totals.VAT)
	assert.True(t, res.Totals.Total.Equal(dec("113")), "total: %s", res.Totals.Total)
	assert.Equal(t, "CIENTO TRECE 00/100 USD", res.InWords)
}

func TestTotals_Inclusive(t *testing.T) {
	path := writeFile(t, "lines.json", `[{"description":"Bolsa de cemento","quantity":1,"unit_price":113}]`)

	out, err := run(t, "totals", "--mode", "inclusive", "--file", path)
	require.NoError(t, err)

	var res totalsResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Totals.Taxable.Equal(dec("100")), "base: %s", res.Totals.Taxable)
	assert.True(t, res.Totals.VAT.Equal(dec("13")), "iva: %s", res.Totals.VAT)
}

func TestTotals_InvalidLinesCollectEveryError(t *testing.T) {
	path := writeFile(t, "lines.json", `[{"description":"","quantity":0,"unit_price":10},{"description":"ok","quantity":1,"unit_price":-1}]`)

	_, err := run(t, "totals", "--file", path)
	var list domain.ValidationErrors
	require.True(t, errors.As(err, &list), "se esperaba ValidationErrors, se obtuvo %v", err)
	assert.GreaterOrEqual(t, len(list), 3)
}

func TestTotals_UnknownMode(t *testing.T) {
	path := writeFile(t, "lines.json", `[{"description":"x","quantity":1,"unit_price":1}]`)
	_, err := run(t, "totals", "--mode", "mixto", "--file", path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotals_FileRequired(t *testing.T) {
	_, err := run(t, "totals")
	assert.Error(t, err)
}

// ── vat ───────────────────────────────────────────────────────────────────────

func TestVAT_InclusiveSplit(t *testing.T) {
	out, err := run(t, "vat", "--mode", "inclusive", "--amount", "113")
	require.NoError(t, err)

	var res struct {
		Base decimal.Decimal `json:"base"`
		VAT  decimal.Decimal `json:"vat"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Base.Equal(dec("100")))
	assert.True(t, res.VAT.Equal(dec("13")))
}

func TestVAT_InvalidRate(t *testing.T) {
	_, err := run(t, "vat", "--amount", "100", "--vat-rate", "trece")
	assert.Error(t, err)
}

// ── purchase-check ────────────────────────────────────────────────────────────

func TestPurchaseCheck_Reclassifies(t *testing.T) {
	out, err := run(t, "purchase-check", "--period", "2024-05", "--emitted", "2024-02-26", "--type", "03", "--today", "2024-06-05")
	require.NoError(t, err)

	var res dto.PurchaseResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 95, res.DaysElapsed)
	assert.True(t, res.Reclassified)
	assert.Equal(t, "03", res.OriginalDocumentType)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0].Message, "95")
}

func TestPurchaseCheck_WithinWindow(t *testing.T) {
	out, err := run(t, "purchase-check", "--period", "2024-05", "--emitted", "2024-05-02", "--type", "03", "--today", "2024-06-05")
	require.NoError(t, err)

	var res dto.PurchaseResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Reclassified)
	assert.Equal(t, "DEDUCTIBLE", res.Deductibility)
}

func TestPurchaseCheck_BadDate(t *testing.T) {
	_, err := run(t, "purchase-check", "--period", "2024-05", "--emitted", "26/02/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── reconcile ─────────────────────────────────────────────────────────────────

const reconciliationJSON = `{
  "certificate_id": "CR-2024-0042",
  "certificate_date": "2024-06-15",
  "retained_amount": "50.00",
  "sales": [
    {"id": "venta-1", "emission_date": "2024-05-26", "document_type": "03", "taxable_base": "2500.00"},
    {"id": "venta-2", "emission_date": "2024-06-05", "document_type": "03", "taxable_base": "2502.00"}
  ],
  "selected_sale_ids": ["venta-1", "venta-2"]
}`

func TestReconcile_ToleranceExceeded(t *testing.T) {
	path := writeFile(t, "reconciliation.json", reconciliationJSON)

	_, err := run(t, "reconcile", "--file", path)
	var tol *domain.ToleranceExceededError
	require.True(t, errors.As(err, &tol), "se esperaba ToleranceExceededError, se obtuvo %v", err)
	assert.True(t, tol.Diff.Equal(dec("0.02")))
}

func TestReconcile_JustifiedIsApplied(t *testing.T) {
	path := writeFile(t, "reconciliation.json", reconciliationJSON)

	out, err := run(t, "reconcile", "--file", path, "--justification", "rounding on source system")
	require.NoError(t, err)

	var res dto.ReconcileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "APPLIED", res.State)
	assert.True(t, res.JustificationRequired)
	assert.Equal(t, "rounding on source system", res.Justification)
	assert.ElementsMatch(t, []string{"venta-1", "venta-2"}, res.MatchedSaleIDs)
}

func TestReconcile_EmptySelection(t *testing.T) {
	path := writeFile(t, "reconciliation.json", `{"retained_amount":"50.00","sales":[]}`)

	_, err := run(t, "reconcile", "--file", path)
	var empty *domain.EmptySelectionError
	assert.True(t, errors.As(err, &empty))
}
