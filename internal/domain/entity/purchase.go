package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductibilityState estado del crédito fiscal de una compra.
type DeductibilityState string

const (
	Deductible    DeductibilityState = "DEDUCTIBLE"
	NonDeductible DeductibilityState = "NON_DEDUCTIBLE"
)

// Clasificación de la compra.
const (
	PurchaseTaxable    = "TAXABLE"
	PurchaseExempt     = "EXEMPT"
	PurchaseNonSubject = "NON_SUBJECT"

	PurchaseCost    = "COST"
	PurchaseExpense = "EXPENSE"
)

// PurchaseRecord documento de compra registrado en el libro de compras.
type PurchaseRecord struct {
	ID                   string
	CompanyID            string
	SupplierName         string
	SupplierNRC          string
	SupplierNIT          string
	DocumentNumber       string
	OriginalDocumentType string // tipo elegido por el operador
	DocumentType         string // tipo efectivo tras la regla de antigüedad
	EmissionDate         time.Time
	AppliedPeriod        string // YYYY-MM
	Classification       string
	CostType             string
	TaxableAmount        decimal.Decimal
	VATAmount            decimal.Decimal
	PerceptionAmount     decimal.Decimal
	Total                decimal.Decimal
	Deductibility        DeductibilityState
	CreatedAt            time.Time
}
