package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LifecycleState estado del documento frente al servicio de recepción.
type LifecycleState string

const (
	StateGenerated   LifecycleState = "GENERATED"   // Construido y validado, sin enviar
	StateSubmitted   LifecycleState = "SUBMITTED"   // Entregado al servicio de recepción; resultado pendiente o desconocido
	StateAccepted    LifecycleState = "ACCEPTED"    // Procesado con sello de recepción
	StateRejected    LifecycleState = "REJECTED"    // Rechazado; debe emitirse un documento nuevo
	StateInvalidated LifecycleState = "INVALIDATED" // Anulado mediante evento de invalidación (terminal)
)

// LineKind clasificación de la venta en una línea.
type LineKind string

const (
	LineTaxable    LineKind = "TAXABLE"     // Gravada
	LineExempt     LineKind = "EXEMPT"      // Exenta
	LineNonSubject LineKind = "NON_SUBJECT" // No sujeta
)

// LineItem línea de detalle de un documento.
// TaxableBase es siempre neta de IVA; LineTotal = TaxableBase + VATAmount.
type LineItem struct {
	LineNumber  int
	ItemCode    string
	Description string
	Kind        LineKind
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TaxableBase decimal.Decimal
	VATAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}

// CreditTerm plazo de una operación a crédito (unidad CAT-018 + cantidad).
type CreditTerm struct {
	UnitCode string
	Count    int
}

// RelatedDocumentRef referencia (solo lectura) al documento que una nota modifica.
type RelatedDocumentRef struct {
	DocumentType   string
	GenerationType int    // 1 = físico, 2 = electrónico
	GenerationCode string // UUID del DTE o número del documento físico
	ControlNumber  string
	EmissionDate   time.Time
}

// Totals resumen monetario del documento.
type Totals struct {
	Taxable    decimal.Decimal
	Exempt     decimal.Decimal
	NonSubject decimal.Decimal
	VAT        decimal.Decimal
	Total      decimal.Decimal
}

// RejectionDetail detalle estructurado de un rechazo. Se conserva tal como lo devuelve el servicio.
type RejectionDetail struct {
	Code         string
	Description  string
	Observations []string
}

// FiscalDocument documento tributario electrónico emitido por la empresa.
type FiscalDocument struct {
	ID                 string
	CompanyID          string
	DocumentType       string // CAT-002
	GenerationCode     string
	ControlNumber      string
	Counterparty       Counterparty
	OperationCondition int // CAT-016
	CreditTerm         *CreditTerm
	EmissionDate       time.Time
	AppliedPeriod      string // YYYY-MM
	Lines              []LineItem
	Related            *RelatedDocumentRef
	Totals             Totals
	State              LifecycleState
	ReceptionSeal      string
	Rejection          *RejectionDetail
	Invalidation       *InvalidationRecord
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal indica si el documento ya no admite transiciones.
func (d *FiscalDocument) IsTerminal() bool {
	return d.State == StateInvalidated || d.State == StateRejected
}
