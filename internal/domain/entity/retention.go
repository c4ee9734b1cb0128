package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationState estado de conciliación de una retención.
type ReconciliationState string

const (
	RetentionPending ReconciliationState = "PENDING"
	RetentionApplied ReconciliationState = "APPLIED"
)

// Tipos de retención de IVA.
const (
	RetentionCard   = "161" // 2% tarjeta de crédito/débito
	RetentionClient = "162" // 1% agente de retención
)

// RetentionCertificate comprobante de retención recibido de un agente de retención.
type RetentionCertificate struct {
	ID                string
	CompanyID         string
	CounterpartyName  string
	CounterpartyNIT   string
	RetentionType     string
	CertificateNumber string
	CertificateDate   time.Time
	SubjectAmount     decimal.Decimal // monto sujeto a retención
	RetainedAmount    decimal.Decimal
	State             ReconciliationState
	MatchedSaleIDs    []string
	Justification     string
	AppliedAt         *time.Time
	CreatedAt         time.Time
}

// SaleCandidate venta elegible para conciliar contra una retención.
type SaleCandidate struct {
	ID                string
	EmissionDate      time.Time
	DocumentType      string
	ControlNumber     string
	CounterpartyName  string
	TaxableBase       decimal.Decimal
	ExpectedRetention decimal.Decimal
}

// ReconciliationResult resultado de aplicar una retención.
type ReconciliationResult struct {
	MatchedSaleIDs        []string
	Sum                   decimal.Decimal
	Diff                  decimal.Decimal
	JustificationRequired bool
	Justification         string
}
