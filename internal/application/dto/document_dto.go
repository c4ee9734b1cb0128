package dto

import (
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/shopspring/decimal"
)

// IssueDocumentRequest body para POST /api/documents.
// Fechas en formato YYYY-MM-DD; applied_period en YYYY-MM (opcional, por defecto el mes de emisión).
type IssueDocumentRequest struct {
	DocumentType       string              `json:"document_type_code"`
	Counterparty       CounterpartyDTO     `json:"counterparty"`
	OperationCondition int                 `json:"operation_condition"`
	CreditTerm         *CreditTermDTO      `json:"credit_term,omitempty"`
	EmissionDate       string              `json:"emission_date"`
	AppliedPeriod      string              `json:"applied_period,omitempty"`
	RelatedDocument    *RelatedDocumentDTO `json:"related_document,omitempty"`
	Lines              []LineRequest       `json:"lines"`
}

// CounterpartyDTO receptor, proveedor excluido o sujeto retenido.
type CounterpartyDTO struct {
	Name         string `json:"name"`
	IDType       string `json:"id_type,omitempty"`
	IDNumber     string `json:"id_number,omitempty"`
	NRC          string `json:"nrc,omitempty"`
	ActivityCode string `json:"activity_code,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// CreditTermDTO plazo para operaciones a crédito.
type CreditTermDTO struct {
	UnitCode string `json:"unit_code"`
	Count    int    `json:"count"`
}

// RelatedDocumentDTO documento que modifica una nota de crédito o débito.
type RelatedDocumentDTO struct {
	DocumentType   string `json:"document_type,omitempty"`
	GenerationType int    `json:"generation_type,omitempty"` // 1 físico, 2 electrónico
	GenerationCode string `json:"generation_code"`
	ControlNumber  string `json:"control_number,omitempty"`
	EmissionDate   string `json:"emission_date"`
}

// LineRequest línea capturada por el operador.
type LineRequest struct {
	ItemCode    string          `json:"item_code,omitempty"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"` // TAXABLE | EXEMPT | NON_SUBJECT
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// DocumentResponse documento con su estado frente al servicio de recepción.
type DocumentResponse struct {
	ID            string           `json:"id"`
	State         string           `json:"state"`
	ReceptionSeal string           `json:"reception_seal,omitempty"`
	Rejection     *RejectionDTO    `json:"rejection,omitempty"`
	Invalidation  *InvalidationDTO `json:"invalidation,omitempty"`
	Document      dte.Payload      `json:"document"`
	CreatedAt     string           `json:"created_at,omitempty"`
	UpdatedAt     string           `json:"updated_at,omitempty"`
}

// RejectionDTO detalle del rechazo tal como lo devolvió el servicio.
type RejectionDTO struct {
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	Observations []string `json:"observations"`
}

// InvalidationDTO evento de invalidación confirmado.
type InvalidationDTO struct {
	EventCode       string `json:"event_code"`
	ReceptionSeal   string `json:"reception_seal"`
	ReasonCategory  string `json:"reason_category"`
	Motive          string `json:"motive"`
	ReplacementCode string `json:"replacement_code,omitempty"`
	InvalidatedAt   string `json:"invalidated_at"`
}

// InvalidateDocumentRequest body para POST /api/documents/:id/invalidate.
type InvalidateDocumentRequest struct {
	ReasonCategory  string       `json:"reason_category"` // RESCISSION | NULLITY
	Motive          string       `json:"motive"`
	ReplacementCode string       `json:"replacement_code,omitempty"`
	Responsible     PartyRequest `json:"responsible"`
	Requester       PartyRequest `json:"requester"`
}

// PartyRequest identificación de responsable o solicitante.
type PartyRequest struct {
	Name     string `json:"name"`
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
}
