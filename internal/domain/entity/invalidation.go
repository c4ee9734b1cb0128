package entity

import "time"

// ReasonCategory categoría del motivo de invalidación.
type ReasonCategory string

const (
	ReasonRescission ReasonCategory = "RESCISSION" // Rescisión de la operación
	ReasonNullity    ReasonCategory = "NULLITY"    // Nulidad; exige documento de reemplazo
)

// PartyIdentity identificación de responsable o solicitante.
type PartyIdentity struct {
	IDType   string // CAT-022
	IDNumber string
	Name     string
}

// InvalidationRequest solicitud de invalidación de un documento aceptado.
type InvalidationRequest struct {
	DocumentID      string
	Reason          ReasonCategory
	Motive          string
	ReplacementCode string // código de generación del documento que reemplaza (solo nulidad)
	Responsible     PartyIdentity
	Requester       PartyIdentity
}

// InvalidationRecord evento de invalidación confirmado.
type InvalidationRecord struct {
	Request        InvalidationRequest
	GenerationCode string // código del evento
	ReceptionSeal  string
	InvalidatedAt  time.Time
}
