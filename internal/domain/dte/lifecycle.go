package dte

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// transitions transiciones legales. INVALIDATED y REJECTED no tienen salida:
// un documento rechazado se vuelve a emitir como documento nuevo.
var transitions = map[entity.LifecycleState][]entity.LifecycleState{
	entity.StateGenerated: {entity.StateSubmitted},
	entity.StateSubmitted: {entity.StateAccepted, entity.StateRejected},
	entity.StateAccepted:  {entity.StateInvalidated},
}

// CanTransition indica si from -> to es una transición legal.
func CanTransition(from, to entity.LifecycleState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transition(doc *entity.FiscalDocument, to entity.LifecycleState, at time.Time) error {
	if !CanTransition(doc.State, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, doc.State, to)
	}
	doc.State = to
	doc.UpdatedAt = at
	return nil
}

// MarkSubmitted GENERATED -> SUBMITTED. Un documento ya enviado no se reenvía por aquí.
func MarkSubmitted(doc *entity.FiscalDocument, at time.Time) error {
	return transition(doc, entity.StateSubmitted, at)
}

// Accept SUBMITTED -> ACCEPTED con el sello de recepción.
func Accept(doc *entity.FiscalDocument, seal string, at time.Time) error {
	if err := transition(doc, entity.StateAccepted, at); err != nil {
		return err
	}
	doc.ReceptionSeal = seal
	doc.Rejection = nil
	return nil
}

// Reject SUBMITTED -> REJECTED. El detalle se guarda sin alterar.
func Reject(doc *entity.FiscalDocument, detail entity.RejectionDetail, at time.Time) error {
	if err := transition(doc, entity.StateRejected, at); err != nil {
		return err
	}
	d := detail
	d.Observations = append([]string(nil), detail.Observations...)
	doc.Rejection = &d
	return nil
}

// ValidateInvalidation verifica que el documento admita invalidación y que la solicitud esté completa.
// Devuelve un ValidationErrors con un InvalidationError por cada problema.
func ValidateInvalidation(doc *entity.FiscalDocument, req entity.InvalidationRequest) error {
	var errs domain.ValidationErrors
	fail := func(reason string) { errs = append(errs, &domain.InvalidationError{Reason: reason}) }

	if strings.TrimSpace(req.Motive) == "" {
		fail("motivo requerido")
	}
	switch req.Reason {
	case entity.ReasonRescission:
	case entity.ReasonNullity:
		if !mh.ValidGenerationCode(req.ReplacementCode) {
			fail("la nulidad requiere el código de generación del documento de reemplazo")
		}
	default:
		fail("categoría de motivo debe ser RESCISSION o NULLITY")
	}
	checkParty := func(role string, p entity.PartyIdentity) {
		if strings.TrimSpace(p.Name) == "" {
			fail(role + ": nombre requerido")
		}
		if !mh.ValidIDTypes[p.IDType] {
			fail(role + ": tipo de documento de identificación inválido")
		}
		if strings.TrimSpace(p.IDNumber) == "" {
			fail(role + ": número de documento requerido")
		}
	}
	checkParty("responsable", req.Responsible)
	checkParty("solicitante", req.Requester)

	if doc != nil {
		if doc.State != entity.StateAccepted {
			fail(fmt.Sprintf("solo se invalidan documentos aceptados (estado actual %s)", doc.State))
		} else if doc.ReceptionSeal == "" {
			fail("el documento no tiene sello de recepción")
		}
	}
	return errs.ErrOrNil()
}

// Invalidate ACCEPTED -> INVALIDATED. Estado terminal.
func Invalidate(doc *entity.FiscalDocument, record entity.InvalidationRecord, at time.Time) error {
	if err := ValidateInvalidation(doc, record.Request); err != nil {
		return err
	}
	if err := transition(doc, entity.StateInvalidated, at); err != nil {
		return err
	}
	if record.InvalidatedAt.IsZero() {
		record.InvalidatedAt = at
	}
	doc.Invalidation = &record
	return nil
}
