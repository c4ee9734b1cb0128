package dte

import (
	"strings"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// ValidateRelatedDocument exige la referencia al documento original en notas de crédito/débito.
// Solo valida la forma de la referencia; el estado del documento referido lo verifica
// el servicio de recepción.
func ValidateRelatedDocument(c Classification, ref *entity.RelatedDocumentRef, emission time.Time) error {
	if !c.RequiresRelatedDocument {
		if ref != nil {
			return domain.ValidationErrors{domain.NewValidationError("related_document", "no aplica para el tipo "+c.Code)}
		}
		return nil
	}
	if ref == nil || strings.TrimSpace(ref.GenerationCode) == "" {
		return &domain.MissingRelatedDocumentError{DocumentType: c.Code}
	}

	var errs domain.ValidationErrors
	if ref.DocumentType != "" && ref.DocumentType != mh.DocTypeCreditoFiscal {
		errs = append(errs, domain.NewValidationError("related_document.document_type", "debe referir un crédito fiscal"))
	}
	switch ref.GenerationType {
	case 0, mh.GenerationElectronic:
		if !mh.ValidGenerationCode(ref.GenerationCode) {
			errs = append(errs, domain.NewValidationError("related_document.generation_code", "debe ser un UUID"))
		}
	case mh.GenerationPhysical:
		if strings.TrimSpace(ref.ControlNumber) == "" {
			errs = append(errs, domain.NewValidationError("related_document.control_number", "requerido"))
		}
	default:
		errs = append(errs, domain.NewValidationError("related_document.generation_type", "debe ser 1 (físico) o 2 (electrónico)"))
	}
	if ref.EmissionDate.IsZero() {
		errs = append(errs, domain.NewValidationError("related_document.emission_date", "requerida"))
	} else if !emission.IsZero() && ref.EmissionDate.After(emission) {
		errs = append(errs, domain.NewValidationError("related_document.emission_date", "no puede ser posterior a la emisión de la nota"))
	}
	return errs.ErrOrNil()
}

// normalizeRelated completa valores por defecto (tipo de generación electrónico, tipo CCF, código en mayúsculas).
func normalizeRelated(ref *entity.RelatedDocumentRef) *entity.RelatedDocumentRef {
	if ref == nil {
		return nil
	}
	out := *ref
	if out.GenerationType == 0 {
		out.GenerationType = mh.GenerationElectronic
	}
	if out.DocumentType == "" {
		out.DocumentType = mh.DocTypeCreditoFiscal
	}
	if out.GenerationType == mh.GenerationElectronic {
		out.GenerationCode = strings.ToUpper(strings.TrimSpace(out.GenerationCode))
	}
	return &out
}
