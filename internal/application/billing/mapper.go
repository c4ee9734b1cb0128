package billing

import (
	"strings"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

// parseDate interpreta YYYY-MM-DD. Vacío devuelve fecha cero sin error (el builder lo reporta).
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dte.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return t, nil
}

// toDomain convierte el request en cabecera, líneas y referencia. Los errores de formato
// se devuelven acumulados para fusionarlos con los del builder.
func toDomain(companyID string, req dto.IssueDocumentRequest) (dte.Header, []dte.LineInput, *entity.RelatedDocumentRef, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	emission, err := parseDate("emission_date", req.EmissionDate)
	if err != nil {
		errs = append(errs, err)
	}

	h := dte.Header{
		CompanyID:    companyID,
		DocumentType: strings.TrimSpace(req.DocumentType),
		Counterparty: entity.Counterparty{
			CompanyID:    companyID,
			Name:         strings.TrimSpace(req.Counterparty.Name),
			IDType:       strings.TrimSpace(req.Counterparty.IDType),
			IDNumber:     strings.TrimSpace(req.Counterparty.IDNumber),
			NRC:          strings.TrimSpace(req.Counterparty.NRC),
			ActivityCode: strings.TrimSpace(req.Counterparty.ActivityCode),
			Address:      strings.TrimSpace(req.Counterparty.Address),
			Email:        strings.TrimSpace(req.Counterparty.Email),
			Phone:        strings.TrimSpace(req.Counterparty.Phone),
		},
		OperationCondition: req.OperationCondition,
		EmissionDate:       emission,
		AppliedPeriod:      strings.TrimSpace(req.AppliedPeriod),
	}
	if req.CreditTerm != nil {
		h.CreditTerm = &entity.CreditTerm{UnitCode: req.CreditTerm.UnitCode, Count: req.CreditTerm.Count}
	}

	lines := make([]dte.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, dte.LineInput{
			ItemCode:    strings.TrimSpace(l.ItemCode),
			Description: strings.TrimSpace(l.Description),
			Kind:        entity.LineKind(strings.ToUpper(strings.TrimSpace(l.Kind))),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
		})
	}

	var related *entity.RelatedDocumentRef
	if r := req.RelatedDocument; r != nil {
		relEmission, err := parseDate("related_document.emission_date", r.EmissionDate)
		if err != nil {
			errs = append(errs, err)
		}
		related = &entity.RelatedDocumentRef{
			DocumentType:   strings.TrimSpace(r.DocumentType),
			GenerationType: r.GenerationType,
			GenerationCode: strings.TrimSpace(r.GenerationCode),
			ControlNumber:  strings.TrimSpace(r.ControlNumber),
			EmissionDate:   relEmission,
		}
	}

	return h, lines, related, errs
}

func toInvalidationRequest(documentID string, req dto.InvalidateDocumentRequest) entity.InvalidationRequest {
	party := func(p dto.PartyRequest) entity.PartyIdentity {
		return entity.PartyIdentity{
			IDType:   strings.TrimSpace(p.IDType),
			IDNumber: strings.TrimSpace(p.IDNumber),
			Name:     strings.TrimSpace(p.Name),
		}
	}
	return entity.InvalidationRequest{
		DocumentID:      documentID,
		Reason:          entity.ReasonCategory(strings.ToUpper(strings.TrimSpace(req.ReasonCategory))),
		Motive:          strings.TrimSpace(req.Motive),
		ReplacementCode: strings.ToUpper(strings.TrimSpace(req.ReplacementCode)),
		Responsible:     party(req.Responsible),
		Requester:       party(req.Requester),
	}
}

// ToDocumentResponse arma la respuesta HTTP/CLI de un documento.
func ToDocumentResponse(doc *entity.FiscalDocument) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:            doc.ID,
		State:         string(doc.State),
		ReceptionSeal: doc.ReceptionSeal,
		Document:      dte.NewPayload(doc),
	}
	if !doc.CreatedAt.IsZero() {
		resp.CreatedAt = doc.CreatedAt.Format(time.RFC3339)
	}
	if !doc.UpdatedAt.IsZero() {
		resp.UpdatedAt = doc.UpdatedAt.Format(time.RFC3339)
	}
	if r := doc.Rejection; r != nil {
		obs := make([]string, len(r.Observations))
		copy(obs, r.Observations)
		resp.Rejection = &dto.RejectionDTO{Code: r.Code, Description: r.Description, Observations: obs}
	}
	if inv := doc.Invalidation; inv != nil {
		resp.Invalidation = &dto.InvalidationDTO{
			EventCode:       inv.GenerationCode,
			ReceptionSeal:   inv.ReceptionSeal,
			ReasonCategory:  string(inv.Request.Reason),
			Motive:          inv.Request.Motive,
			ReplacementCode: inv.Request.ReplacementCode,
			InvalidatedAt:   inv.InvalidatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
