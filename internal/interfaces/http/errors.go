package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
)

// writeError traduce los errores del dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		classErr     *domain.ClassificationError
		missingRel   *domain.MissingRelatedDocumentError
		invalidation *domain.InvalidationError
		field        *domain.ValidationError
		emptySel     *domain.EmptySelectionError
		tolerance    *domain.ToleranceExceededError
		network      *domain.NetworkError
	)

	// Un ValidationErrors puede mezclar errores de campo con errores tipados; el código
	// lo decide el error tipado y los detalles listan todas las entradas.
	switch {
	case errors.As(err, &classErr):
		return unprocessable("CLASSIFICATION", err)
	case errors.As(err, &missingRel):
		return unprocessable("MISSING_RELATED_DOCUMENT", err)
	case errors.As(err, &invalidation):
		return unprocessable("INVALIDATION", err)
	case errors.As(err, &field):
		return unprocessable("VALIDATION", err)
	case errors.As(err, &emptySel):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "EMPTY_SELECTION", Message: err.Error()}
	case errors.As(err, &tolerance):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "TOLERANCE_EXCEEDED", Message: err.Error()}
	case errors.As(err, new(domain.ValidationErrors)):
		return unprocessable("VALIDATION", err)
	case errors.As(err, &network):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "NETWORK", Message: err.Error()}
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "IN_FLIGHT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyApplied):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_APPLIED", Message: err.Error()}
	case errors.Is(err, domain.ErrStaleLookup):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "STALE_LOOKUP", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_AUTH", Message: err.Error()}
	case errors.Is(err, domain.ErrSubmissionFailed):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "SUBMISSION_FAILED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func unprocessable(code string, err error) (int, dto.ErrorResponse) {
	msg := err.Error()
	if code == "VALIDATION" {
		msg = "datos inválidos"
	}
	return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: code, Message: msg, Details: details(err)}
}

// details aplana ValidationErrors en campo + motivo.
func details(err error) []dto.FieldDetail {
	var list domain.ValidationErrors
	if !errors.As(err, &list) {
		var field *domain.ValidationError
		if errors.As(err, &field) {
			return []dto.FieldDetail{{Field: field.Field, Reason: field.Reason}}
		}
		return nil
	}
	out := make([]dto.FieldDetail, 0, len(list))
	for _, e := range list {
		var (
			field      *domain.ValidationError
			classErr   *domain.ClassificationError
			missingRel *domain.MissingRelatedDocumentError
			inv        *domain.InvalidationError
		)
		switch {
		case errors.As(e, &field):
			out = append(out, dto.FieldDetail{Field: field.Field, Reason: field.Reason})
		case errors.As(e, &classErr):
			out = append(out, dto.FieldDetail{Field: "document_type_code", Reason: e.Error()})
		case errors.As(e, &missingRel):
			out = append(out, dto.FieldDetail{Field: "related_document", Reason: e.Error()})
		case errors.As(e, &inv):
			out = append(out, dto.FieldDetail{Field: "invalidation", Reason: inv.Reason})
		default:
			out = append(out, dto.FieldDetail{Reason: e.Error()})
		}
	}
	return out
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
