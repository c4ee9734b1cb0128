package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/application/dto"
)

// DocumentHandler emisión, envío e invalidación de documentos tributarios (protegido).
type DocumentHandler struct {
	issue      *billing.IssueDocumentUseCase
	query      *billing.DocumentQueryUseCase
	submit     *billing.SubmitDocumentUseCase
	invalidate *billing.InvalidateDocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(
	issue *billing.IssueDocumentUseCase,
	query *billing.DocumentQueryUseCase,
	submit *billing.SubmitDocumentUseCase,
	invalidate *billing.InvalidateDocumentUseCase,
) *DocumentHandler {
	return &DocumentHandler{issue: issue, query: query, submit: submit, invalidate: invalidate}
}

// Create godoc
// @Summary      Emitir documento tributario
// @Description  Calcula totales, valida y persiste el documento en estado GENERATED con su número de control.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IssueDocumentRequest  true  "document_type_code, counterparty, operation_condition, emission_date, lines, related_document (notas)"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "VALIDATION, CLASSIFICATION o MISSING_RELATED_DOCUMENT"
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.IssueDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.issue.Issue(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.query.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar o reenviar documento
// @Description  200 con el estado resultante (ACCEPTED o REJECTED con detalle). 409 si hay un envío en curso
// @Description  o el documento ya tiene resultado; 503 si no hubo respuesta (queda SUBMITTED y puede reintentarse).
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "IN_FLIGHT o INVALID_TRANSITION"
// @Failure      503  {object}  dto.ErrorResponse  "NETWORK"
// @Router       /api/documents/{id}/submit [post]
func (h *DocumentHandler) Submit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	// El id queda como llave del guard de envíos; no puede apuntar al buffer de fasthttp.
	out, err := h.submit.Submit(c.Context(), companyID, utils.CopyString(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invalidate godoc
// @Summary      Invalidar documento aceptado
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID del documento"
// @Param        body  body      dto.InvalidateDocumentRequest  true  "reason_category, motive, replacement_code (NULLITY), responsible, requester"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "INVALIDATION"
// @Failure      503   {object}  dto.ErrorResponse  "NETWORK"
// @Router       /api/documents/{id}/invalidate [post]
func (h *DocumentHandler) Invalidate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.InvalidateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.invalidate.Invalidate(c.Context(), companyID, utils.CopyString(c.Params("id")), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
