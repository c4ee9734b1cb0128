package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/application/lookup"
	"github.com/jhoicas/facturacion-sv/internal/application/purchase"
	"github.com/jhoicas/facturacion-sv/internal/application/retention"
)

// PurchaseHandler libro de compras (protegido).
type PurchaseHandler struct {
	uc *purchase.RegisterPurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.RegisterPurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Evalúa la deducibilidad (ventana de días desde la emisión al cierre del período) y registra la compra.
// @Description  Con dry_run solo evalúa y responde 200.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterPurchaseRequest  true  "document_type, emission_date, applied_period, montos"
// @Success      200   {object}  dto.PurchaseResponse  "dry_run"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Saved {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Libro de compras del período
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        period  query     string  true  "YYYY-MM"
// @Success      200     {array}   dto.PurchaseBookEntryDTO
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListByPeriod(c.Context(), companyID, c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RetentionHandler conciliación de comprobantes de retención (protegido).
type RetentionHandler struct {
	uc *retention.ReconcileUseCase
}

// NewRetentionHandler construye el handler.
func NewRetentionHandler(uc *retention.ReconcileUseCase) *RetentionHandler {
	return &RetentionHandler{uc: uc}
}

// Candidates godoc
// @Summary      Ventas candidatas para conciliar una retención
// @Tags         retentions
// @Security     Bearer
// @Produce      json
// @Param        id    path      string  true   "ID del comprobante de retención"
// @Param        from  query     string  false  "YYYY-MM-DD (por defecto meses previos al comprobante)"
// @Param        to    query     string  false  "YYYY-MM-DD (por defecto fecha del comprobante)"
// @Success      200   {object}  dto.RetentionCandidatesResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/retentions/{id}/candidates [get]
func (h *RetentionHandler) Candidates(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Candidates(c.Context(), companyID, c.Params("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar retención contra ventas
// @Description  Usa el mismo rango que candidates (from/to del body o la ventana por defecto).
// @Tags         retentions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "ID del comprobante de retención"
// @Param        body  body      dto.ReconcileRequest  true  "selected_sale_ids, justification, from, to"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ALREADY_APPLIED"
// @Failure      422   {object}  dto.ErrorResponse  "TOLERANCE_EXCEEDED, EMPTY_SELECTION o VALIDATION"
// @Router       /api/retentions/{id}/reconcile [post]
func (h *RetentionHandler) Reconcile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reconcile(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LookupHandler búsquedas incrementales de contrapartes e ítems (protegido).
// Cada pestaña del cliente manda su propio X-Lookup-Session; sin él se usa el usuario.
type LookupHandler struct {
	uc *lookup.LookupUseCase
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *lookup.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// Counterparties godoc
// @Summary      Buscar contrapartes por identificación o nombre
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        q                 query     string  true   "texto o dígitos del documento"
// @Param        X-Lookup-Session  header    string  false  "sesión de búsqueda del cliente"
// @Success      200               {array}   dto.CounterpartyLookupDTO
// @Failure      409               {object}  dto.ErrorResponse  "STALE_LOOKUP"
// @Router       /api/counterparties/lookup [get]
func (h *LookupHandler) Counterparties(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Counterparties(c.Context(), companyID, lookupSession(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Autocompletar ítems del catálogo
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        q                 query     string  true   "texto"
// @Param        X-Lookup-Session  header    string  false  "sesión de búsqueda del cliente"
// @Success      200               {array}   dto.ItemLookupDTO
// @Failure      409               {object}  dto.ErrorResponse  "STALE_LOOKUP"
// @Router       /api/items/lookup [get]
func (h *LookupHandler) Items(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Items(c.Context(), companyID, lookupSession(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func lookupSession(c *fiber.Ctx) string {
	if s := c.Get("X-Lookup-Session"); s != "" {
		return utils.CopyString(s)
	}
	return GetUserID(c)
}
