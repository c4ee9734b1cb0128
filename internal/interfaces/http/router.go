package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/application/lookup"
	"github.com/jhoicas/facturacion-sv/internal/application/purchase"
	"github.com/jhoicas/facturacion-sv/internal/application/retention"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IssueDocument      *billing.IssueDocumentUseCase
	QueryDocument      *billing.DocumentQueryUseCase
	SubmitDocument     *billing.SubmitDocumentUseCase
	InvalidateDocument *billing.InvalidateDocumentUseCase
	RegisterPurchase   *purchase.RegisterPurchaseUseCase
	Reconcile          *retention.ReconcileUseCase
	Lookup             *lookup.LookupUseCase
	JWTSecret          string
	JWTIssuer          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todas las rutas de /api requieren Bearer Token; la empresa sale del token.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.IssueDocument, deps.QueryDocument, deps.SubmitDocument, deps.InvalidateDocument)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Post("/:id/submit", documentHandler.Submit)
	documents.Post("/:id/invalidate", documentHandler.Invalidate)

	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.RegisterPurchase)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)

	retentions := api.Group("/retentions")
	retentionHandler := NewRetentionHandler(deps.Reconcile)
	retentions.Get("/:id/candidates", retentionHandler.Candidates)
	retentions.Post("/:id/reconcile", retentionHandler.Reconcile)

	lookupHandler := NewLookupHandler(deps.Lookup)
	api.Get("/counterparties/lookup", lookupHandler.Counterparties)
	api.Get("/items/lookup", lookupHandler.Items)
}
