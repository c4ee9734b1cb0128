package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/application/lookup"
	"github.com/jhoicas/facturacion-sv/internal/application/purchase"
	"github.com/jhoicas/facturacion-sv/internal/application/retention"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	domainpurchase "github.com/jhoicas/facturacion-sv/internal/domain/purchase"
	domainretention "github.com/jhoicas/facturacion-sv/internal/domain/retention"
	"github.com/jhoicas/facturacion-sv/internal/infrastructure/mh"
	"github.com/jhoicas/facturacion-sv/internal/infrastructure/mh/signer"
	"github.com/jhoicas/facturacion-sv/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-sv/internal/interfaces/http"
	"github.com/jhoicas/facturacion-sv/pkg/config"
	"github.com/jhoicas/facturacion-sv/pkg/logger"
)

//go:generate swag init -d ../../ -g cmd/api/main.go -o ../../docs --outputTypes go,json --overridesFile ../../.swaggo

// @title                       API de Facturación Electrónica SV
// @version                     1.0
// @description                 Emisión, envío e invalidación de documentos tributarios electrónicos, libro de compras y conciliación de retenciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("mh_environment", cfg.MH.Environment).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	retentionRepo := postgres.NewRetentionRepository(pool)
	counterpartyRepo := postgres.NewCounterpartyRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Firma JWS con el certificado del emisor (XML del MH o .p12)
	jws, err := signer.NewJWSSignerFromFile(cfg.MH.CertPath, cfg.MH.CertPassword)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.MH.CertPath).Msg("cargar certificado de firma")
	}
	mhClient, err := mh.NewClient(mh.Config{
		BaseURL:     cfg.MH.ResolvedBaseURL(),
		Environment: cfg.MH.Environment,
		User:        cfg.MH.User,
		Password:    cfg.MH.Password,
		HTTPClient:  &http.Client{Timeout: cfg.MH.SubmitTimeout + 5*time.Second},
	}, jws, log.WithComponent("mh"))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del servicio de recepción")
	}

	// Un solo guard para envío e invalidación: un documento no tiene dos operaciones activas.
	guard := billing.NewInFlightGuard()
	billingLog := log.WithComponent("billing")
	builder := dte.NewBuilder(dte.NewCalculator(cfg.Fiscal.VATRate))

	issueUC := billing.NewIssueDocumentUseCase(txRunner, companyRepo, builder, billingLog)
	queryUC := billing.NewDocumentQueryUseCase(documentRepo)
	submitUC := billing.NewSubmitDocumentUseCase(documentRepo, companyRepo, mhClient, guard, cfg.MH.SubmitTimeout, billingLog)
	invalidateUC := billing.NewInvalidateDocumentUseCase(documentRepo, companyRepo, mhClient, guard, cfg.MH.SubmitTimeout, billingLog)

	purchaseUC := purchase.NewRegisterPurchaseUseCase(
		purchaseRepo,
		domainpurchase.NewEvaluator(cfg.Fiscal.DeductibilityDays, time.Now),
		log.WithComponent("purchases"),
	)
	reconcileUC := retention.NewReconcileUseCase(
		retentionRepo, documentRepo,
		domainretention.NewEngine(cfg.Fiscal.RetentionRate, cfg.Fiscal.RetentionTolerance),
		cfg.Fiscal.CandidateLookbackMo,
		log.WithComponent("retentions"),
	)
	lookupUC := lookup.NewLookupUseCase(counterpartyRepo, itemRepo, lookup.NewCoordinator(cfg.MH.LookupDebounce), 0)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.MH.SubmitTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	httpRouter.Docs(app, cfg.App.Name)

	httpRouter.Router(app, httpRouter.RouterDeps{
		IssueDocument:      issueUC,
		QueryDocument:      queryUC,
		SubmitDocument:     submitUC,
		InvalidateDocument: invalidateUC,
		RegisterPurchase:   purchaseUC,
		Reconcile:          reconcileUC,
		Lookup:             lookupUC,
		JWTSecret:          cfg.JWT.Secret,
		JWTIssuer:          cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Los envíos en curso siguen su propio tiempo límite; se espera a que terminen.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MH.SubmitTimeout+10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
