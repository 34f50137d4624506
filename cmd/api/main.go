package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	_ "github.com/lfuis201/ferreteriafacturacion-sub004/docs"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/memory"
	infrapdf "github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/pdf"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/postgres"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/ubl"
	httpRouter "github.com/lfuis201/ferreteriafacturacion-sub004/internal/interfaces/http"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/jwt"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

type storage struct {
	txRunner    purchase.TxRunner
	docRepo     repository.PurchaseDocumentRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	close       func()
}

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
		Str("storage", cfg.App.Storage).
		Str("tax_rate", cfg.Purchase.TaxRate.String()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	documentUC := purchase.NewDocumentUseCase(store.txRunner, store.docRepo, store.paymentRepo, cfg.Purchase, log)
	importUC := purchase.NewImportUseCase(ubl.NewIngestor(log), store.productRepo, cfg.Purchase, log)
	paymentUC := purchase.NewPaymentUseCase(store.txRunner, store.docRepo, store.paymentRepo, cfg.Purchase, log)
	pdfUC := purchase.NewPDFUseCase(documentUC, infrapdf.NewMarotoPurchasePDF(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Purchase.MaxImportBytes + 64<<10, // margen para la envoltura multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Compras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: documentUC,
		Imports:   importUC,
		Payments:  paymentUC,
		PDF:       pdfUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage PostgreSQL (con migraciones) o, con APP_STORAGE=memory, el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		s := memory.NewStore()
		if cfg.App.Env == "development" {
			companyID := uuid.NewString()
			token, err := jwt.Generate(cfg.JWT.Secret, uuid.NewString(), companyID, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return nil, err
			}
			log.Info().Str("company_id", companyID).Str("token", token).Msg("modo memoria: token de prueba")
		}
		return &storage{
			txRunner:    s,
			docRepo:     s.Documents(),
			paymentRepo: s.Payments(),
			productRepo: s.Products(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		txRunner:    postgres.NewTxRunner(pool),
		docRepo:     postgres.NewPurchaseDocumentRepository(pool),
		paymentRepo: postgres.NewPaymentRepository(pool),
		productRepo: postgres.NewProductRepository(pool),
		close:       pool.Close,
	}, nil
}
