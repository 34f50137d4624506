package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents *purchase.DocumentUseCase
	Imports   *purchase.ImportUseCase
	Payments  *purchase.PaymentUseCase
	PDF       *purchase.PDFUseCase
	JWTSecret string
	Log       *logger.Logger // nil = sin log
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Documents, deps.Imports, deps.PDF, deps.Log)
	purchases.Post("/compute", purchaseHandler.Compute)
	purchases.Post("/import", purchaseHandler.Import)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Get("/:id/pdf", purchaseHandler.DownloadPDF)

	paymentHandler := NewPaymentHandler(deps.Payments, deps.Log)
	purchases.Post("/:id/payments", paymentHandler.Record)
	purchases.Get("/:id/payments", paymentHandler.List)
	purchases.Delete("/:id/payments/:payment_id", paymentHandler.Delete)
}
