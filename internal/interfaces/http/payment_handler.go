package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// PaymentHandler pagos de un documento de compra (protegido).
type PaymentHandler struct {
	uc  *purchase.PaymentUseCase
	log *logger.Logger
}

// NewPaymentHandler construye el handler. log nil equivale a logger.Nop().
func NewPaymentHandler(uc *purchase.PaymentUseCase, log *logger.Logger) *PaymentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentHandler{uc: uc, log: log.WithStr("component", "http")}
}

// Record godoc
// @Summary      Registrar pago
// @Description  Se admite pagar de más; el documento queda PAID con pendiente 0.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del documento"
// @Param        body  body      dto.RecordPaymentRequest  true  "amount (máx. 2 decimales), method, reference, paid_at"
// @Success      201   {object}  dto.PaymentListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Record(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Pagos y estado del documento
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.PaymentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Security     Bearer
// @Param        id          path  string  true  "ID del documento"
// @Param        payment_id  path  string  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/payments/{payment_id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id"), c.Params("payment_id")); err != nil {
		return writeError(c, h.log, err, "pago no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
