package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// PurchaseHandler documentos de compra: vista previa, importación UBL, CRUD y PDF (protegido).
type PurchaseHandler struct {
	documents *purchase.DocumentUseCase
	imports   *purchase.ImportUseCase
	pdf       *purchase.PDFUseCase
	log       *logger.Logger
}

// NewPurchaseHandler construye el handler. log nil equivale a logger.Nop().
func NewPurchaseHandler(documents *purchase.DocumentUseCase, imports *purchase.ImportUseCase, pdf *purchase.PDFUseCase, log *logger.Logger) *PurchaseHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseHandler{documents: documents, imports: imports, pdf: pdf, log: log.WithStr("component", "http")}
}

// Compute godoc
// @Summary      Vista previa del desglose
// @Description  Calcula gravado, exonerado, inafecto, IGV, total y detracción sin guardar nada.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ComputeRequest  true  "líneas y banderas de IGV y detracción"
// @Success      200   {object}  dto.ComputeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/compute [post]
func (h *PurchaseHandler) Compute(c *fiber.Ctx) error {
	var in dto.ComputeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.documents.Compute(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar XML UBL de proveedor
// @Description  Acepta multipart (campo "file") o el XML en el cuerpo. Devuelve un borrador con
//
//	las líneas resueltas contra el catálogo; un XML ilegible devuelve advertencias, no error.
//
// @Tags         purchases
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       xml
// @Produce      json
// @Param        file  formData  file  false  "XML de factura, nota de crédito o nota de débito"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/import [post]
func (h *PurchaseHandler) Import(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	payload, err := readImportPayload(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.imports.Import(c.Context(), companyID, payload)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	return c.JSON(out)
}

func readImportPayload(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return append([]byte(nil), c.Body()...), nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Create godoc
// @Summary      Registrar documento de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PurchaseDocumentRequest  true  "cabecera y líneas"
// @Success      201   {object}  dto.PurchaseDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.PurchaseDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.documents.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        supplier_tax_id  query     string  false  "RUC del proveedor"
// @Param        document_type    query     string  false  "FACTURA|NOTA_CREDITO|NOTA_DEBITO|ORDEN_COMPRA"
// @Param        limit            query     int     false  "máximo 100"
// @Param        offset           query     int     false  "desplazamiento"
// @Success      200              {object}  dto.PurchaseDocumentListResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	in := dto.PurchaseListRequest{
		PageRequest:   dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
		SupplierTaxID: c.Query("supplier_tax_id"),
		DocumentType:  c.Query("document_type"),
	}
	out, err := h.documents.List(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de documento de compra
// @Description  El desglose se recalcula desde las líneas en cada consulta.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.PurchaseDocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.documents.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar documento de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "ID del documento"
// @Param        body  body      dto.PurchaseDocumentRequest  true  "cabecera y líneas completas"
// @Success      200   {object}  dto.PurchaseDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.PurchaseDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.documents.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento de compra y sus pagos
// @Tags         purchases
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.documents.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar resumen PDF
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
func (h *PurchaseHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.pdf.Download(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, "documento de compra no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
