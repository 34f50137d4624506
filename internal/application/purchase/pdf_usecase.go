package purchase

import (
	"context"
	"fmt"
	"strings"

	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
)

// PDFUseCase genera el resumen PDF de un documento de compra.
type PDFUseCase struct {
	documents *DocumentUseCase
	generator PDFGenerator
}

// NewPDFUseCase reutiliza la carga (y el recálculo) de DocumentUseCase.
func NewPDFUseCase(documents *DocumentUseCase, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{documents: documents, generator: generator}
}

// Download devuelve los bytes del PDF y un nombre de archivo sugerido.
//
// Retorna domain.ErrNotFound si el documento no existe en la empresa.
func (uc *PDFUseCase) Download(ctx context.Context, companyID, id string) (pdfBytes []byte, filename string, err error) {
	doc, payments, err := uc.documents.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	rec := domainpurchase.Reconcile(doc.Breakdown.Total, payments)

	pdfBytes, err = uc.generator.GeneratePurchasePDF(ctx, doc, uc.documents.currencies.code(doc.Currency), payments, rec)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento de compra: %w", err)
	}
	name := strings.NewReplacer("/", "_", " ", "_").Replace(doc.SupplierTaxID + "_" + doc.DocumentNumber())
	return pdfBytes, "compra_" + strings.Trim(name, "_") + ".pdf", nil
}
