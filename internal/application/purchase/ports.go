package purchase

import (
	"context"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de documentos y pagos atados a ella.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		docRepo repository.PurchaseDocumentRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// Ingestor lee un comprobante electrónico y resuelve sus líneas contra el catálogo.
type Ingestor interface {
	Ingest(ctx context.Context, payload []byte, catalog domainpurchase.ProductLookup) domainpurchase.IngestResult
}

// PDFGenerator genera el resumen PDF de un documento de compra.
type PDFGenerator interface {
	GeneratePurchasePDF(
		ctx context.Context,
		doc *entity.PurchaseDocument,
		currencyCode string,
		payments []entity.PaymentAllocation,
		rec entity.Reconciliation,
	) ([]byte, error)
}
