package repository

import (
	"context"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// PurchaseDocumentFilter criterios de listado. Los campos vacíos no filtran.
type PurchaseDocumentFilter struct {
	SupplierTaxID string
	DocumentType  entity.DocumentType
	Limit         int
	Offset        int
}

// PurchaseDocumentRepository puerto de persistencia para documentos de compra y sus líneas.
// Todas las operaciones están acotadas a la empresa del llamador.
type PurchaseDocumentRepository interface {
	// Create persiste cabecera, desglose y líneas. ErrDuplicate si el comprobante ya existe.
	Create(ctx context.Context, doc *entity.PurchaseDocument) error
	// Update reemplaza cabecera, desglose y líneas. ErrNotFound si no existe.
	Update(ctx context.Context, doc *entity.PurchaseDocument) error
	// GetByID devuelve el documento con sus líneas ordenadas, o nil, nil si no existe.
	GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseDocument, error)
	// List devuelve cabeceras con desglose (sin líneas) y el total de filas sin paginar.
	List(ctx context.Context, companyID string, filter PurchaseDocumentFilter) ([]*entity.PurchaseDocument, int, error)
	Delete(ctx context.Context, companyID, id string) error
}
