package repository

import (
	"context"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para pagos aplicados a documentos de compra.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.PaymentAllocation) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, companyID, id string) (*entity.PaymentAllocation, error)
	// ListByDocument devuelve los pagos del documento en orden de fecha de pago.
	ListByDocument(ctx context.Context, companyID, documentID string) ([]entity.PaymentAllocation, error)
	// ListByDocuments agrupa por documento; usado para el estado de pago en listados.
	ListByDocuments(ctx context.Context, companyID string, documentIDs []string) (map[string][]entity.PaymentAllocation, error)
	Delete(ctx context.Context, companyID, id string) error
	DeleteByDocument(ctx context.Context, companyID, documentID string) error
}
