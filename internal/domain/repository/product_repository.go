package repository

import (
	"context"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo (DIP). El catálogo se mantiene fuera de este servicio.
type ProductRepository interface {
	// GetByCompanyAndSKU devuelve nil, nil si el SKU no existe.
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
}
