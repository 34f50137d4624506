package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura del catálogo de productos sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU exacto.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, sku, name, unit_measure, created_at, updated_at
		FROM products WHERE company_id = $1 AND sku = $2`
	var (
		p    entity.Product
		unit *string
	)
	err := r.q.QueryRow(ctx, query, companyID, sku).Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	p.UnitMeasure = deref(unit)
	return &p, nil
}
