package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos de documentos de compra sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, document_id, amount, method, reference, memo, paid_at, created_at`

// Create registra un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.PaymentAllocation) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO purchase_payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.DocumentID, p.Amount,
		nullIfEmpty(p.Method), nullIfEmpty(p.Reference), nullIfEmpty(p.Memo), p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago.
func (r *PaymentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PaymentAllocation, error) {
	query := `SELECT ` + paymentColumns + ` FROM purchase_payments WHERE id = $1 AND company_id = $2`
	p, err := scanPayment(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByDocument pagos de un documento.
func (r *PaymentRepo) ListByDocument(ctx context.Context, companyID, documentID string) ([]entity.PaymentAllocation, error) {
	query := `SELECT ` + paymentColumns + ` FROM purchase_payments
		WHERE company_id = $1 AND document_id = $2 ORDER BY paid_at, created_at`
	rows, err := r.q.Query(ctx, query, companyID, documentID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := []entity.PaymentAllocation{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByDocuments pagos de varios documentos en una sola consulta.
func (r *PaymentRepo) ListByDocuments(ctx context.Context, companyID string, documentIDs []string) (map[string][]entity.PaymentAllocation, error) {
	out := make(map[string][]entity.PaymentAllocation, len(documentIDs))
	if len(documentIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM purchase_payments
		WHERE company_id = $1 AND document_id = ANY($2::uuid[]) ORDER BY paid_at, created_at`
	rows, err := r.q.Query(ctx, query, companyID, documentIDs)
	if err != nil {
		return nil, fmt.Errorf("list payments by documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out[p.DocumentID] = append(out[p.DocumentID], p)
	}
	return out, rows.Err()
}

// Delete elimina un pago.
func (r *PaymentRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_payments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByDocument elimina todos los pagos de un documento.
func (r *PaymentRepo) DeleteByDocument(ctx context.Context, companyID, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM purchase_payments WHERE company_id = $1 AND document_id = $2`, companyID, documentID)
	if err != nil {
		return fmt.Errorf("delete payments by document: %w", err)
	}
	return nil
}

func scanPayment(row pgx.Row) (entity.PaymentAllocation, error) {
	var (
		p                 entity.PaymentAllocation
		method, ref, memo *string
	)
	err := row.Scan(&p.ID, &p.CompanyID, &p.DocumentID, &p.Amount, &method, &ref, &memo, &p.PaidAt, &p.CreatedAt)
	p.Method = deref(method)
	p.Reference = deref(ref)
	p.Memo = deref(memo)
	return p, err
}
