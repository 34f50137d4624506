package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
)

var _ repository.PurchaseDocumentRepository = (*PurchaseDocumentRepo)(nil)

// PurchaseDocumentRepo documentos de compra sobre PostgreSQL (usable con pool o tx).
// Create y Update escriben varias tablas: llamarlos dentro de TxRunner.
type PurchaseDocumentRepo struct {
	q Querier
}

// NewPurchaseDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseDocumentRepository(q Querier) *PurchaseDocumentRepo {
	return &PurchaseDocumentRepo{q: q}
}

const documentColumns = `id, company_id, document_type, series, number, supplier_tax_id, supplier_name,
	issue_date, due_date, currency, exchange_rate, tax_applicable, subject_to_detraction,
	detraction_code, detraction_rate, notes, taxable_amount, exempt_amount, unaffected_amount,
	tax_amount, total_amount, detraction_amount, created_at, updated_at`

// Create persiste la cabecera y sus líneas.
func (r *PurchaseDocumentRepo) Create(ctx context.Context, doc *entity.PurchaseDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	b := doc.Breakdown
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.DocumentType, doc.Series, doc.Number, doc.SupplierTaxID, nullIfEmpty(doc.SupplierName),
		doc.IssueDate, doc.DueDate, doc.Currency, doc.ExchangeRate, doc.TaxApplicable, doc.SubjectToDetraction,
		nullIfEmpty(doc.DetractionCode), doc.DetractionRate, nullIfEmpty(doc.Notes),
		b.TaxableAmount, b.ExemptAmount, b.UnaffectedAmount, b.Tax, b.Total, b.DetractionAmount,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: comprobante %s del proveedor %s", domain.ErrDuplicate, doc.DocumentNumber(), doc.SupplierTaxID)
		}
		return fmt.Errorf("insert purchase document: %w", err)
	}
	return r.insertLines(ctx, doc)
}

// Update reemplaza cabecera y líneas.
func (r *PurchaseDocumentRepo) Update(ctx context.Context, doc *entity.PurchaseDocument) error {
	query := `
		UPDATE purchase_documents SET
			document_type = $3, series = $4, number = $5, supplier_tax_id = $6, supplier_name = $7,
			issue_date = $8, due_date = $9, currency = $10, exchange_rate = $11, tax_applicable = $12,
			subject_to_detraction = $13, detraction_code = $14, detraction_rate = $15, notes = $16,
			taxable_amount = $17, exempt_amount = $18, unaffected_amount = $19, tax_amount = $20,
			total_amount = $21, detraction_amount = $22, updated_at = $23
		WHERE id = $1 AND company_id = $2`
	b := doc.Breakdown
	cmd, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.DocumentType, doc.Series, doc.Number, doc.SupplierTaxID, nullIfEmpty(doc.SupplierName),
		doc.IssueDate, doc.DueDate, doc.Currency, doc.ExchangeRate, doc.TaxApplicable,
		doc.SubjectToDetraction, nullIfEmpty(doc.DetractionCode), doc.DetractionRate, nullIfEmpty(doc.Notes),
		b.TaxableAmount, b.ExemptAmount, b.UnaffectedAmount, b.Tax,
		b.Total, b.DetractionAmount, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: comprobante %s del proveedor %s", domain.ErrDuplicate, doc.DocumentNumber(), doc.SupplierTaxID)
		}
		return fmt.Errorf("update purchase document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_document_lines WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete purchase lines: %w", err)
	}
	return r.insertLines(ctx, doc)
}

func (r *PurchaseDocumentRepo) insertLines(ctx context.Context, doc *entity.PurchaseDocument) error {
	query := `
		INSERT INTO purchase_document_lines (id, document_id, position, product_id, product_code, description, unit_code, quantity, unit_price, line_total, tax_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range doc.Lines {
		l := &doc.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.DocumentID = doc.ID
		if l.Position == 0 {
			l.Position = i + 1
		}
		_, err := r.q.Exec(ctx, query,
			l.ID, l.DocumentID, l.Position, nullIfEmpty(l.ProductID), nullIfEmpty(l.ProductCode), l.Description,
			l.UnitCode, l.Quantity, l.UnitPrice, l.LineTotal, nullIfEmpty(string(l.TaxCategory)),
		)
		if err != nil {
			return fmt.Errorf("insert purchase line %d: %w", l.Position, err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *PurchaseDocumentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM purchase_documents WHERE id = $1 AND company_id = $2`
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase document: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, position, product_id, product_code, description, unit_code, quantity, unit_price, line_total, tax_category
		FROM purchase_document_lines WHERE document_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			l                      entity.LineItem
			productID, code, categ *string
		)
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &productID, &code, &l.Description,
			&l.UnitCode, &l.Quantity, &l.UnitPrice, &l.LineTotal, &categ); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		l.ProductID = deref(productID)
		l.ProductCode = deref(code)
		l.TaxCategory = entity.TaxCategory(deref(categ))
		doc.Lines = append(doc.Lines, l)
	}
	return doc, rows.Err()
}

// List lista cabeceras de la empresa, más recientes primero.
func (r *PurchaseDocumentRepo) List(ctx context.Context, companyID string, filter repository.PurchaseDocumentFilter) ([]*entity.PurchaseDocument, int, error) {
	countSQL, pageSQL, args := listQueries(companyID, filter)

	var total int
	if err := r.q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase documents: %w", err)
	}

	var limit any // NULL = sin límite
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	rows, err := r.q.Query(ctx, pageSQL, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase documents: %w", err)
	}
	defer rows.Close()
	list := []*entity.PurchaseDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase document: %w", err)
		}
		list = append(list, doc)
	}
	return list, total, rows.Err()
}

// listQueries arma el conteo y la página con los mismos filtros. La página recibe además
// LIMIT y OFFSET como los dos últimos parámetros.
func listQueries(companyID string, filter repository.PurchaseDocumentFilter) (countSQL, pageSQL string, args []any) {
	where := []string{"company_id = $1"}
	args = []any{companyID}
	if filter.SupplierTaxID != "" {
		args = append(args, filter.SupplierTaxID)
		where = append(where, fmt.Sprintf("supplier_tax_id = $%d", len(args)))
	}
	if filter.DocumentType != "" {
		args = append(args, filter.DocumentType)
		where = append(where, fmt.Sprintf("document_type = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")
	countSQL = "SELECT COUNT(*) FROM purchase_documents WHERE " + cond
	pageSQL = fmt.Sprintf(`
		SELECT %s
		FROM purchase_documents WHERE %s
		ORDER BY issue_date DESC, created_at DESC, id LIMIT $%d OFFSET $%d`,
		documentColumns, cond, len(args)+1, len(args)+2)
	return countSQL, pageSQL, args
}

// Delete elimina el documento; líneas y pagos caen por ON DELETE CASCADE.
func (r *PurchaseDocumentRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_documents WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete purchase document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.PurchaseDocument, error) {
	var (
		doc               entity.PurchaseDocument
		name, code, notes *string
	)
	dest := []any{
		&doc.ID, &doc.CompanyID, &doc.DocumentType, &doc.Series, &doc.Number, &doc.SupplierTaxID, &name,
		&doc.IssueDate, &doc.DueDate, &doc.Currency, &doc.ExchangeRate, &doc.TaxApplicable, &doc.SubjectToDetraction,
		&code, &doc.DetractionRate, &notes,
		&doc.Breakdown.TaxableAmount, &doc.Breakdown.ExemptAmount, &doc.Breakdown.UnaffectedAmount,
		&doc.Breakdown.Tax, &doc.Breakdown.Total, &doc.Breakdown.DetractionAmount,
		&doc.CreatedAt, &doc.UpdatedAt,
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	doc.SupplierName = deref(name)
	doc.DetractionCode = deref(code)
	doc.Notes = deref(notes)
	return &doc, nil
}
