// Package memory implementa los repositorios de compras en memoria.
// Sirve para una sola instancia (modo demo sin base de datos) y para tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
)

// Store guarda documentos, pagos y productos. RunPurchase serializa las transacciones
// y, si fn falla, restaura solo las claves que fn modificó.
type Store struct {
	txMu     sync.Mutex
	mu       sync.RWMutex
	docs     map[string]entity.PurchaseDocument
	payments map[string]entity.PaymentAllocation
	products map[string]entity.Product // company|sku
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		docs:     make(map[string]entity.PurchaseDocument),
		payments: make(map[string]entity.PaymentAllocation),
		products: make(map[string]entity.Product),
	}
}

// Documents devuelve el repositorio de documentos sobre el store.
func (s *Store) Documents() repository.PurchaseDocumentRepository { return documents{s: s} }

// Payments devuelve el repositorio de pagos sobre el store.
func (s *Store) Payments() repository.PaymentRepository { return payments{s: s} }

// Products devuelve el catálogo sobre el store.
func (s *Store) Products() repository.ProductRepository { return products{s: s} }

// AddProduct carga un producto en el catálogo.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products[p.CompanyID+"|"+p.SKU] = p
}

// RunPurchase ejecuta fn con los repos del store; si fn falla se deshacen sus cambios.
// Las escrituras hechas fuera de la transacción sobre otras claves se conservan.
func (s *Store) RunPurchase(_ context.Context, fn func(repository.PurchaseDocumentRepository, repository.PaymentRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	u := newUndo()
	if err := fn(documents{s: s, undo: u}, payments{s: s, undo: u}); err != nil {
		s.mu.Lock()
		u.restore(s)
		s.mu.Unlock()
		return err
	}
	return nil
}

// undo valor previo de cada clave tocada por una transacción; nil = la clave no existía.
// Sus métodos se llaman con s.mu tomado. Un *undo nil (fuera de transacción) no registra nada.
type undo struct {
	docs     map[string]*entity.PurchaseDocument
	payments map[string]*entity.PaymentAllocation
}

func newUndo() *undo {
	return &undo{
		docs:     make(map[string]*entity.PurchaseDocument),
		payments: make(map[string]*entity.PaymentAllocation),
	}
}

func (u *undo) doc(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.docs[id]; seen {
		return
	}
	if d, ok := s.docs[id]; ok {
		u.docs[id] = cloneDoc(d)
		return
	}
	u.docs[id] = nil
}

func (u *undo) payment(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.payments[id]; seen {
		return
	}
	if p, ok := s.payments[id]; ok {
		u.payments[id] = &p
		return
	}
	u.payments[id] = nil
}

func (u *undo) restore(s *Store) {
	for id, d := range u.docs {
		if d == nil {
			delete(s.docs, id)
			continue
		}
		s.docs[id] = *d
	}
	for id, p := range u.payments {
		if p == nil {
			delete(s.payments, id)
			continue
		}
		s.payments[id] = *p
	}
}

func cloneDoc(d entity.PurchaseDocument) *entity.PurchaseDocument {
	d.Lines = append([]entity.LineItem(nil), d.Lines...)
	return &d
}

// ── Documentos ───────────────────────────────────────────────────────────────

type documents struct {
	s    *Store
	undo *undo
}

func (r documents) Create(_ context.Context, doc *entity.PurchaseDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.docs {
		if d.CompanyID == doc.CompanyID && d.SupplierTaxID == doc.SupplierTaxID &&
			d.DocumentType == doc.DocumentType && d.Series == doc.Series && d.Number == doc.Number {
			return domain.ErrDuplicate
		}
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	r.undo.doc(r.s, doc.ID)
	for i := range doc.Lines {
		if doc.Lines[i].ID == "" {
			doc.Lines[i].ID = uuid.NewString()
		}
		doc.Lines[i].DocumentID = doc.ID
	}
	r.s.docs[doc.ID] = *cloneDoc(*doc)
	return nil
}

func (r documents) Update(_ context.Context, doc *entity.PurchaseDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.docs[doc.ID]
	if !ok || cur.CompanyID != doc.CompanyID {
		return domain.ErrNotFound
	}
	r.undo.doc(r.s, doc.ID)
	for i := range doc.Lines {
		if doc.Lines[i].ID == "" {
			doc.Lines[i].ID = uuid.NewString()
		}
		doc.Lines[i].DocumentID = doc.ID
	}
	r.s.docs[doc.ID] = *cloneDoc(*doc)
	return nil
}

func (r documents) GetByID(_ context.Context, companyID, id string) (*entity.PurchaseDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.docs[id]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	return cloneDoc(d), nil
}

// List mismo orden que la versión SQL: emisión y alta descendentes.
func (r documents) List(_ context.Context, companyID string, f repository.PurchaseDocumentFilter) ([]*entity.PurchaseDocument, int, error) {
	r.s.mu.RLock()
	var all []*entity.PurchaseDocument
	for _, d := range r.s.docs {
		if d.CompanyID != companyID {
			continue
		}
		if f.SupplierTaxID != "" && d.SupplierTaxID != f.SupplierTaxID {
			continue
		}
		if f.DocumentType != "" && d.DocumentType != f.DocumentType {
			continue
		}
		h := cloneDoc(d)
		h.Lines = nil
		all = append(all, h)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.After(b.IssueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	total := len(all)
	if f.Offset >= total {
		return []*entity.PurchaseDocument{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}

func (r documents) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok || d.CompanyID != companyID {
		return domain.ErrNotFound
	}
	r.undo.doc(r.s, id)
	delete(r.s.docs, id)
	return nil
}

// ── Pagos ────────────────────────────────────────────────────────────────────

type payments struct {
	s    *Store
	undo *undo
}

func (r payments) Create(_ context.Context, p *entity.PaymentAllocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[p.DocumentID]
	if !ok || d.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.undo.payment(r.s, p.ID)
	r.s.payments[p.ID] = *p
	return nil
}

func (r payments) GetByID(_ context.Context, companyID, id string) (*entity.PaymentAllocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r payments) ListByDocument(_ context.Context, companyID, documentID string) ([]entity.PaymentAllocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.byDocument(companyID, documentID), nil
}

func (r payments) byDocument(companyID, documentID string) []entity.PaymentAllocation {
	out := []entity.PaymentAllocation{}
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && p.DocumentID == documentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaidAt.Equal(out[j].PaidAt) {
			return out[i].PaidAt.Before(out[j].PaidAt)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r payments) ListByDocuments(_ context.Context, companyID string, ids []string) (map[string][]entity.PaymentAllocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string][]entity.PaymentAllocation, len(ids))
	for _, id := range ids {
		if list := r.byDocument(companyID, id); len(list) > 0 {
			out[id] = list
		}
	}
	return out, nil
}

func (r payments) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	r.undo.payment(r.s, id)
	delete(r.s.payments, id)
	return nil
}

func (r payments) DeleteByDocument(_ context.Context, companyID, documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.payments {
		if p.CompanyID == companyID && p.DocumentID == documentID {
			r.undo.payment(r.s, id)
			delete(r.s.payments, id)
		}
	}
	return nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type products struct {
	s *Store
}

func (r products) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[companyID+"|"+sku]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
