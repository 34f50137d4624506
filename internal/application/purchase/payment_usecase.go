package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// PaymentUseCase registro de pagos y conciliación contra el total del documento.
// Se permite pagar de más: el documento queda PAID y Pending en 0.
type PaymentUseCase struct {
	txRunner    TxRunner
	docRepo     repository.PurchaseDocumentRepository
	paymentRepo repository.PaymentRepository
	computer    *domainpurchase.Computer
	log         *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner TxRunner,
	docRepo repository.PurchaseDocumentRepository,
	paymentRepo repository.PaymentRepository,
	cfg config.PurchaseConfig,
	log *logger.Logger,
) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{
		txRunner:    txRunner,
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		computer:    domainpurchase.NewComputer(cfg.TaxRate),
		log:         log.WithStr("component", "purchase_payments"),
	}
}

// Record registra un pago y devuelve el estado resultante del documento.
func (uc *PaymentUseCase) Record(ctx context.Context, companyID, documentID string, in dto.RecordPaymentRequest) (*dto.PaymentListResponse, error) {
	if !areIDs(companyID, documentID) {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	paidAt := now
	if s := strings.TrimSpace(in.PaidAt); s != "" {
		t, err := parsePaidAt(s)
		if err != nil {
			return nil, err
		}
		paidAt = t
	}
	p := &entity.PaymentAllocation{
		CompanyID:  companyID,
		DocumentID: documentID,
		Amount:     in.Amount,
		Method:     strings.ToUpper(strings.TrimSpace(in.Method)),
		Reference:  strings.TrimSpace(in.Reference),
		Memo:       strings.TrimSpace(in.Memo),
		PaidAt:     paidAt,
		CreatedAt:  now,
	}
	if err := domainpurchase.ValidateAllocation(p); err != nil {
		return nil, err
	}

	var (
		doc      *entity.PurchaseDocument
		payments []entity.PaymentAllocation
	)
	err := uc.txRunner.RunPurchase(ctx, func(docRepo repository.PurchaseDocumentRepository, paymentRepo repository.PaymentRepository) error {
		var err error
		doc, err = docRepo.GetByID(ctx, companyID, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.Create(ctx, p); err != nil {
			return err
		}
		payments, err = paymentRepo.ListByDocument(ctx, companyID, documentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := uc.statusResponse(doc, payments)
	uc.log.Info().
		Str("company_id", companyID).
		Str("document_id", documentID).
		Str("amount", p.Amount.StringFixed(2)).
		Str("status", resp.Status.Status).
		Msg("pago registrado")
	return resp, nil
}

// List pagos del documento con su conciliación.
func (uc *PaymentUseCase) List(ctx context.Context, companyID, documentID string) (*dto.PaymentListResponse, error) {
	if !areIDs(companyID, documentID) {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.docRepo.GetByID(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.paymentRepo.ListByDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	return uc.statusResponse(doc, payments), nil
}

// Delete elimina un pago del documento indicado.
func (uc *PaymentUseCase) Delete(ctx context.Context, companyID, documentID, paymentID string) error {
	if !areIDs(companyID, documentID, paymentID) {
		return domain.ErrNotFound
	}
	p, err := uc.paymentRepo.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return err
	}
	if p == nil || p.DocumentID != documentID {
		return domain.ErrNotFound
	}
	if err := uc.paymentRepo.Delete(ctx, companyID, paymentID); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("document_id", documentID).Str("payment_id", paymentID).Msg("pago eliminado")
	return nil
}

// statusResponse recalcula el desglose desde las líneas antes de conciliar.
func (uc *PaymentUseCase) statusResponse(doc *entity.PurchaseDocument, payments []entity.PaymentAllocation) *dto.PaymentListResponse {
	uc.computer.Apply(doc)
	out := &dto.PaymentListResponse{Payments: make([]dto.PaymentResponse, len(payments))}
	for i, p := range payments {
		out.Payments[i] = paymentResponse(p)
	}
	out.Status = paymentStatusResponse(doc.Breakdown.Total, domainpurchase.Reconcile(doc.Breakdown.Total, payments))
	return out
}

func parsePaidAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: paid_at debe ser RFC3339 o YYYY-MM-DD", domain.ErrInvalidInput)
}
