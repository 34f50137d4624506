// Package purchase orquesta los casos de uso de documentos de compra: cálculo, alta,
// importación desde UBL, pagos y PDF. Los cálculos viven en domain/purchase.
package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// DocumentUseCase alta, edición, consulta y baja de documentos de compra.
// El desglose se recalcula en cada escritura y en cada lectura de detalle.
type DocumentUseCase struct {
	txRunner    TxRunner
	docRepo     repository.PurchaseDocumentRepository
	paymentRepo repository.PaymentRepository
	computer    *domainpurchase.Computer
	cfg         config.PurchaseConfig
	currencies  currencies
	log         *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.PurchaseDocumentRepository,
	paymentRepo repository.PaymentRepository,
	cfg config.PurchaseConfig,
	log *logger.Logger,
) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		txRunner:    txRunner,
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		computer:    domainpurchase.NewComputer(cfg.TaxRate),
		cfg:         cfg,
		currencies:  newCurrencies(cfg),
		log:         log.WithStr("component", "purchase"),
	}
}

// Compute calcula el desglose de un borrador sin persistir nada.
// Las líneas incompletas se devuelven pero no suman.
func (uc *DocumentUseCase) Compute(_ context.Context, in dto.ComputeRequest) (*dto.ComputeResponse, error) {
	lines := linesFromRequest(in.Lines)
	for _, l := range lines {
		if !l.TaxCategory.Valid() {
			return nil, fmt.Errorf("%w: línea %d: afectación desconocida %q", domain.ErrInvalidInput, l.Position, l.TaxCategory)
		}
	}
	taxApplicable := in.TaxApplicable == nil || *in.TaxApplicable
	var rate decimal.NullDecimal
	if in.SubjectToDetraction {
		rate = detractionRate(true, in.DetractionCode, in.DetractionRate, uc.cfg.DefaultDetractionRate)
	}

	for i := range lines {
		lines[i].LineTotal = domainpurchase.LineTotal(lines[i])
	}
	b := uc.computer.Compute(lines, taxApplicable, rate)
	return &dto.ComputeResponse{
		Lines:     lineResponses(lines),
		Breakdown: breakdownResponse(b),
	}, nil
}

// Create valida, calcula y persiste un documento nuevo.
func (uc *DocumentUseCase) Create(ctx context.Context, companyID string, in dto.PurchaseDocumentRequest) (*dto.PurchaseDocumentResponse, error) {
	if !isID(companyID) {
		return nil, domain.ErrUnauthorized
	}
	doc, err := uc.documentFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	if err := domainpurchase.ValidateDocument(doc); err != nil {
		return nil, err
	}
	uc.computer.Apply(doc)

	now := time.Now().UTC()
	doc.CreatedAt, doc.UpdatedAt = now, now

	err = uc.txRunner.RunPurchase(ctx, func(docRepo repository.PurchaseDocumentRepository, _ repository.PaymentRepository) error {
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("document_id", doc.ID).
		Str("number", doc.DocumentNumber()).
		Str("total", doc.Breakdown.Total.StringFixed(2)).
		Msg("documento de compra registrado")

	resp := uc.currencies.documentResponse(doc, domainpurchase.Reconcile(doc.Breakdown.Total, nil))
	return &resp, nil
}

// Update reemplaza cabecera y líneas de un documento existente y recalcula el desglose.
func (uc *DocumentUseCase) Update(ctx context.Context, companyID, id string, in dto.PurchaseDocumentRequest) (*dto.PurchaseDocumentResponse, error) {
	if !areIDs(companyID, id) {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.documentFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	if err := domainpurchase.ValidateDocument(doc); err != nil {
		return nil, err
	}
	uc.computer.Apply(doc)

	var payments []entity.PaymentAllocation
	err = uc.txRunner.RunPurchase(ctx, func(docRepo repository.PurchaseDocumentRepository, paymentRepo repository.PaymentRepository) error {
		current, err := docRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		doc.CreatedAt = current.CreatedAt
		doc.UpdatedAt = time.Now().UTC()
		if err := docRepo.Update(ctx, doc); err != nil {
			return err
		}
		payments, err = paymentRepo.ListByDocument(ctx, companyID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := uc.currencies.documentResponse(doc, domainpurchase.Reconcile(doc.Breakdown.Total, payments))
	return &resp, nil
}

// Get devuelve el documento con el desglose recalculado desde sus líneas y la conciliación de pagos.
func (uc *DocumentUseCase) Get(ctx context.Context, companyID, id string) (*dto.PurchaseDocumentResponse, error) {
	doc, payments, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := uc.currencies.documentResponse(doc, domainpurchase.Reconcile(doc.Breakdown.Total, payments))
	return &resp, nil
}

// load obtiene documento y pagos; ErrNotFound si no existe en la empresa.
func (uc *DocumentUseCase) load(ctx context.Context, companyID, id string) (*entity.PurchaseDocument, []entity.PaymentAllocation, error) {
	if !areIDs(companyID, id) {
		return nil, nil, domain.ErrNotFound
	}
	doc, err := uc.docRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	uc.computer.Apply(doc)

	payments, err := uc.paymentRepo.ListByDocument(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	return doc, payments, nil
}

// List devuelve cabeceras paginadas con estado de pago.
func (uc *DocumentUseCase) List(ctx context.Context, companyID string, in dto.PurchaseListRequest) (*dto.PurchaseDocumentListResponse, error) {
	if !isID(companyID) {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	filter := repository.PurchaseDocumentFilter{
		SupplierTaxID: strings.TrimSpace(in.SupplierTaxID),
		DocumentType:  entity.DocumentType(strings.ToUpper(strings.TrimSpace(in.DocumentType))),
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if filter.DocumentType != "" && !filter.DocumentType.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento desconocido %q", domain.ErrInvalidInput, in.DocumentType)
	}

	docs, total, err := uc.docRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	payments, err := uc.paymentRepo.ListByDocuments(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PurchaseDocumentResponse, 0, len(docs))
	for _, d := range docs {
		rec := domainpurchase.Reconcile(d.Breakdown.Total, payments[d.ID])
		items = append(items, uc.currencies.documentResponse(d, rec))
	}
	return &dto.PurchaseDocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina el documento junto con sus pagos.
func (uc *DocumentUseCase) Delete(ctx context.Context, companyID, id string) error {
	if !areIDs(companyID, id) {
		return domain.ErrNotFound
	}
	err := uc.txRunner.RunPurchase(ctx, func(docRepo repository.PurchaseDocumentRepository, paymentRepo repository.PaymentRepository) error {
		if err := paymentRepo.DeleteByDocument(ctx, companyID, id); err != nil {
			return err
		}
		return docRepo.Delete(ctx, companyID, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("document_id", id).Msg("documento de compra eliminado")
	return nil
}
