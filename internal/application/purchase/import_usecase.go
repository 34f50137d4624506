package purchase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/repository"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/sunat"
)

// ImportUseCase convierte el XML de un proveedor en un borrador de documento (no persiste).
// El usuario revisa las líneas sin producto y luego confirma con Create.
type ImportUseCase struct {
	ingestor    Ingestor
	productRepo repository.ProductRepository
	computer    *domainpurchase.Computer
	cfg         config.PurchaseConfig
	currencies  currencies
	log         *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(ingestor Ingestor, productRepo repository.ProductRepository, cfg config.PurchaseConfig, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		ingestor:    ingestor,
		productRepo: productRepo,
		computer:    domainpurchase.NewComputer(cfg.TaxRate),
		cfg:         cfg,
		currencies:  newCurrencies(cfg),
		log:         log.WithStr("component", "purchase_import"),
	}
}

// catalogFor adapta el repositorio de productos al ProductLookup del dominio, acotado a la empresa.
func catalogFor(products repository.ProductRepository, companyID string) domainpurchase.ProductLookup {
	return domainpurchase.LookupFunc(func(ctx context.Context, code string) (domainpurchase.CatalogMatch, bool, error) {
		p, err := products.GetByCompanyAndSKU(ctx, companyID, code)
		if err != nil {
			return domainpurchase.CatalogMatch{}, false, err
		}
		if p == nil {
			return domainpurchase.CatalogMatch{}, false, nil
		}
		return domainpurchase.CatalogMatch{ProductID: p.ID, Name: p.Name, UnitCode: p.UnitMeasure}, true, nil
	})
}

// Import procesa el XML. Solo falla si el contenido excede el tamaño permitido;
// un XML ilegible devuelve un resultado vacío con advertencias.
func (uc *ImportUseCase) Import(ctx context.Context, companyID string, payload []byte) (*dto.ImportResponse, error) {
	if !isID(companyID) {
		return nil, domain.ErrUnauthorized
	}
	if uc.cfg.MaxImportBytes > 0 && len(payload) > uc.cfg.MaxImportBytes {
		return nil, fmt.Errorf("%w: el archivo excede %d bytes", domain.ErrInvalidInput, uc.cfg.MaxImportBytes)
	}

	res := uc.ingestor.Ingest(ctx, payload, catalogFor(uc.productRepo, companyID))
	h := res.Header
	warnings := append([]string{}, res.Warnings...)

	// Sin IGV declarado explícitamente en cero se asume afecto.
	taxApplicable := !(h.DeclaredTax.Valid && h.DeclaredTax.Decimal.IsZero())
	b := uc.computer.Compute(res.Lines, taxApplicable, decimal.NullDecimal{})

	if h.DeclaredPayable.Valid && len(res.Lines) > 0 {
		declared := domainpurchase.Round2(h.DeclaredPayable.Decimal)
		if !declared.Equal(b.Total) {
			warnings = append(warnings, fmt.Sprintf(
				"el total declarado (%s) difiere del recalculado (%s)", declared.StringFixed(2), b.Total.StringFixed(2)))
		}
	}

	header := dto.ImportHeaderResponse{
		DocumentID:      h.DocumentID,
		DocumentType:    string(documentTypeFromCode(h.InvoiceTypeCode)),
		InvoiceTypeCode: h.InvoiceTypeCode,
		CurrencyCode:    h.CurrencyCode,
		SupplierTaxID:   h.SupplierTaxID,
		SupplierName:    h.SupplierName,
		DeclaredTax:     h.DeclaredTax,
		DeclaredPayable: h.DeclaredPayable,
		Digest:          h.Digest,
	}
	header.Series, header.Number = splitDocumentID(h.DocumentID)
	if h.IssueDate != nil {
		header.IssueDate = h.IssueDate.Format(dateLayout)
	}
	if h.DueDate != nil {
		header.DueDate = h.DueDate.Format(dateLayout)
	}
	if h.CurrencyCode != "" {
		if cur, err := uc.currencies.parse(h.CurrencyCode); err == nil {
			header.Currency = string(cur)
		} else {
			warnings = append(warnings, fmt.Sprintf("moneda no soportada: %s", h.CurrencyCode))
		}
	}
	if h.SupplierTaxID != "" {
		if err := sunat.ValidateRUC(h.SupplierTaxID); err != nil {
			warnings = append(warnings, fmt.Sprintf("RUC del proveedor inválido: %s", h.SupplierTaxID))
		}
	}

	unmatched := 0
	for _, l := range res.Lines {
		if !l.Matched() {
			unmatched++
		}
	}
	if unmatched > 0 {
		uc.log.Warn().Str("company_id", companyID).Str("document", h.DocumentID).Int("unmatched", unmatched).
			Msg("líneas sin producto en catálogo")
	}

	return &dto.ImportResponse{
		Header:    header,
		Lines:     lineResponses(res.Lines),
		Breakdown: breakdownResponse(b),
		Discarded: res.Discarded,
		Unmatched: unmatched,
		Warnings:  warnings,
	}, nil
}

func documentTypeFromCode(code string) entity.DocumentType {
	switch code {
	case sunat.DocTypeFactura:
		return entity.DocumentTypeInvoice
	case sunat.DocTypeNotaCredito:
		return entity.DocumentTypeCreditNote
	case sunat.DocTypeNotaDebito:
		return entity.DocumentTypeDebitNote
	}
	return ""
}

// splitDocumentID "F001-00004521" -> ("F001", "00004521").
func splitDocumentID(id string) (series, number string) {
	if i := strings.LastIndex(id, "-"); i > 0 {
		return id[:i], id[i+1:]
	}
	return "", id
}
