package purchase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	domainpurchase "github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/sunat"
)

const dateLayout = "2006-01-02"

// currencies traduce etiquetas de moneda del exterior al enum cerrado del dominio y viceversa.
type currencies struct {
	local, foreign string
}

func newCurrencies(cfg config.PurchaseConfig) currencies {
	c := currencies{local: strings.ToUpper(cfg.LocalCurrency), foreign: strings.ToUpper(cfg.ForeignCurrency)}
	if c.local == "" {
		c.local = sunat.CurrencyPEN
	}
	if c.foreign == "" {
		c.foreign = sunat.CurrencyUSD
	}
	return c
}

// parse vacío = moneda local.
func (c currencies) parse(label string) (entity.Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "", string(entity.CurrencyLocal):
		return entity.CurrencyLocal, nil
	case string(entity.CurrencyForeign):
		return entity.CurrencyForeign, nil
	}
	code, ok := sunat.NormalizeCurrency(label)
	if !ok {
		code = strings.ToUpper(strings.TrimSpace(label))
	}
	switch code {
	case c.local:
		return entity.CurrencyLocal, nil
	case c.foreign:
		return entity.CurrencyForeign, nil
	}
	return "", fmt.Errorf("%w: moneda no soportada %q", domain.ErrInvalidInput, label)
}

func (c currencies) code(cur entity.Currency) string {
	if cur == entity.CurrencyForeign {
		return c.foreign
	}
	return c.local
}

// detractionRate resuelve la tasa: la explícita, la del catálogo 54 por código o la de configuración.
func detractionRate(subject bool, code string, explicit, fallback decimal.NullDecimal) decimal.NullDecimal {
	if !subject {
		return explicit
	}
	if explicit.Valid {
		return explicit
	}
	if d, ok := sunat.LookupDetraction(code); ok {
		return decimal.NewNullDecimal(d.Rate)
	}
	return fallback
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

func linesFromRequest(in []dto.PurchaseLineRequest) []entity.LineItem {
	lines := make([]entity.LineItem, len(in))
	for i, l := range in {
		item := entity.LineItem{
			Position:    i + 1,
			ProductCode: strings.TrimSpace(l.ProductCode),
			Description: strings.TrimSpace(l.Description),
			UnitCode:    strings.ToUpper(strings.TrimSpace(l.UnitCode)),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxCategory: entity.TaxCategory(strings.ToUpper(strings.TrimSpace(l.TaxCategory))),
		}
		if l.ProductID != nil {
			item.ProductID = strings.TrimSpace(*l.ProductID)
		}
		if item.UnitCode == "" {
			item.UnitCode = domainpurchase.DefaultUnitCode
		}
		lines[i] = item
	}
	return lines
}

// documentFromRequest arma la entidad sin calcular; el llamador valida y aplica el Computer.
func (uc *DocumentUseCase) documentFromRequest(companyID string, in dto.PurchaseDocumentRequest) (*entity.PurchaseDocument, error) {
	issue, err := parseDate("issue_date", in.IssueDate)
	if err != nil {
		return nil, err
	}
	var due *time.Time
	if strings.TrimSpace(in.DueDate) != "" {
		t, err := parseDate("due_date", in.DueDate)
		if err != nil {
			return nil, err
		}
		due = &t
	}
	lines := linesFromRequest(in.Lines)
	for _, l := range lines {
		if l.ProductID != "" && !isID(l.ProductID) {
			return nil, fmt.Errorf("%w: línea %d: product_id debe ser un UUID", domain.ErrInvalidInput, l.Position)
		}
	}
	cur, err := uc.currencies.parse(in.Currency)
	if err != nil {
		return nil, err
	}
	taxApplicable := true
	if in.TaxApplicable != nil {
		taxApplicable = *in.TaxApplicable
	}

	doc := &entity.PurchaseDocument{
		CompanyID:           companyID,
		DocumentType:        entity.DocumentType(strings.ToUpper(strings.TrimSpace(in.DocumentType))),
		Series:              strings.ToUpper(strings.TrimSpace(in.Series)),
		Number:              strings.TrimSpace(in.Number),
		SupplierTaxID:       strings.TrimSpace(in.SupplierTaxID),
		SupplierName:        strings.TrimSpace(in.SupplierName),
		IssueDate:           issue,
		DueDate:             due,
		Currency:            cur,
		ExchangeRate:        in.ExchangeRate,
		TaxApplicable:       taxApplicable,
		SubjectToDetraction: in.SubjectToDetraction,
		DetractionCode:      strings.TrimSpace(in.DetractionCode),
		DetractionRate:      detractionRate(in.SubjectToDetraction, in.DetractionCode, in.DetractionRate, uc.cfg.DefaultDetractionRate),
		Notes:               strings.TrimSpace(in.Notes),
		Lines:               lines,
	}
	return doc, nil
}

func breakdownResponse(b entity.TaxBreakdown) dto.BreakdownResponse {
	return dto.BreakdownResponse{
		TaxableAmount:    b.TaxableAmount,
		ExemptAmount:     b.ExemptAmount,
		UnaffectedAmount: b.UnaffectedAmount,
		Tax:              b.Tax,
		Total:            b.Total,
		DetractionAmount: b.DetractionAmount,
	}
}

func lineResponses(lines []entity.LineItem) []dto.PurchaseLineResponse {
	out := make([]dto.PurchaseLineResponse, len(lines))
	for i, l := range lines {
		r := dto.PurchaseLineResponse{
			ID:          l.ID,
			Position:    l.Position,
			ProductCode: l.ProductCode,
			Description: l.Description,
			UnitCode:    l.UnitCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
			TaxCategory: string(l.TaxCategory),
			Matched:     l.Matched(),
		}
		if l.Matched() {
			id := l.ProductID
			r.ProductID = &id
		}
		out[i] = r
	}
	return out
}

func paymentStatusResponse(total decimal.Decimal, rec entity.Reconciliation) dto.PaymentStatusResponse {
	return dto.PaymentStatusResponse{
		Total:   domainpurchase.Round2(total),
		Paid:    rec.Paid,
		Pending: rec.Pending,
		Status:  string(rec.Status),
	}
}

func paymentResponse(p entity.PaymentAllocation) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		Memo:       p.Memo,
		PaidAt:     p.PaidAt.Format(time.RFC3339),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

func (c currencies) documentResponse(doc *entity.PurchaseDocument, rec entity.Reconciliation) dto.PurchaseDocumentResponse {
	r := dto.PurchaseDocumentResponse{
		ID:                  doc.ID,
		CompanyID:           doc.CompanyID,
		DocumentType:        string(doc.DocumentType),
		Series:              doc.Series,
		Number:              doc.Number,
		DocumentNumber:      doc.DocumentNumber(),
		SupplierTaxID:       doc.SupplierTaxID,
		SupplierName:        doc.SupplierName,
		IssueDate:           doc.IssueDate.Format(dateLayout),
		Currency:            string(doc.Currency),
		CurrencyCode:        c.code(doc.Currency),
		ExchangeRate:        doc.ExchangeRate,
		TaxApplicable:       doc.TaxApplicable,
		SubjectToDetraction: doc.SubjectToDetraction,
		DetractionCode:      doc.DetractionCode,
		DetractionRate:      doc.DetractionRate,
		Notes:               doc.Notes,
		Breakdown:           breakdownResponse(doc.Breakdown),
		Payment:             paymentStatusResponse(doc.Breakdown.Total, rec),
		CreatedAt:           doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           doc.UpdatedAt.Format(time.RFC3339),
	}
	if doc.DueDate != nil {
		r.DueDate = doc.DueDate.Format(dateLayout)
	}
	if len(doc.Lines) > 0 {
		r.Lines = lineResponses(doc.Lines)
	}
	return r
}
