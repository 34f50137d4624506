package purchase

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/sunat"
)

// ValidateDocument valida los datos de cabecera que el llamador debe garantizar antes de calcular.
//
// Las líneas incompletas (cantidad o precio en 0) no son error: no suman. Los negativos sí.
func ValidateDocument(doc *entity.PurchaseDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", domain.ErrInvalidInput)
	}
	var errs []error

	if !doc.DocumentType.Valid() {
		errs = append(errs, fmt.Errorf("tipo de documento desconocido %q", doc.DocumentType))
	}
	if doc.Number == "" {
		errs = append(errs, errors.New("número de documento requerido"))
	}
	if !doc.Currency.Valid() {
		errs = append(errs, fmt.Errorf("moneda desconocida %q", doc.Currency))
	}
	if doc.Currency == entity.CurrencyForeign {
		if !doc.ExchangeRate.Valid || !doc.ExchangeRate.Decimal.IsPositive() {
			errs = append(errs, errors.New("documento en moneda extranjera requiere tipo de cambio > 0"))
		}
	}
	if doc.SubjectToDetraction && !ValidRate(doc.DetractionRate) {
		errs = append(errs, errors.New("tasa de detracción debe estar en (0, 1]"))
	}
	if doc.SupplierTaxID != "" {
		if err := sunat.ValidateRUC(doc.SupplierTaxID); err != nil {
			errs = append(errs, fmt.Errorf("proveedor: %w", err))
		}
	}
	if doc.DueDate != nil && !doc.IssueDate.IsZero() && doc.DueDate.Before(doc.IssueDate) {
		errs = append(errs, errors.New("la fecha de vencimiento es anterior a la de emisión"))
	}
	for i, l := range doc.Lines {
		if l.Quantity.IsNegative() || l.UnitPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("línea %d: cantidad y precio no pueden ser negativos", i+1))
		}
		if !l.TaxCategory.Valid() {
			errs = append(errs, fmt.Errorf("línea %d: afectación desconocida %q", i+1, l.TaxCategory))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrInvalidInput}, errs...)...)
	}
	return nil
}

// ValidateAllocation valida un pago antes de registrarlo.
func ValidateAllocation(a *entity.PaymentAllocation) error {
	if a == nil || a.DocumentID == "" {
		return fmt.Errorf("%w: pago sin documento", domain.ErrInvalidInput)
	}
	if !a.Amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !a.Amount.Equal(Round2(a.Amount)) {
		return fmt.Errorf("%w: el monto del pago admite como máximo 2 decimales", domain.ErrInvalidInput)
	}
	return nil
}
