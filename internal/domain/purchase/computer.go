// Package purchase contiene el motor de cálculo de documentos de compra:
// desglose de montos (gravado, exonerado, inafecto, IGV, detracción), construcción
// de líneas desde comprobantes importados y conciliación de pagos.
// Todas las funciones son puras y seguras para uso concurrente.
package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// Round2 es la única función de redondeo del motor (2 decimales, mitad alejándose de cero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal Quantity * UnitPrice, sin redondear.
func LineTotal(l entity.LineItem) decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Countable indica si la línea participa en los agregados (cantidad y precio > 0).
// Una línea incompleta en plena edición es un estado válido, solo no suma.
func Countable(l entity.LineItem) bool {
	return l.Quantity.IsPositive() && l.UnitPrice.IsPositive()
}

// Computer deriva el TaxBreakdown de un documento. La tasa de IGV es configuración.
type Computer struct {
	taxRate decimal.Decimal
}

// NewComputer construye el calculador con la tasa de IGV indicada (ej. 0.18).
func NewComputer(taxRate decimal.Decimal) *Computer {
	return &Computer{taxRate: taxRate}
}

// TaxRate devuelve la tasa configurada.
func (c *Computer) TaxRate() decimal.Decimal {
	return c.taxRate
}

// Compute calcula el desglose de las líneas.
//
// Si taxApplicable es false las líneas gravadas (o sin categoría) se acumulan como inafectas
// y el IGV es cero. La detracción solo se calcula con 0 < rate <= 1 y no se descuenta del total.
func (c *Computer) Compute(lines []entity.LineItem, taxApplicable bool, detractionRate decimal.NullDecimal) entity.TaxBreakdown {
	var taxable, exempt, unaffected decimal.Decimal
	for _, l := range lines {
		if !Countable(l) {
			continue
		}
		total := LineTotal(l)
		switch l.TaxCategory {
		case entity.TaxCategoryExonerado:
			exempt = exempt.Add(total)
		case entity.TaxCategoryInafecto:
			unaffected = unaffected.Add(total)
		default:
			if taxApplicable {
				taxable = taxable.Add(total)
			} else {
				unaffected = unaffected.Add(total)
			}
		}
	}

	b := entity.TaxBreakdown{
		TaxableAmount:    Round2(taxable),
		ExemptAmount:     Round2(exempt),
		UnaffectedAmount: Round2(unaffected),
		Tax:              decimal.Zero,
	}
	if taxApplicable {
		b.Tax = Round2(b.TaxableAmount.Mul(c.taxRate))
	}
	b.Total = Round2(b.TaxableAmount.Add(b.ExemptAmount).Add(b.UnaffectedAmount).Add(b.Tax))

	if ValidRate(detractionRate) {
		b.DetractionAmount = decimal.NewNullDecimal(Round2(b.Total.Mul(detractionRate.Decimal)))
	}
	return b
}

// Apply recalcula en sitio los LineTotal y el Breakdown del documento.
// La tasa de detracción solo se usa si el documento está sujeto a detracción.
func (c *Computer) Apply(doc *entity.PurchaseDocument) {
	for i := range doc.Lines {
		doc.Lines[i].LineTotal = LineTotal(doc.Lines[i])
	}
	var rate decimal.NullDecimal
	if doc.SubjectToDetraction {
		rate = doc.DetractionRate
	}
	doc.Breakdown = c.Compute(doc.Lines, doc.TaxApplicable, rate)
}

// ValidRate indica si la tasa está presente y en (0, 1].
func ValidRate(rate decimal.NullDecimal) bool {
	return rate.Valid && rate.Decimal.IsPositive() && rate.Decimal.LessThanOrEqual(decimal.NewFromInt(1))
}
