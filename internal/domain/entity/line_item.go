package entity

import "github.com/shopspring/decimal"

// TaxCategory afectación explícita de una línea. Vacío = sigue la bandera del documento.
type TaxCategory string

const (
	TaxCategoryDefault   TaxCategory = ""
	TaxCategoryGravado   TaxCategory = "GRAVADO"
	TaxCategoryExonerado TaxCategory = "EXONERADO"
	TaxCategoryInafecto  TaxCategory = "INAFECTO"
)

// Valid indica si la categoría es conocida (incluida la vacía).
func (t TaxCategory) Valid() bool {
	switch t {
	case TaxCategoryDefault, TaxCategoryGravado, TaxCategoryExonerado, TaxCategoryInafecto:
		return true
	}
	return false
}

// LineItem representa una línea de un documento de compra.
// LineTotal siempre se recalcula (Quantity * UnitPrice); nunca se toma de la entrada.
type LineItem struct {
	ID          string
	DocumentID  string
	Position    int
	ProductID   string // vacío = producto no catalogado
	ProductCode string // código tal como llegó del origen
	Description string
	UnitCode    string // unidad UN/ECE (NIU, KGM...)
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	TaxCategory TaxCategory
}

// Matched indica si la línea está vinculada a un producto del catálogo.
func (l LineItem) Matched() bool {
	return l.ProductID != ""
}
