package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// DefaultUnitCode unidad por defecto (catálogo 03 SUNAT: NIU = unidad).
const DefaultUnitCode = "NIU"

// OptionalString texto que puede no venir en el origen.
type OptionalString struct {
	Value string
	Valid bool
}

// SomeString construye un OptionalString presente (vacío tras trim = ausente).
func SomeString(s string) OptionalString {
	s = strings.TrimSpace(s)
	return OptionalString{Value: s, Valid: s != ""}
}

// RawInvoiceLine línea tal como la declara el comprobante de origen.
// Cada campo se extrae por separado; la ausencia es explícita, no un cero silencioso.
type RawInvoiceLine struct {
	Quantity    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	ProductCode OptionalString
	Description OptionalString
	UnitCode    OptionalString
}

// CatalogMatch datos canónicos de un producto del catálogo.
type CatalogMatch struct {
	ProductID string
	Name      string
	UnitCode  string
}

// ProductLookup búsqueda por código exacto en el catálogo, provista por el llamador.
// ok=false significa que el código no existe; err es un fallo de infraestructura.
type ProductLookup interface {
	Find(ctx context.Context, code string) (match CatalogMatch, ok bool, err error)
}

// LookupFunc adapta una función a ProductLookup.
type LookupFunc func(ctx context.Context, code string) (CatalogMatch, bool, error)

// Find implementa ProductLookup.
func (f LookupFunc) Find(ctx context.Context, code string) (CatalogMatch, bool, error) {
	return f(ctx, code)
}

// MapLookup catálogo en memoria indexado por código.
type MapLookup map[string]CatalogMatch

// Find implementa ProductLookup.
func (m MapLookup) Find(_ context.Context, code string) (CatalogMatch, bool, error) {
	p, ok := m[code]
	return p, ok, nil
}

// IngestHeader datos de cabecera que declara el comprobante importado.
// Los montos declarados son informativos: el total válido es el recalculado.
type IngestHeader struct {
	DocumentID      string // serie-número
	InvoiceTypeCode string // catálogo 01
	IssueDate       *time.Time
	DueDate         *time.Time
	CurrencyCode    string
	SupplierTaxID   string
	SupplierName    string
	DeclaredTax     decimal.NullDecimal
	DeclaredPayable decimal.NullDecimal
	Digest          string // SHA-256 del XML canónico, identifica el comprobante de origen
}

// IngestResult resultado de una importación. Nunca es un error: en el peor caso Lines está vacío
// y Warnings explica por qué.
type IngestResult struct {
	Header    IngestHeader
	Lines     []entity.LineItem
	Discarded int
	Warnings  []string
}

// BuildLines convierte líneas crudas en LineItem resolviendo cada código contra el catálogo.
//
// Cantidad o precio ausentes valen 0. Un código sin coincidencia produce una línea sin
// ProductID cuya descripción contiene el código, para que el usuario la vea y la corrija.
// Las líneas con cantidad <= 0 se descartan (resúmenes o textos libres del origen).
// Una línea con precio ausente, cero o negativo se conserva pero no suma; se advierte en warnings.
// Un fallo del catálogo se trata como "no encontrado" y se informa en warnings.
func BuildLines(ctx context.Context, raws []RawInvoiceLine, catalog ProductLookup) (lines []entity.LineItem, discarded int, warnings []string) {
	lines = make([]entity.LineItem, 0, len(raws))
	for _, raw := range raws {
		qty := decimalOrZero(raw.Quantity)
		if !qty.IsPositive() {
			discarded++
			continue
		}
		price := decimalOrZero(raw.UnitPrice)

		line := entity.LineItem{
			Position:  len(lines) + 1,
			Quantity:  qty,
			UnitPrice: price,
			UnitCode:  raw.UnitCode.Value,
		}

		var (
			match CatalogMatch
			found bool
		)
		if raw.ProductCode.Valid {
			line.ProductCode = raw.ProductCode.Value
			if catalog != nil {
				var err error
				match, found, err = catalog.Find(ctx, raw.ProductCode.Value)
				if err != nil {
					found = false
					warnings = append(warnings, fmt.Sprintf("catálogo no disponible para el código %s: %v", raw.ProductCode.Value, err))
				}
			}
		}

		switch {
		case found:
			line.ProductID = match.ProductID
			line.Description = match.Name
			if line.UnitCode == "" {
				line.UnitCode = match.UnitCode
			}
		case raw.ProductCode.Valid:
			line.Description = withSourceText("Producto no encontrado: "+raw.ProductCode.Value, raw.Description)
		default:
			line.Description = withSourceText("Producto sin código", raw.Description)
		}
		if line.UnitCode == "" {
			line.UnitCode = DefaultUnitCode
		}
		line.LineTotal = LineTotal(line)
		if !price.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("línea %d (%s): precio unitario %s no válido, la línea no suma al total",
				line.Position, line.Description, price.String()))
		}
		lines = append(lines, line)
	}
	return lines, discarded, warnings
}

func decimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func withSourceText(base string, desc OptionalString) string {
	if !desc.Valid {
		return base
	}
	return base + " (" + desc.Value + ")"
}
