// Package sunat contiene catálogos y validaciones alineados a la normativa de
// comprobantes de pago electrónicos SUNAT (Perú) usados al registrar compras.
package sunat

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Catálogo 01 - Tipo de documento
// OC no es código SUNAT: identifica órdenes de compra internas.
// =============================================================================

const (
	DocTypeFactura     = "01"
	DocTypeBoleta      = "03"
	DocTypeNotaCredito = "07"
	DocTypeNotaDebito  = "08"
	DocTypeOrdenCompra = "OC"
)

var documentTypeNames = map[string]string{
	DocTypeFactura:     "FACTURA",
	DocTypeBoleta:      "BOLETA DE VENTA",
	DocTypeNotaCredito: "NOTA DE CRÉDITO",
	DocTypeNotaDebito:  "NOTA DE DÉBITO",
	DocTypeOrdenCompra: "ORDEN DE COMPRA",
}

// DocumentTypeName devuelve la denominación del tipo de documento, o "" si el código no existe.
func DocumentTypeName(code string) string {
	return documentTypeNames[strings.TrimSpace(code)]
}

// =============================================================================
// Catálogo 02 - Monedas (ISO 4217)
// Los formularios y XML de proveedores usan etiquetas sueltas ("Soles", "S/", "Dólares");
// NormalizeCurrency las reduce al código ISO.
// =============================================================================

const (
	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"
)

var currencyLabels = map[string]string{
	"PEN":     CurrencyPEN,
	"S/":      CurrencyPEN,
	"S/.":     CurrencyPEN,
	"SOL":     CurrencyPEN,
	"SOLES":   CurrencyPEN,
	"USD":     CurrencyUSD,
	"US$":     CurrencyUSD,
	"$":       CurrencyUSD,
	"DOLAR":   CurrencyUSD,
	"DOLARES": CurrencyUSD,
	"DÓLAR":   CurrencyUSD,
	"DÓLARES": CurrencyUSD,
}

// NormalizeCurrency mapea una etiqueta de moneda a su código ISO. ok=false si no se reconoce.
func NormalizeCurrency(label string) (code string, ok bool) {
	key := strings.ToUpper(strings.TrimSpace(label))
	if key == "" {
		return "", false
	}
	code, ok = currencyLabels[key]
	return code, ok
}

// =============================================================================
// Catálogo 05 - Códigos de tributos
// =============================================================================

const (
	TaxSchemeIGV = "1000" // IGV Impuesto General a las Ventas
	TaxSchemeEXO = "9997" // Exonerado
	TaxSchemeINA = "9998" // Inafecto
)

// =============================================================================
// Catálogo 54 - Bienes y servicios sujetos a detracción (porcentajes vigentes)
// =============================================================================

// Detraction describe un código de detracción con su porcentaje.
type Detraction struct {
	Code        string
	Description string
	Rate        decimal.Decimal
}

var detractions = map[string]Detraction{
	"001": {Code: "001", Description: "Azúcar y melaza de caña", Rate: decimal.RequireFromString("0.10")},
	"004": {Code: "004", Description: "Recursos hidrobiológicos", Rate: decimal.RequireFromString("0.04")},
	"008": {Code: "008", Description: "Madera", Rate: decimal.RequireFromString("0.04")},
	"009": {Code: "009", Description: "Arena y piedra", Rate: decimal.RequireFromString("0.10")},
	"010": {Code: "010", Description: "Residuos, subproductos, desechos, recortes y desperdicios", Rate: decimal.RequireFromString("0.15")},
	"012": {Code: "012", Description: "Intermediación laboral y tercerización", Rate: decimal.RequireFromString("0.12")},
	"019": {Code: "019", Description: "Arrendamiento de bienes muebles", Rate: decimal.RequireFromString("0.10")},
	"020": {Code: "020", Description: "Mantenimiento y reparación de bienes muebles", Rate: decimal.RequireFromString("0.12")},
	"021": {Code: "021", Description: "Movimiento de carga", Rate: decimal.RequireFromString("0.10")},
	"022": {Code: "022", Description: "Otros servicios empresariales", Rate: decimal.RequireFromString("0.12")},
	"024": {Code: "024", Description: "Comisión mercantil", Rate: decimal.RequireFromString("0.10")},
	"025": {Code: "025", Description: "Fabricación de bienes por encargo", Rate: decimal.RequireFromString("0.10")},
	"026": {Code: "026", Description: "Servicio de transporte de personas", Rate: decimal.RequireFromString("0.10")},
	"030": {Code: "030", Description: "Contratos de construcción", Rate: decimal.RequireFromString("0.04")},
	"037": {Code: "037", Description: "Demás servicios gravados con el IGV", Rate: decimal.RequireFromString("0.12")},
}

// LookupDetraction devuelve el código de detracción del catálogo 54.
func LookupDetraction(code string) (Detraction, bool) {
	d, ok := detractions[strings.TrimSpace(code)]
	return d, ok
}
