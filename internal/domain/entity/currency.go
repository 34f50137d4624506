package entity

// Currency moneda del documento en el borde del dominio (enumeración cerrada).
// El mapeo desde etiquetas de origen ("PEN", "Soles", "Dólares"...) vive en la capa de aplicación.
type Currency string

const (
	CurrencyLocal   Currency = "LOCAL"
	CurrencyForeign Currency = "FOREIGN"
)

// Valid indica si c es uno de los valores conocidos.
func (c Currency) Valid() bool {
	return c == CurrencyLocal || c == CurrencyForeign
}
