package entity

import "time"

// Product entrada del catálogo de productos usada para resolver líneas importadas.
// SKU es el código que el proveedor envía en el XML (único por empresa).
type Product struct {
	ID          string
	CompanyID   string
	SKU         string
	Name        string
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
