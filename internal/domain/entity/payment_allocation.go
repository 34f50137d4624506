package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de pago de un documento (modelo de dos estados).
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
)

// PaymentAllocation un desembolso registrado contra un documento de compra.
// Method, Reference y Memo son descriptivos; el motor no los interpreta.
type PaymentAllocation struct {
	ID         string
	CompanyID  string
	DocumentID string
	Amount     decimal.Decimal
	Method     string
	Reference  string
	Memo       string
	PaidAt     time.Time
	CreatedAt  time.Time
}

// Reconciliation resultado de conciliar pagos contra el total de un documento.
type Reconciliation struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Status  PaymentStatus
}
