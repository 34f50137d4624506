package dto

import "github.com/shopspring/decimal"

// RecordPaymentRequest body para POST /api/purchases/:id/payments.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"` // TRANSFERENCIA, EFECTIVO, CHEQUE...
	Reference string          `json:"reference,omitempty"`
	Memo      string          `json:"memo,omitempty"`
	PaidAt    string          `json:"paid_at,omitempty"` // RFC3339 o YYYY-MM-DD; vacío = ahora
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"document_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	Memo       string          `json:"memo,omitempty"`
	PaidAt     string          `json:"paid_at"`
	CreatedAt  string          `json:"created_at"`
}

// PaymentStatusResponse conciliación de un documento.
type PaymentStatusResponse struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Status  string          `json:"status"` // PAID|PENDING
}

// PaymentListResponse respuesta de GET /api/purchases/:id/payments.
type PaymentListResponse struct {
	Payments []PaymentResponse     `json:"payments"`
	Status   PaymentStatusResponse `json:"status"`
}
