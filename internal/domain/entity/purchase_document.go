package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento de compra.
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "FACTURA"
	DocumentTypeCreditNote    DocumentType = "NOTA_CREDITO"
	DocumentTypeDebitNote     DocumentType = "NOTA_DEBITO"
	DocumentTypePurchaseOrder DocumentType = "ORDEN_COMPRA"
)

// Valid indica si el tipo es conocido.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeCreditNote, DocumentTypeDebitNote, DocumentTypePurchaseOrder:
		return true
	}
	return false
}

// TaxBreakdown desglose monetario derivado de las líneas; no se persiste como dato editable.
type TaxBreakdown struct {
	TaxableAmount    decimal.Decimal // gravado
	ExemptAmount     decimal.Decimal // exonerado
	UnaffectedAmount decimal.Decimal // inafecto
	Tax              decimal.Decimal // IGV
	Total            decimal.Decimal
	DetractionAmount decimal.NullDecimal // informativo, no se resta del total
}

// PurchaseDocument cabecera de un comprobante de proveedor con sus líneas.
type PurchaseDocument struct {
	ID                  string
	CompanyID           string
	DocumentType        DocumentType
	Series              string
	Number              string
	SupplierTaxID       string // RUC del proveedor
	SupplierName        string
	IssueDate           time.Time
	DueDate             *time.Time
	Currency            Currency
	ExchangeRate        decimal.NullDecimal // obligatorio (> 0) si Currency es FOREIGN
	TaxApplicable       bool
	SubjectToDetraction bool
	DetractionCode      string
	DetractionRate      decimal.NullDecimal
	Notes               string
	Lines               []LineItem
	Breakdown           TaxBreakdown
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DocumentNumber devuelve "serie-número" (o solo el número si no hay serie).
func (d *PurchaseDocument) DocumentNumber() string {
	if d.Series == "" {
		return d.Number
	}
	return d.Series + "-" + d.Number
}
