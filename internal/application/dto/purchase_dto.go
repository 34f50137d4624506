package dto

import "github.com/shopspring/decimal"

// PurchaseLineRequest línea de un documento de compra. line_total no se acepta: se recalcula.
type PurchaseLineRequest struct {
	ProductID   *string         `json:"product_id"` // null = producto no catalogado
	ProductCode string          `json:"product_code,omitempty"`
	Description string          `json:"description"`
	UnitCode    string          `json:"unit_code,omitempty"` // NIU por defecto
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxCategory string          `json:"tax_category,omitempty"` // GRAVADO|EXONERADO|INAFECTO, vacío = según el documento
}

// PurchaseDocumentRequest body para POST /api/purchases y PUT /api/purchases/:id.
// Currency acepta código ISO o etiqueta ("PEN", "Soles", "S/", "USD", "Dólares").
type PurchaseDocumentRequest struct {
	DocumentType        string                `json:"document_type"` // FACTURA|NOTA_CREDITO|NOTA_DEBITO|ORDEN_COMPRA
	Series              string                `json:"series"`
	Number              string                `json:"number"`
	SupplierTaxID       string                `json:"supplier_tax_id,omitempty"`
	SupplierName        string                `json:"supplier_name,omitempty"`
	IssueDate           string                `json:"issue_date"`         // YYYY-MM-DD
	DueDate             string                `json:"due_date,omitempty"` // YYYY-MM-DD
	Currency            string                `json:"currency"`
	ExchangeRate        decimal.NullDecimal   `json:"exchange_rate"`
	TaxApplicable       *bool                 `json:"tax_applicable"` // null = true
	SubjectToDetraction bool                  `json:"subject_to_detraction"`
	DetractionCode      string                `json:"detraction_code,omitempty"` // catálogo 54
	DetractionRate      decimal.NullDecimal   `json:"detraction_rate"`
	Notes               string                `json:"notes,omitempty"`
	Lines               []PurchaseLineRequest `json:"lines"`
}

// ComputeRequest body para POST /api/purchases/compute (vista previa, no persiste).
type ComputeRequest struct {
	TaxApplicable       *bool                 `json:"tax_applicable"`
	SubjectToDetraction bool                  `json:"subject_to_detraction"`
	DetractionCode      string                `json:"detraction_code,omitempty"`
	DetractionRate      decimal.NullDecimal   `json:"detraction_rate"`
	Lines               []PurchaseLineRequest `json:"lines"`
}

// BreakdownResponse desglose monetario. Los montos van con dos decimales.
type BreakdownResponse struct {
	TaxableAmount    decimal.Decimal     `json:"taxable_amount"`
	ExemptAmount     decimal.Decimal     `json:"exempt_amount"`
	UnaffectedAmount decimal.Decimal     `json:"unaffected_amount"`
	Tax              decimal.Decimal     `json:"tax"`
	Total            decimal.Decimal     `json:"total"`
	DetractionAmount decimal.NullDecimal `json:"detraction_amount"`
}

// ComputeResponse resultado de la vista previa.
type ComputeResponse struct {
	Lines     []PurchaseLineResponse `json:"lines"`
	Breakdown BreakdownResponse      `json:"breakdown"`
}

// PurchaseLineResponse línea en respuestas.
type PurchaseLineResponse struct {
	ID          string          `json:"id,omitempty"`
	Position    int             `json:"position"`
	ProductID   *string         `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	Description string          `json:"description"`
	UnitCode    string          `json:"unit_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	TaxCategory string          `json:"tax_category,omitempty"`
	Matched     bool            `json:"matched"`
}

// PurchaseDocumentResponse documento con líneas, desglose y estado de pago.
type PurchaseDocumentResponse struct {
	ID                  string                 `json:"id"`
	CompanyID           string                 `json:"company_id"`
	DocumentType        string                 `json:"document_type"`
	Series              string                 `json:"series"`
	Number              string                 `json:"number"`
	DocumentNumber      string                 `json:"document_number"`
	SupplierTaxID       string                 `json:"supplier_tax_id,omitempty"`
	SupplierName        string                 `json:"supplier_name,omitempty"`
	IssueDate           string                 `json:"issue_date"`
	DueDate             string                 `json:"due_date,omitempty"`
	Currency            string                 `json:"currency"`      // LOCAL|FOREIGN
	CurrencyCode        string                 `json:"currency_code"` // ISO 4217
	ExchangeRate        decimal.NullDecimal    `json:"exchange_rate"`
	TaxApplicable       bool                   `json:"tax_applicable"`
	SubjectToDetraction bool                   `json:"subject_to_detraction"`
	DetractionCode      string                 `json:"detraction_code,omitempty"`
	DetractionRate      decimal.NullDecimal    `json:"detraction_rate"`
	Notes               string                 `json:"notes,omitempty"`
	Lines               []PurchaseLineResponse `json:"lines,omitempty"`
	Breakdown           BreakdownResponse      `json:"breakdown"`
	Payment             PaymentStatusResponse  `json:"payment"`
	CreatedAt           string                 `json:"created_at"`
	UpdatedAt           string                 `json:"updated_at"`
}

// PurchaseDocumentListResponse respuesta de GET /api/purchases.
type PurchaseDocumentListResponse struct {
	Items []PurchaseDocumentResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// PurchaseListRequest query de GET /api/purchases.
type PurchaseListRequest struct {
	PageRequest
	SupplierTaxID string `query:"supplier_tax_id"`
	DocumentType  string `query:"document_type"`
}

// ImportHeaderResponse cabecera declarada por el XML importado.
type ImportHeaderResponse struct {
	DocumentID      string              `json:"document_id,omitempty"`
	DocumentType    string              `json:"document_type,omitempty"`
	InvoiceTypeCode string              `json:"invoice_type_code,omitempty"`
	Series          string              `json:"series,omitempty"`
	Number          string              `json:"number,omitempty"`
	IssueDate       string              `json:"issue_date,omitempty"`
	DueDate         string              `json:"due_date,omitempty"`
	CurrencyCode    string              `json:"currency_code,omitempty"`
	Currency        string              `json:"currency,omitempty"`
	SupplierTaxID   string              `json:"supplier_tax_id,omitempty"`
	SupplierName    string              `json:"supplier_name,omitempty"`
	DeclaredTax     decimal.NullDecimal `json:"declared_tax"`
	DeclaredPayable decimal.NullDecimal `json:"declared_payable"`
	Digest          string              `json:"digest,omitempty"` // SHA-256 del XML canónico
}

// ImportResponse resultado de POST /api/purchases/import. No persiste nada.
type ImportResponse struct {
	Header    ImportHeaderResponse   `json:"header"`
	Lines     []PurchaseLineResponse `json:"lines"`
	Breakdown BreakdownResponse      `json:"breakdown"`
	Discarded int                    `json:"discarded"`
	Unmatched int                    `json:"unmatched"`
	Warnings  []string               `json:"warnings"`
}
