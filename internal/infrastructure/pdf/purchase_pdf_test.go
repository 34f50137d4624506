package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument() *entity.PurchaseDocument {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return &entity.PurchaseDocument{
		ID:                  "doc-1",
		DocumentType:        entity.DocumentTypeInvoice,
		Series:              "F001",
		Number:              "00004521",
		SupplierTaxID:       "20131312955",
		SupplierName:        "Distribuidora Ferretera Central S.A.C.",
		IssueDate:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DueDate:             &due,
		Currency:            entity.CurrencyLocal,
		TaxApplicable:       true,
		SubjectToDetraction: true,
		DetractionCode:      "037",
		DetractionRate:      decimal.NewNullDecimal(dec("0.12")),
		Lines: []entity.LineItem{
			{Position: 1, Description: "Tornillo", UnitCode: "NIU", Quantity: dec("5"), UnitPrice: dec("12.50"), LineTotal: dec("62.50")},
			{Position: 2, Description: "Cemento", UnitCode: "BG", Quantity: dec("2"), UnitPrice: dec("30"), LineTotal: dec("60")},
			{Position: 3, Description: "Flete", UnitCode: "NIU", Quantity: dec("1")},
		},
		Breakdown: entity.TaxBreakdown{
			TaxableAmount:    dec("122.50"),
			Tax:              dec("22.05"),
			Total:            dec("144.55"),
			DetractionAmount: decimal.NewNullDecimal(dec("17.35")),
		},
	}
}

func TestGeneratePurchasePDF_GeneraBytes(t *testing.T) {
	g := NewMarotoPurchasePDF("Ferretería El Tornillo")
	payments := []entity.PaymentAllocation{
		{ID: "pay-1", Amount: dec("100"), Method: "TRANSFERENCIA", Reference: "OP-9981", PaidAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	rec := entity.Reconciliation{Paid: dec("100"), Pending: dec("44.55"), Status: entity.PaymentStatusPending}

	out, err := g.GeneratePurchasePDF(context.Background(), sampleDocument(), "PEN", payments, rec)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "cabecera PDF")
}

func TestGeneratePurchasePDF_OrdenDeCompraSinPagos(t *testing.T) {
	doc := sampleDocument()
	doc.DocumentType = entity.DocumentTypePurchaseOrder
	doc.Currency = entity.CurrencyForeign
	doc.ExchangeRate = decimal.NewNullDecimal(dec("3.745"))
	doc.SubjectToDetraction = false
	doc.Breakdown.DetractionAmount = decimal.NullDecimal{}

	out, err := NewMarotoPurchasePDF("").GeneratePurchasePDF(context.Background(), doc, "USD", nil,
		entity.Reconciliation{Pending: dec("144.55"), Status: entity.PaymentStatusPending})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGeneratePurchasePDF_DocumentoNulo(t *testing.T) {
	_, err := NewMarotoPurchasePDF("").GeneratePurchasePDF(context.Background(), nil, "PEN", nil, entity.Reconciliation{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"12.5":       "12.50",
		"999.999":    "1,000.00",
		"1234567.5":  "1,234,567.50",
		"-1234.004":  "-1,234.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(dec(in)), in)
	}
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "S/ ", currencySymbol("PEN"))
	assert.Equal(t, "US$ ", currencySymbol("USD"))
	assert.Equal(t, "EUR ", currencySymbol("EUR"))
	assert.Equal(t, "", currencySymbol(""))
}
