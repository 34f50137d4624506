package purchase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/memory"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/ubl"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
)

const (
	company      = "11111111-1111-1111-1111-111111111111"
	otherCompany = "22222222-2222-2222-2222-222222222222"
	missingID    = "99999999-9999-9999-9999-999999999999"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: esperado %s, obtenido %s", msg, want, got)
}

func testConfig() config.PurchaseConfig {
	return config.PurchaseConfig{
		TaxRate:         d("0.18"),
		MaxImportBytes:  1 << 20,
		LocalCurrency:   "PEN",
		ForeignCurrency: "USD",
	}
}

type fixture struct {
	store    *memory.Store
	docs     *purchase.DocumentUseCase
	payments *purchase.PaymentUseCase
	imports  *purchase.ImportUseCase
}

func newFixture(cfg config.PurchaseConfig) fixture {
	s := memory.NewStore()
	return fixture{
		store:    s,
		docs:     purchase.NewDocumentUseCase(s, s.Documents(), s.Payments(), cfg, nil),
		payments: purchase.NewPaymentUseCase(s, s.Documents(), s.Payments(), cfg, nil),
		imports:  purchase.NewImportUseCase(ubl.NewIngestor(nil), s.Products(), cfg, nil),
	}
}

func facturaRequest() dto.PurchaseDocumentRequest {
	return dto.PurchaseDocumentRequest{
		DocumentType:  "FACTURA",
		Series:        "F001",
		Number:        "00004521",
		SupplierTaxID: "20131312955",
		SupplierName:  "Distribuidora Ferretera Central S.A.C.",
		IssueDate:     "2026-03-02",
		Currency:      "Soles",
		Lines: []dto.PurchaseLineRequest{
			{Description: "Tornillo", Quantity: d("5"), UnitPrice: d("12.50")},
			{Description: "Cemento", Quantity: d("2"), UnitPrice: d("30.00")},
		},
	}
}

func TestDocumentUseCase_CreateCalculaYConcilia(t *testing.T) {
	f := newFixture(testConfig())
	resp, err := f.docs.Create(context.Background(), company, facturaRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "F001-00004521", resp.DocumentNumber)
	assert.Equal(t, "LOCAL", resp.Currency)
	assert.Equal(t, "PEN", resp.CurrencyCode)
	assertDec(t, "122.50", resp.Breakdown.TaxableAmount, "gravado")
	assertDec(t, "22.05", resp.Breakdown.Tax, "igv")
	assertDec(t, "144.55", resp.Breakdown.Total, "total")
	assert.Equal(t, "PENDING", resp.Payment.Status)
	assertDec(t, "144.55", resp.Payment.Pending, "pendiente")
	require.Len(t, resp.Lines, 2)
	assertDec(t, "62.5", resp.Lines[0].LineTotal, "line total")
	assert.Nil(t, resp.Lines[0].ProductID)
	assert.Equal(t, "NIU", resp.Lines[0].UnitCode)
}

func TestDocumentUseCase_CreateDuplicado(t *testing.T) {
	f := newFixture(testConfig())
	_, err := f.docs.Create(context.Background(), company, facturaRequest())
	require.NoError(t, err)
	_, err = f.docs.Create(context.Background(), company, facturaRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDocumentUseCase_Moneda(t *testing.T) {
	f := newFixture(testConfig())

	req := facturaRequest()
	req.Currency = "Dólares"
	_, err := f.docs.Create(context.Background(), company, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "extranjera sin tipo de cambio")

	req.ExchangeRate = decimal.NewNullDecimal(d("3.745"))
	resp, err := f.docs.Create(context.Background(), company, req)
	require.NoError(t, err)
	assert.Equal(t, "FOREIGN", resp.Currency)
	assert.Equal(t, "USD", resp.CurrencyCode)

	req = facturaRequest()
	req.Number = "2"
	req.Currency = "EUR"
	_, err = f.docs.Create(context.Background(), company, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentUseCase_DetraccionPorCodigo(t *testing.T) {
	f := newFixture(testConfig())
	req := facturaRequest()
	req.SubjectToDetraction = true
	req.DetractionCode = "037"

	resp, err := f.docs.Create(context.Background(), company, req)
	require.NoError(t, err)
	require.True(t, resp.DetractionRate.Valid)
	assertDec(t, "0.12", resp.DetractionRate.Decimal, "tasa del catálogo 54")
	require.True(t, resp.Breakdown.DetractionAmount.Valid)
	assertDec(t, "17.35", resp.Breakdown.DetractionAmount.Decimal, "detracción")
	assertDec(t, "144.55", resp.Breakdown.Total, "la detracción no cambia el total")

	req = facturaRequest()
	req.Number = "99"
	req.SubjectToDetraction = true
	_, err = f.docs.Create(context.Background(), company, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sujeto sin tasa resoluble")
}

func TestDocumentUseCase_GetRecalcula(t *testing.T) {
	f := newFixture(testConfig())
	created, err := f.docs.Create(context.Background(), company, facturaRequest())
	require.NoError(t, err)

	// Un desglose guardado desactualizado no se confía.
	stored, err := f.store.Documents().GetByID(context.Background(), company, created.ID)
	require.NoError(t, err)
	stored.Breakdown.Total = d("1")
	require.NoError(t, f.store.Documents().Update(context.Background(), stored))

	got, err := f.docs.Get(context.Background(), company, created.ID)
	require.NoError(t, err)
	assertDec(t, "144.55", got.Breakdown.Total, "total recalculado")

	_, err = f.docs.Get(context.Background(), otherCompany, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUseCase_Update(t *testing.T) {
	f := newFixture(testConfig())
	created, err := f.docs.Create(context.Background(), company, facturaRequest())
	require.NoError(t, err)

	req := facturaRequest()
	off := false
	req.TaxApplicable = &off
	updated, err := f.docs.Update(context.Background(), company, created.ID, req)
	require.NoError(t, err)
	assertDec(t, "0", updated.Breakdown.Tax, "sin IGV")
	assertDec(t, "122.50", updated.Breakdown.UnaffectedAmount, "inafecto")
	assertDec(t, "122.50", updated.Breakdown.Total, "total")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = f.docs.Update(context.Background(), company, missingID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUseCase_ListConEstadoDePago(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	a, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)
	req := facturaRequest()
	req.Number = "00004522"
	b, err := f.docs.Create(ctx, company, req)
	require.NoError(t, err)
	_, err = f.payments.Record(ctx, company, b.ID, dto.RecordPaymentRequest{Amount: d("144.55")})
	require.NoError(t, err)

	list, err := f.docs.List(ctx, company, dto.PurchaseListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)

	status := map[string]string{}
	for _, it := range list.Items {
		status[it.ID] = it.Payment.Status
		assert.Empty(t, it.Lines, "el listado no trae líneas")
	}
	assert.Equal(t, "PENDING", status[a.ID])
	assert.Equal(t, "PAID", status[b.ID])

	_, err = f.docs.List(ctx, company, dto.PurchaseListRequest{DocumentType: "RECIBO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentUseCase_DeleteEliminaPagos(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)
	_, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("10")})
	require.NoError(t, err)

	require.NoError(t, f.docs.Delete(ctx, company, doc.ID))
	stored, err := f.store.Documents().GetByID(ctx, company, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	pays, err := f.store.Payments().ListByDocument(ctx, company, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, pays)
	assert.ErrorIs(t, f.docs.Delete(ctx, company, doc.ID), domain.ErrNotFound)
}

func TestDocumentUseCase_Compute(t *testing.T) {
	f := newFixture(testConfig())
	resp, err := f.docs.Compute(context.Background(), dto.ComputeRequest{
		Lines: []dto.PurchaseLineRequest{
			{Quantity: d("5"), UnitPrice: d("12.50")},
			{Quantity: d("0"), UnitPrice: d("100")},
			{Quantity: d("1"), UnitPrice: d("50"), TaxCategory: "exonerado"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 3, "las líneas incompletas se devuelven")
	assertDec(t, "62.50", resp.Breakdown.TaxableAmount, "gravado")
	assertDec(t, "50", resp.Breakdown.ExemptAmount, "exonerado")
	assertDec(t, "11.25", resp.Breakdown.Tax, "igv")
	assertDec(t, "123.75", resp.Breakdown.Total, "total")
	assert.False(t, resp.Breakdown.DetractionAmount.Valid)

	_, err = f.docs.Compute(context.Background(), dto.ComputeRequest{
		Lines: []dto.PurchaseLineRequest{{Quantity: d("1"), UnitPrice: d("1"), TaxCategory: "IVAP"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentUseCase_ComputeDetraccionPorDefecto(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultDetractionRate = decimal.NewNullDecimal(d("0.10"))
	f := newFixture(cfg)

	resp, err := f.docs.Compute(context.Background(), dto.ComputeRequest{
		SubjectToDetraction: true,
		Lines:               []dto.PurchaseLineRequest{{Quantity: d("1"), UnitPrice: d("1000")}},
	})
	require.NoError(t, err)
	require.True(t, resp.Breakdown.DetractionAmount.Valid)
	assertDec(t, "118", resp.Breakdown.DetractionAmount.Decimal, "10% de 1180")
}

// ── Pagos ────────────────────────────────────────────────────────────────────

func TestPaymentUseCase_Conciliacion(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)

	_, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("50.00"), Method: "transferencia", PaidAt: "2026-03-05"})
	require.NoError(t, err)
	st, err := f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("50.00"), PaidAt: "2026-03-10"})
	require.NoError(t, err)
	assert.Len(t, st.Payments, 2)
	assertDec(t, "100.00", st.Status.Paid, "pagado")
	assertDec(t, "44.55", st.Status.Pending, "pendiente")
	assert.Equal(t, "PENDING", st.Status.Status)

	st, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("100.00")})
	require.NoError(t, err)
	assertDec(t, "200.00", st.Status.Paid, "sobrepago")
	assertDec(t, "0", st.Status.Pending, "pendiente")
	assert.Equal(t, "PAID", st.Status.Status)

	list, err := f.payments.List(ctx, company, doc.ID)
	require.NoError(t, err)
	assert.Len(t, list.Payments, 3)
	assert.Equal(t, "TRANSFERENCIA", list.Payments[0].Method)
}

func TestPaymentUseCase_Errores(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)

	for _, amount := range []string{"0", "-5", "1.005"} {
		_, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}
	_, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("1"), PaidAt: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.payments.Record(ctx, company, missingID, dto.RecordPaymentRequest{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.payments.List(ctx, company, missingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentUseCase_Delete(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)
	st, err := f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("144.55")})
	require.NoError(t, err)
	require.Equal(t, "PAID", st.Status.Status)
	payID := st.Payments[0].ID

	assert.ErrorIs(t, f.payments.Delete(ctx, company, missingID, payID), domain.ErrNotFound)
	require.NoError(t, f.payments.Delete(ctx, company, doc.ID, payID))

	list, err := f.payments.List(ctx, company, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Payments)
	assert.Equal(t, "PENDING", list.Status.Status)
}

// ── Importación ──────────────────────────────────────────────────────────────

const importXML = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns:cbc="urn:cbc" xmlns:cac="urn:cac">
  <cbc:ID>F001-00004521</cbc:ID>
  <cbc:IssueDate>2026-03-02</cbc:IssueDate>
  <cbc:InvoiceTypeCode>01</cbc:InvoiceTypeCode>
  <cbc:DocumentCurrencyCode>PEN</cbc:DocumentCurrencyCode>
  <cac:AccountingSupplierParty><cac:Party>
    <cac:PartyIdentification><cbc:ID>20131312955</cbc:ID></cac:PartyIdentification>
    <cac:PartyLegalEntity><cbc:RegistrationName>DISTRIBUIDORA FERRETERA CENTRAL</cbc:RegistrationName></cac:PartyLegalEntity>
  </cac:Party></cac:AccountingSupplierParty>
  <cac:TaxTotal><cbc:TaxAmount>22.05</cbc:TaxAmount></cac:TaxTotal>
  <cac:LegalMonetaryTotal><cbc:PayableAmount>__TOTAL__</cbc:PayableAmount></cac:LegalMonetaryTotal>
  <cac:InvoiceLine>
    <cbc:InvoicedQuantity unitCode="NIU">5</cbc:InvoicedQuantity>
    <cac:Item><cac:SellersItemIdentification><cbc:ID>TOR-12</cbc:ID></cac:SellersItemIdentification></cac:Item>
    <cac:Price><cbc:PriceAmount>12.50</cbc:PriceAmount></cac:Price>
  </cac:InvoiceLine>
  <cac:InvoiceLine>
    <cbc:InvoicedQuantity unitCode="NIU">2</cbc:InvoicedQuantity>
    <cac:Item><cbc:Description>BROCHA</cbc:Description><cac:SellersItemIdentification><cbc:ID>XYZ-9</cbc:ID></cac:SellersItemIdentification></cac:Item>
    <cac:Price><cbc:PriceAmount>30.00</cbc:PriceAmount></cac:Price>
  </cac:InvoiceLine>
</Invoice>`

func importPayload(total string) []byte {
	return []byte(strings.ReplaceAll(importXML, "__TOTAL__", total))
}

func TestImportUseCase_Importa(t *testing.T) {
	f := newFixture(testConfig())
	f.store.AddProduct(entity.Product{ID: "p-1", CompanyID: company, SKU: "TOR-12", Name: "Tornillo 1/2\"", UnitMeasure: "NIU"})

	resp, err := f.imports.Import(context.Background(), company, importPayload("144.55"))
	require.NoError(t, err)

	assert.Equal(t, "FACTURA", resp.Header.DocumentType)
	assert.Equal(t, "F001", resp.Header.Series)
	assert.Equal(t, "00004521", resp.Header.Number)
	assert.Equal(t, "LOCAL", resp.Header.Currency)
	assert.Equal(t, "2026-03-02", resp.Header.IssueDate)
	assert.Len(t, resp.Header.Digest, 64)

	require.Len(t, resp.Lines, 2)
	require.NotNil(t, resp.Lines[0].ProductID)
	assert.Equal(t, "p-1", *resp.Lines[0].ProductID)
	assert.Nil(t, resp.Lines[1].ProductID)
	assert.Contains(t, resp.Lines[1].Description, "XYZ-9")
	assert.Equal(t, 1, resp.Unmatched)
	assertDec(t, "144.55", resp.Breakdown.Total, "total recalculado")
	assert.Empty(t, resp.Warnings)
}

func TestImportUseCase_TotalDeclaradoDistinto(t *testing.T) {
	f := newFixture(testConfig())
	resp, err := f.imports.Import(context.Background(), company, importPayload("150.00"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[len(resp.Warnings)-1], "150.00")
	assertDec(t, "144.55", resp.Breakdown.Total, "manda el recalculado")
}

type failingProducts struct{ err error }

func (p failingProducts) GetByCompanyAndSKU(context.Context, string, string) (*entity.Product, error) {
	return nil, p.err
}

func TestImportUseCase_CatalogoCaido(t *testing.T) {
	uc := purchase.NewImportUseCase(ubl.NewIngestor(nil), failingProducts{errors.New("conexión rechazada")}, testConfig(), nil)

	resp, err := uc.Import(context.Background(), company, importPayload("144.55"))
	require.NoError(t, err)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 2, resp.Unmatched)
	assert.NotEmpty(t, resp.Warnings)
}

func TestImportUseCase_Limites(t *testing.T) {
	cfg := testConfig()
	cfg.MaxImportBytes = 64
	f := newFixture(cfg)
	_, err := f.imports.Import(context.Background(), company, importPayload("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f = newFixture(testConfig())
	resp, err := f.imports.Import(context.Background(), company, []byte("<html/>"))
	require.NoError(t, err, "un XML inválido no es error")
	assert.Empty(t, resp.Lines)
	assert.NotEmpty(t, resp.Warnings)
}

// ── PDF ──────────────────────────────────────────────────────────────────────

type fakePDF struct {
	currency string
	rec      entity.Reconciliation
	err      error
}

func (g *fakePDF) GeneratePurchasePDF(_ context.Context, _ *entity.PurchaseDocument, currencyCode string, _ []entity.PaymentAllocation, rec entity.Reconciliation) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.currency, g.rec = currencyCode, rec
	return []byte("%PDF-1.4"), nil
}

func TestPDFUseCase_Download(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)
	_, err = f.payments.Record(ctx, company, doc.ID, dto.RecordPaymentRequest{Amount: d("44.55")})
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := purchase.NewPDFUseCase(f.docs, gen)
	data, name, err := uc.Download(ctx, company, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "compra_20131312955_F001-00004521.pdf", name)
	assert.Equal(t, "PEN", gen.currency)
	assertDec(t, "100.00", gen.rec.Pending, "pendiente")

	_, _, err = uc.Download(ctx, company, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gen.err = errors.New("fuente no disponible")
	_, _, err = uc.Download(ctx, company, doc.ID)
	assert.ErrorIs(t, err, gen.err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Identificadores mal formados
// ─────────────────────────────────────────────────────────────────────────────

func TestUseCases_IDNoUUID(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, company, facturaRequest())
	require.NoError(t, err)

	_, err = f.docs.Get(ctx, company, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.docs.Update(ctx, company, "abc", facturaRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.docs.Delete(ctx, company, "abc"), domain.ErrNotFound)
	_, err = f.payments.Record(ctx, company, "abc", dto.RecordPaymentRequest{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.payments.List(ctx, company, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.payments.Delete(ctx, company, doc.ID, "abc"), domain.ErrNotFound)

	_, err = f.docs.Get(ctx, "empresa-1", doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.docs.Create(ctx, "empresa-1", facturaRequest())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.docs.List(ctx, "empresa-1", dto.PurchaseListRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	req := facturaRequest()
	bad := "p-1"
	req.Lines[0].ProductID = &bad
	_, err = f.docs.Create(ctx, company, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
