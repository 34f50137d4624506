package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/dto"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/memory"
	infrapdf "github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/pdf"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/infrastructure/ubl"
	apphttp "github.com/lfuis201/ferreteriafacturacion-sub004/internal/interfaces/http"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba: casos de uso reales sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newPurchaseApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	cfg := config.PurchaseConfig{
		TaxRate:         decimal.RequireFromString("0.18"),
		MaxImportBytes:  1 << 20,
		LocalCurrency:   "PEN",
		ForeignCurrency: "USD",
	}
	s := memory.NewStore()
	docs := purchase.NewDocumentUseCase(s, s.Documents(), s.Payments(), cfg, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Documents: docs,
		Imports:   purchase.NewImportUseCase(ubl.NewIngestor(nil), s.Products(), cfg, nil),
		Payments:  purchase.NewPaymentUseCase(s, s.Documents(), s.Payments(), cfg, nil),
		PDF:       purchase.NewPDFUseCase(docs, infrapdf.NewMarotoPurchasePDF("Ferretería de prueba")),
		JWTSecret: testJWTSecret,
	})
	return app, s
}

func call(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", bearer(t, testCompanyID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

var facturaBody = map[string]any{
	"document_type":   "FACTURA",
	"series":          "F001",
	"number":          "00004521",
	"supplier_tax_id": "20131312955",
	"supplier_name":   "Distribuidora Ferretera Central S.A.C.",
	"issue_date":      "2026-03-02",
	"currency":        "PEN",
	"lines": []map[string]any{
		{"description": "Tornillo", "quantity": "5", "unit_price": "12.50"},
		{"description": "Cemento", "quantity": 2, "unit_price": 30},
	},
}

func createFactura(t *testing.T, app *fiber.App) dto.PurchaseDocumentResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/purchases", facturaBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.PurchaseDocumentResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseHandler_SinToken_Retorna401(t *testing.T) {
	app, _ := newPurchaseApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/purchases", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPurchaseHandler_CrearYConsultar(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)
	assert.True(t, created.Breakdown.Total.Equal(decimal.RequireFromString("144.55")))
	assert.Equal(t, "PENDING", created.Payment.Status)

	resp := call(t, app, http.MethodGet, "/api/purchases/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.PurchaseDocumentResponse](t, resp)
	assert.Equal(t, "F001-00004521", got.DocumentNumber)
	assert.Len(t, got.Lines, 2)

	resp = call(t, app, http.MethodPost, "/api/purchases", facturaBody)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "comprobante duplicado")
}

func TestPurchaseHandler_Validacion_Retorna400(t *testing.T) {
	app, _ := newPurchaseApp(t)
	body := map[string]any{
		"document_type": "RECIBO",
		"number":        "1",
		"issue_date":    "2026-03-02",
		"currency":      "PEN",
	}
	resp := call(t, app, http.MethodPost, "/api/purchases", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "RECIBO")
	assert.NotContains(t, e.Message, "\n")

	req := httptest.NewRequest(http.MethodPost, "/api/purchases", bytes.NewBufferString("{no json"))
	req.Header.Set("Authorization", bearer(t, testCompanyID))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestPurchaseHandler_OtraEmpresaNoVe(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/purchases/"+created.ID, nil)
	req.Header.Set("Authorization", bearer(t, "00000000-0000-0000-0000-000000000099"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchaseHandler_IDNoUUID_Retorna404(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)

	for _, path := range []string{
		"/api/purchases/no-uuid",
		"/api/purchases/no-uuid/pdf",
		"/api/purchases/no-uuid/payments",
	} {
		resp := call(t, app, http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		e := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "NOT_FOUND", e.Code, path)
	}

	resp := call(t, app, http.MethodDelete, "/api/purchases/"+created.ID+"/payments/no-uuid", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/purchases", nil)
	req.Header.Set("Authorization", bearer(t, "empresa-sin-uuid"))
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestPurchaseHandler_ActualizarListarEliminar(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)

	update := map[string]any{}
	for k, v := range facturaBody {
		update[k] = v
	}
	update["tax_applicable"] = false
	resp := call(t, app, http.MethodPut, "/api/purchases/"+created.ID, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.PurchaseDocumentResponse](t, resp)
	assert.True(t, updated.Breakdown.Tax.IsZero())
	assert.True(t, updated.Breakdown.Total.Equal(decimal.RequireFromString("122.50")))

	resp = call(t, app, http.MethodGet, "/api/purchases?document_type=FACTURA&limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.PurchaseDocumentListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)
	assert.Equal(t, 1, list.Page.Total)

	resp = call(t, app, http.MethodDelete, "/api/purchases/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/purchases/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchaseHandler_Compute(t *testing.T) {
	app, _ := newPurchaseApp(t)
	body := map[string]any{
		"subject_to_detraction": true,
		"detraction_code":       "037",
		"lines": []map[string]any{
			{"quantity": "5", "unit_price": "12.50"},
			{"quantity": "2", "unit_price": "30"},
		},
	}
	resp := call(t, app, http.MethodPost, "/api/purchases/compute", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ComputeResponse](t, resp)
	assert.True(t, out.Breakdown.Total.Equal(decimal.RequireFromString("144.55")))
	require.True(t, out.Breakdown.DetractionAmount.Valid)
	assert.True(t, out.Breakdown.DetractionAmount.Decimal.Equal(decimal.RequireFromString("17.35")))
}

func TestPurchaseHandler_PDF(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)

	resp := call(t, app, http.MethodGet, "/api/purchases/"+created.ID+"/pdf", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "compra_20131312955_F001-00004521.pdf")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

const ublFactura = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns:cbc="urn:cbc" xmlns:cac="urn:cac">
  <cbc:ID>F001-77</cbc:ID>
  <cbc:DocumentCurrencyCode>PEN</cbc:DocumentCurrencyCode>
  <cac:InvoiceLine>
    <cbc:InvoicedQuantity unitCode="NIU">4</cbc:InvoicedQuantity>
    <cac:Item><cac:SellersItemIdentification><cbc:ID>TOR-12</cbc:ID></cac:SellersItemIdentification></cac:Item>
    <cac:Price><cbc:PriceAmount>2.50</cbc:PriceAmount></cac:Price>
  </cac:InvoiceLine>
</Invoice>`

func TestPurchaseHandler_ImportMultipart(t *testing.T) {
	app, store := newPurchaseApp(t)
	store.AddProduct(entity.Product{ID: "p-1", CompanyID: testCompanyID, SKU: "TOR-12", Name: "Tornillo"})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "F001-77.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(ublFactura))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import", &buf)
	req.Header.Set("Authorization", bearer(t, testCompanyID))
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.ImportResponse](t, resp)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Matched)
	assert.Equal(t, "Tornillo", out.Lines[0].Description)
	assert.Equal(t, "F001", out.Header.Series)
	assert.True(t, out.Breakdown.Total.Equal(decimal.RequireFromString("11.80")))
}

func TestPurchaseHandler_ImportCuerpoCrudo(t *testing.T) {
	app, _ := newPurchaseApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import", bytes.NewBufferString("<html></html>"))
	req.Header.Set("Authorization", bearer(t, testCompanyID))
	req.Header.Set("Content-Type", "application/xml")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "un XML no reconocido no es error")

	out := decode[dto.ImportResponse](t, resp)
	assert.Empty(t, out.Lines)
	assert.NotEmpty(t, out.Warnings)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestPaymentHandler_FlujoCompleto(t *testing.T) {
	app, _ := newPurchaseApp(t)
	created := createFactura(t, app)
	base := "/api/purchases/" + created.ID + "/payments"

	resp := call(t, app, http.MethodPost, base, map[string]any{"amount": "100.00", "method": "transferencia"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	st := decode[dto.PaymentListResponse](t, resp)
	assert.Equal(t, "PENDING", st.Status.Status)
	assert.True(t, st.Status.Pending.Equal(decimal.RequireFromString("44.55")))

	resp = call(t, app, http.MethodPost, base, map[string]any{"amount": "44.55"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	st = decode[dto.PaymentListResponse](t, resp)
	assert.Equal(t, "PAID", st.Status.Status)
	require.Len(t, st.Payments, 2)

	resp = call(t, app, http.MethodPost, base, map[string]any{"amount": "0"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, base+"/"+st.Payments[1].ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st = decode[dto.PaymentListResponse](t, resp)
	assert.Len(t, st.Payments, 1)
	assert.Equal(t, "PENDING", st.Status.Status)

	resp = call(t, app, http.MethodGet, "/api/purchases/no-existe/payments", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
