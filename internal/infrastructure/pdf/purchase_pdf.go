// Package pdf genera el resumen imprimible de un documento de compra con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + RUC     │  Tipo + Serie-Número + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONDICIONES: Moneda / T.C. / Vencimiento / Detracción      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Und | Descripción | P.Unit | Importe         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Gravado / Exonerado / Inafecto / IGV / TOTAL      │
//	│  PAGOS: una fila por pago + Pagado / Pendiente / Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR SUNAT (si aplica) + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/application/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/sunat"
)

var _ purchase.PDFGenerator = (*MarotoPurchasePDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
)

var sunatCodes = map[entity.DocumentType]string{
	entity.DocumentTypeInvoice:       sunat.DocTypeFactura,
	entity.DocumentTypeCreditNote:    sunat.DocTypeNotaCredito,
	entity.DocumentTypeDebitNote:     sunat.DocTypeNotaDebito,
	entity.DocumentTypePurchaseOrder: sunat.DocTypeOrdenCompra,
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPurchasePDF implementa purchase.PDFGenerator.
type MarotoPurchasePDF struct {
	companyName string
}

// NewMarotoPurchasePDF construye el generador; companyName aparece como autor del PDF.
func NewMarotoPurchasePDF(companyName string) *MarotoPurchasePDF {
	return &MarotoPurchasePDF{companyName: companyName}
}

// GeneratePurchasePDF genera el PDF y devuelve sus bytes. doc debe traer el desglose ya calculado.
func (g *MarotoPurchasePDF) GeneratePurchasePDF(
	_ context.Context,
	doc *entity.PurchaseDocument,
	currencyCode string,
	payments []entity.PaymentAllocation,
	rec entity.Reconciliation,
) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Compra "+doc.DocumentNumber(), true).
		WithAuthor(nonEmpty(g.companyName, "Ferretería"), true).
		Build()

	m := maroto.New(cfg)
	cur := currencySymbol(currencyCode)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(termsRow(doc, currencyCode))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Lines, cur)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc, cur)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(paymentRows(payments, rec, cur)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.PurchaseDocument) core.Row {
	title := sunat.DocumentTypeName(sunatCodes[doc.DocumentType])
	if title == "" {
		title = string(doc.DocumentType)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.SupplierName, "Proveedor sin nombre"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+nonEmpty(doc.SupplierTaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title+" DE PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.DocumentNumber(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emisión: "+doc.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func termsRow(doc *entity.PurchaseDocument, currencyCode string) core.Row {
	parts := []string{"Moneda: " + nonEmpty(currencyCode, "—")}
	if doc.Currency == entity.CurrencyForeign && doc.ExchangeRate.Valid {
		parts = append(parts, "T.C.: "+doc.ExchangeRate.Decimal.String())
	}
	if doc.DueDate != nil {
		parts = append(parts, "Vence: "+doc.DueDate.Format("02/01/2006"))
	}
	if !doc.TaxApplicable {
		parts = append(parts, "No afecto a IGV")
	}
	if doc.SubjectToDetraction && doc.DetractionRate.Valid {
		parts = append(parts, fmt.Sprintf("Detracción %s (%s%%)",
			nonEmpty(doc.DetractionCode, "s/c"),
			doc.DetractionRate.Decimal.Shift(2).StringFixed(0)))
	}

	comps := []core.Component{
		text.New("CONDICIONES", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(strings.Join(parts, "   |   "), props.Text{Size: 8, Top: 6, Color: colorGray}),
	}
	height := 12.0
	if doc.Notes != "" {
		comps = append(comps, text.New("Notas: "+doc.Notes, props.Text{Size: 8, Top: 11, Color: colorGray}))
		height = 17
	}
	return row.New(height).Add(col.New(12).Add(comps...))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Und.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableDetailRows una fila por línea; las incompletas se muestran atenuadas porque no suman.
func tableDetailRows(lines []entity.LineItem, cur string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		color := &props.Color{}
		desc := l.Description
		if !l.Quantity.IsPositive() || !l.UnitPrice.IsPositive() {
			color = colorGray
			desc += " (no suma)"
		}
		if l.TaxCategory == entity.TaxCategoryExonerado || l.TaxCategory == entity.TaxCategoryInafecto {
			desc += " [" + strings.ToLower(string(l.TaxCategory)) + "]"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
			col.New(1).Add(text.New(l.UnitCode, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
			col.New(5).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: color})),
			col.New(2).Add(text.New(cur+formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
			col.New(3).Add(text.New(cur+formatMoney(l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
		))
	}
	return result
}

func amountRow(label, value string, grand bool, color *props.Color) core.Row {
	size, style, height := 9.0, fontstyle.Normal, 5.0
	if grand {
		size, style, height = 10, fontstyle.Bold, 7
	}
	if color == nil {
		color = &props.Color{}
	}
	return row.New(height).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: color,
		})),
		col.New(3).Add(text.New(value, props.Text{
			Style: style, Size: size, Align: align.Right, Right: 1, Color: color,
		})),
	)
}

func totalsRows(doc *entity.PurchaseDocument, cur string) []core.Row {
	b := doc.Breakdown
	rows := []core.Row{amountRow("Op. gravadas:", cur+formatMoney(b.TaxableAmount), false, nil)}
	if !b.ExemptAmount.IsZero() {
		rows = append(rows, amountRow("Op. exoneradas:", cur+formatMoney(b.ExemptAmount), false, nil))
	}
	if !b.UnaffectedAmount.IsZero() {
		rows = append(rows, amountRow("Op. inafectas:", cur+formatMoney(b.UnaffectedAmount), false, nil))
	}
	rows = append(rows,
		amountRow("IGV:", cur+formatMoney(b.Tax), false, nil),
		amountRow("TOTAL:", cur+formatMoney(b.Total), true, colorPrimary),
	)
	if b.DetractionAmount.Valid {
		rows = append(rows, amountRow("Detracción (informativa):", cur+formatMoney(b.DetractionAmount.Decimal), false, colorGray))
	}
	return rows
}

func paymentRows(payments []entity.PaymentAllocation, rec entity.Reconciliation, cur string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("PAGOS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	if len(payments) == 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New("Sin pagos registrados.", props.Text{
			Size: 8, Color: colorGray, Left: 2,
		}))))
	}
	for _, p := range payments {
		ref := strings.TrimSpace(strings.Join([]string{p.Method, p.Reference}, " "))
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(p.PaidAt.Format("02/01/2006"), props.Text{Size: 8, Left: 2})),
			col.New(7).Add(text.New(nonEmpty(ref, "—"), props.Text{Size: 8, Color: colorGray})),
			col.New(3).Add(text.New(cur+formatMoney(p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}

	statusColor, statusLabel := colorAlert, "PENDIENTE"
	if rec.Status == entity.PaymentStatusPaid {
		statusColor, statusLabel = colorOK, "PAGADO"
	}
	return append(rows,
		amountRow("Pagado:", cur+formatMoney(rec.Paid), false, nil),
		amountRow("Pendiente:", cur+formatMoney(rec.Pending), false, nil),
		amountRow("Estado:", statusLabel, true, statusColor),
	)
}

// footerRows QR con la trama SUNAT (RUC|tipo|serie|número|IGV|total|fecha) cuando el tipo tiene código oficial.
func footerRows(doc *entity.PurchaseDocument) []core.Row {
	legend := "Resumen interno de compra. No reemplaza al comprobante electrónico del proveedor."
	tipo := sunatCodes[doc.DocumentType]
	if tipo == "" || tipo == sunat.DocTypeOrdenCompra || doc.SupplierTaxID == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		))}
	}
	qr := strings.Join([]string{
		doc.SupplierTaxID, tipo, doc.Series, doc.Number,
		doc.Breakdown.Tax.StringFixed(2), doc.Breakdown.Total.StringFixed(2),
		doc.IssueDate.Format("2006-01-02"),
	}, "|")
	return []core.Row{row.New(36).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Consulte la validez del comprobante en el portal SUNAT.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(legend, props.Text{Size: 6.5, Top: 14, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func currencySymbol(code string) string {
	switch code {
	case sunat.CurrencyPEN:
		return "S/ "
	case sunat.CurrencyUSD:
		return "US$ "
	case "":
		return ""
	}
	return code + " "
}

// formatMoney dos decimales con coma de miles.
// Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
