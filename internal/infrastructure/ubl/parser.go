// Package ubl lee comprobantes electrónicos UBL 2.1 (SUNAT) recibidos de proveedores.
// Solo extrae datos: la resolución contra catálogo y los cálculos viven en domain/purchase.
package ubl

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/sunat"
)

var (
	ErrEmptyPayload = errors.New("ubl: contenido vacío")
	ErrUnknownRoot  = errors.New("ubl: raíz desconocida")
	ErrNoRoot       = errors.New("ubl: el XML no tiene elemento raíz")
)

// Tipos de comprobante admitidos y su elemento de línea.
var lineElement = map[string]string{
	"Invoice":    "InvoiceLine",
	"CreditNote": "CreditNoteLine",
	"DebitNote":  "DebitNoteLine",
}

var quantityElements = []string{"InvoicedQuantity", "CreditedQuantity", "DebitedQuantity"}

var itemIdentifications = []string{
	"SellersItemIdentification",
	"StandardItemIdentification",
	"BuyersItemIdentification",
}

// Parse lee el XML. Acepta UTF-8, ISO-8859-1 y windows-1252 declarados en el prólogo.
func Parse(data []byte) (*etree.Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyPayload
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ubl: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	if _, ok := lineElement[root.Tag]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, root.Tag)
	}
	return doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("ubl: codificación no soportada %q", label)
}

// ExtractLines devuelve las líneas declaradas, en orden. Los campos ausentes quedan inválidos.
func ExtractLines(doc *etree.Document) []purchase.RawInvoiceLine {
	root := doc.Root()
	if root == nil {
		return nil
	}
	tag, ok := lineElement[root.Tag]
	if !ok {
		return nil
	}

	var out []purchase.RawInvoiceLine
	for _, el := range children(root, tag) {
		var raw purchase.RawInvoiceLine
		if q := first(el, quantityElements...); q != nil {
			raw.Quantity = amount(q)
			raw.UnitCode = purchase.SomeString(attr(q, "unitCode"))
		}
		raw.UnitPrice = amount(path(el, "Price", "PriceAmount"))

		if item := first(el, "Item"); item != nil {
			raw.Description = text(first(item, "Description"))
			for _, id := range itemIdentifications {
				if code := text(path(item, id, "ID")); code.Valid {
					raw.ProductCode = code
					break
				}
			}
		}
		out = append(out, raw)
	}
	return out
}

// ExtractHeader datos de cabecera del comprobante. Lo que no se encuentre queda vacío.
func ExtractHeader(doc *etree.Document) purchase.IngestHeader {
	var h purchase.IngestHeader
	root := doc.Root()
	if root == nil {
		return h
	}

	h.DocumentID = text(first(root, "ID")).Value
	h.CurrencyCode = text(first(root, "DocumentCurrencyCode")).Value
	h.InvoiceTypeCode = text(first(root, "InvoiceTypeCode")).Value
	if h.InvoiceTypeCode == "" {
		switch root.Tag {
		case "CreditNote":
			h.InvoiceTypeCode = sunat.DocTypeNotaCredito
		case "DebitNote":
			h.InvoiceTypeCode = sunat.DocTypeNotaDebito
		}
	}

	h.IssueDate = date(first(root, "IssueDate"))
	h.DueDate = date(first(root, "DueDate"))
	if h.DueDate == nil {
		h.DueDate = date(path(root, "PaymentTerms", "PaymentDueDate"))
	}

	if party := path(root, "AccountingSupplierParty", "Party"); party != nil {
		h.SupplierTaxID = text(path(party, "PartyIdentification", "ID")).Value
		if name := text(path(party, "PartyLegalEntity", "RegistrationName")); name.Valid {
			h.SupplierName = name.Value
		} else {
			h.SupplierName = text(path(party, "PartyName", "Name")).Value
		}
	}

	h.DeclaredTax = amount(path(root, "TaxTotal", "TaxAmount"))
	h.DeclaredPayable = amount(path(root, "LegalMonetaryTotal", "PayableAmount"))
	if !h.DeclaredPayable.Valid {
		// Las notas de débito usan RequestedMonetaryTotal.
		h.DeclaredPayable = amount(path(root, "RequestedMonetaryTotal", "PayableAmount"))
	}
	return h
}

// children elementos hijos directos con ese nombre local, sin importar el prefijo.
func children(e *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == local {
			out = append(out, c)
		}
	}
	return out
}

// first primer hijo directo cuyo nombre local coincida con alguno de names, en orden de preferencia.
func first(e *etree.Element, names ...string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, n := range names {
		for _, c := range e.ChildElements() {
			if c.Tag == n {
				return c
			}
		}
	}
	return nil
}

func path(e *etree.Element, steps ...string) *etree.Element {
	for _, s := range steps {
		if e = first(e, s); e == nil {
			return nil
		}
	}
	return e
}

func attr(e *etree.Element, key string) string {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func text(e *etree.Element) purchase.OptionalString {
	if e == nil {
		return purchase.OptionalString{}
	}
	return purchase.SomeString(e.Text())
}

func amount(e *etree.Element) decimal.NullDecimal {
	s := text(e)
	if !s.Valid {
		return decimal.NullDecimal{}
	}
	v, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

func date(e *etree.Element) *time.Time {
	s := text(e)
	if !s.Valid {
		return nil
	}
	t, err := time.Parse("2006-01-02", s.Value)
	if err != nil {
		return nil
	}
	return &t
}
