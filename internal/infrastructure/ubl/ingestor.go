package ubl

import (
	"context"
	"errors"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

// Ingestor convierte un XML UBL de proveedor en líneas de compra resueltas contra el catálogo.
type Ingestor struct {
	log *logger.Logger
}

// NewIngestor crea el ingestor. log nil equivale a logger.Nop().
func NewIngestor(log *logger.Logger) *Ingestor {
	if log == nil {
		log = logger.Nop()
	}
	return &Ingestor{log: log.WithStr("component", "ubl")}
}

// Ingest nunca falla: un XML ilegible, con raíz desconocida o sin líneas produce un resultado
// sin líneas y la explicación en Warnings.
func (i *Ingestor) Ingest(ctx context.Context, payload []byte, catalog purchase.ProductLookup) purchase.IngestResult {
	res := purchase.IngestResult{Lines: []entity.LineItem{}}

	doc, err := Parse(payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPayload):
			res.Warnings = append(res.Warnings, "el archivo está vacío")
		case errors.Is(err, ErrUnknownRoot):
			res.Warnings = append(res.Warnings, "el XML no es una factura, nota de crédito ni nota de débito UBL")
		default:
			res.Warnings = append(res.Warnings, "no se pudo leer el XML: "+err.Error())
		}
		i.log.Warn().Err(err).Int("bytes", len(payload)).Msg("comprobante descartado")
		return res
	}

	res.Header = ExtractHeader(doc)
	if digest, err := Digest(doc); err == nil {
		res.Header.Digest = digest
	} else {
		i.log.Debug().Err(err).Msg("sin huella del comprobante")
	}
	raws := ExtractLines(doc)
	if len(raws) == 0 {
		res.Warnings = append(res.Warnings, "el comprobante no contiene líneas")
		i.log.Warn().Str("document", res.Header.DocumentID).Msg("comprobante sin líneas")
		return res
	}

	lines, discarded, warnings := purchase.BuildLines(ctx, raws, catalog)
	res.Lines = lines
	res.Discarded = discarded
	res.Warnings = append(res.Warnings, warnings...)
	if len(lines) == 0 {
		res.Warnings = append(res.Warnings, "ninguna línea del comprobante tiene cantidad mayor a cero")
	}
	for _, w := range warnings {
		i.log.Warn().Str("document", res.Header.DocumentID).Msg(w)
	}

	unmatched := 0
	for _, l := range lines {
		if !l.Matched() {
			unmatched++
		}
	}
	i.log.Info().
		Str("document", res.Header.DocumentID).
		Str("supplier", res.Header.SupplierTaxID).
		Int("lines", len(lines)).
		Int("discarded", discarded).
		Int("unmatched", unmatched).
		Msg("comprobante importado")
	return res
}
