package ubl

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
)

// Digest huella SHA-256 (hex) del elemento raíz en forma canónica C14N 1.0.
// El mismo comprobante reenviado con otra codificación, otras comillas, espaciado dentro
// de etiquetas o elementos vacíos abreviados produce la misma huella.
func Digest(doc *etree.Document) (string, error) {
	if doc == nil || doc.Root() == nil {
		return "", ErrNoRoot
	}
	// Solo la raíz: sin prólogo, ya decodificada a UTF-8.
	out := etree.NewDocument()
	out.SetRoot(doc.Root().Copy())
	out.WriteSettings = etree.WriteSettings{CanonicalEndTags: true, CanonicalText: true, CanonicalAttrVal: true}
	raw, err := out.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("ubl: serializar XML: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("ubl: canonicalizar XML: %w", err)
	}
	if len(canon) == 0 {
		return "", errors.New("ubl: forma canónica vacía")
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
