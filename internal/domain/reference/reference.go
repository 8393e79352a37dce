// Package reference construye las referencias secuenciales de los documentos
// (D2025-0001 para devis, F2025-0001 para facturas).
//
// Es una función PURA: el consecutivo lo entrega un contador atómico por año
// (ver repository.ReferenceCounter), este paquete solo lo formatea.
package reference

import (
	"fmt"
	"regexp"
	"time"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

const (
	PrefixQuote   = "D"
	PrefixInvoice = "F"
)

var refRe = regexp.MustCompile(`^[DF]\d{4}-\d{4,}$`)

// Prefix devuelve la letra según el tipo de documento.
func Prefix(documentType string) string {
	if documentType == entity.DocumentTypeInvoice {
		return PrefixInvoice
	}
	return PrefixQuote
}

// Format arma la referencia: <prefijo><año>-<seq con 4 dígitos mínimo>.
func Format(documentType string, issuedAt time.Time, seq int64) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("secuencia de referencia inválida: %d", seq)
	}
	return fmt.Sprintf("%s%d-%04d", Prefix(documentType), issuedAt.Year(), seq), nil
}

// IsValid indica si s tiene el formato de referencia esperado.
func IsValid(s string) bool {
	return refRe.MatchString(s)
}
