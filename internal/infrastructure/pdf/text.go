package pdf

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// placeholder se dibuja cuando un texto no se puede renderizar.
const placeholder = "N/A"

var spacesRe = regexp.MustCompile(` {2,}`)

// Sanitize elimina caracteres de control (C0, DEL y C1), normaliza a NFC,
// colapsa espacios y recorta. Un resultado vacío significa "no dibujar".
// Los saltos de línea y tabulaciones cuentan como espacio.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if isControl(r) {
			return -1
		}
		return r
	}, s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// isControl cubre U+0000–U+001F y U+007F–U+009F.
func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

// orDefault devuelve fallback cuando s queda vacío tras sanear.
func orDefault(s, fallback string) string {
	if Sanitize(s) == "" {
		return fallback
	}
	return s
}
