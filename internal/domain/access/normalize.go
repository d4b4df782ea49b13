package access

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents descompone (NFD), elimina marcas combinantes y recompone (NFC):
// "Équipe" → "Equipe". Los códigos legacy del frontend histórico traen acentos.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lleva cualquier grafía de código de módulo a su forma canónica:
// minúsculas, sin acentos, guiones bajos y espacios internos como guión,
// guiones repetidos colapsados, sin guiones ni espacios en los extremos.
// Pura y total: nunca falla, cadena vacía produce cadena vacía. Idempotente.
func Normalize(code string) string {
	s, _, err := transform.String(foldAccents, code)
	if err != nil {
		// Entrada no UTF-8 válida: se sigue con el original, el resto de la
		// normalización es segura byte a byte.
		s = code
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// swapSeparators intercambia '_' por '-' y viceversa. Es el paso intermedio de
// búsqueda: muchos códigos viejos difieren del canónico solo en el separador.
func swapSeparators(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_':
			return '-'
		case '-':
			return '_'
		}
		return r
	}, code)
}
