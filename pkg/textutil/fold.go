// Package textutil normaliza texto para búsquedas del catálogo.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone (NFD), elimina las marcas diacríticas y recompone (NFC).
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin acentos, para comparaciones
// accent-insensitive ("Almacén" -> "almacen"). Si la transformación falla,
// devuelve el texto original en minúsculas.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
