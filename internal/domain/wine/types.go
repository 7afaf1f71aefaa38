package wine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tipos de vino soportados por la API de sugerencias y ofrecidos en el formulario.
const (
	TypeRed       = "Red"
	TypeWhite     = "White"
	TypeRose      = "Rosé"
	TypeSparkling = "Sparkling"
	TypeDessert   = "Dessert"
	TypeFortified = "Fortified"
)

// SupportedTypes en el orden en que se muestran.
var SupportedTypes = []string{TypeRed, TypeWhite, TypeRose, TypeSparkling, TypeDessert, TypeFortified}

var folder = cases.Fold()

// foldKey clave de comparación: sin acentos, sin mayúsculas, NFC.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return folder.String(stripped)
}

// NormalizeType devuelve el nombre canónico de un tipo soportado ("rose", "ROSÉ" -> "Rosé").
// ok es false si el tipo no está en SupportedTypes; en ese caso se devuelve el texto en NFC y recortado.
func NormalizeType(s string) (string, bool) {
	key := foldKey(s)
	for _, t := range SupportedTypes {
		if foldKey(t) == key {
			return t, true
		}
	}
	return norm.NFC.String(strings.TrimSpace(s)), false
}

// IsSupportedType indica si s corresponde a un tipo soportado.
func IsSupportedType(s string) bool {
	_, ok := NormalizeType(s)
	return ok
}
