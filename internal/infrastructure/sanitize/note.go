// Package sanitize limpia texto libre del usuario antes de persistirlo.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jhoicas/vin/internal/application/ports"
)

var _ ports.TextSanitizer = NoteSanitizer{}

var (
	notePolicyOnce sync.Once
	notePolicy     *bluemonday.Policy
)

// NoteSanitizer elimina todo el marcado de notas de cata y de ajuste y devuelve texto plano.
type NoteSanitizer struct{}

// Sanitize implementa ports.TextSanitizer.
func (NoteSanitizer) Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(plain(trimmed))
}

// maxPasses cota de rondas de decodificación (entidades anidadas como &amp;lt;).
const maxPasses = 8

// plain decodifica entidades y sanea hasta que el texto deja de cambiar, para que
// marcado escrito como entidades no reaparezca al guardarse como texto plano.
// Si no converge, el resultado queda escapado por bluemonday.
func plain(s string) string {
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(policy().Sanitize(html.UnescapeString(s)))
		if next == s {
			return s
		}
		s = next
	}
	return policy().Sanitize(s)
}

func policy() *bluemonday.Policy {
	notePolicyOnce.Do(func() {
		notePolicy = bluemonday.StrictPolicy()
	})
	return notePolicy
}
