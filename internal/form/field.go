// Package form contiene las secciones del formulario de alta de vinos. Cada sección guarda
// borradores de texto, recalcula sus errores en cada edición y, si no hay errores, emite el
// valor confirmado al padre tras un debounce.
package form

import (
	"strings"
	"time"

	"github.com/jhoicas/vin/internal/debounce"
)

// Options configuración común de las secciones.
type Options struct {
	Delay time.Duration    // debounce de emisión; 0 = debounce.DefaultDelay
	Now   func() time.Time // reloj para año y fecha actuales; nil = time.Now

	SuccessTTL time.Duration // duración del mensaje de éxito; 0 = DefaultSuccessTTL
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// FieldError error de validación ligado a un campo.
type FieldError struct {
	Field   string
	Message string
}

// ErrorID id accesible del texto de error (aria-describedby del campo).
func (e FieldError) ErrorID() string {
	return strings.ReplaceAll(e.Field, ".", "-") + "-error"
}

// Errors errores de una sección en orden de campo.
type Errors []FieldError

// Get devuelve el primer mensaje de field o "".
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Has indica si field tiene error.
func (e Errors) Has(field string) bool {
	return e.Get(field) != ""
}

func (e *Errors) add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}

// section estado compartido: errores actuales y debouncer de emisión.
// Los Set* de cada sección se llaman desde un solo goroutine (el de la UI); la emisión corre en el del temporizador.
type section[T any] struct {
	errs Errors
	deb  *debounce.Debouncer[T]
}

func newSection[T any](opts Options, onChange func(T)) section[T] {
	if onChange == nil {
		onChange = func(T) {}
	}
	return section[T]{deb: debounce.New(opts.Delay, onChange)}
}

// update guarda errs y programa la emisión solo si no hay errores; si los hay, descarta la pendiente.
func (s *section[T]) update(errs Errors, value func() T) {
	s.errs = errs
	if len(errs) > 0 {
		s.deb.Stop()
		return
	}
	s.deb.Trigger(value())
}

// Errors errores actuales.
func (s *section[T]) Errors() Errors { return s.errs }

// Valid indica si el borrador actual no tiene errores.
func (s *section[T]) Valid() bool { return len(s.errs) == 0 }

// Flush emite ya la emisión pendiente, si la hay.
func (s *section[T]) Flush() { s.deb.Flush() }

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
