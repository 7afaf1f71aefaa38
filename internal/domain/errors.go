package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient quantity")
	ErrNotConfigured     = errors.New("external wine API is not configured")
	ErrExternalAPI       = errors.New("external wine API error")
)

// ValidationError agrupa los mensajes de validación de una entrada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Messages []string
}

// NewValidationError construye el error con uno o más mensajes.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ExternalAPIError mensaje de la API externa de sugerencias.
type ExternalAPIError struct {
	Message string
}

func (e *ExternalAPIError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrExternalAPI).
func (e *ExternalAPIError) Unwrap() error { return ErrExternalAPI }
