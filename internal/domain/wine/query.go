package wine

import (
	"fmt"
	"strings"

	"github.com/jhoicas/vin/internal/domain/entity"
)

// Estados de ventana de consumo usados como filtro.
const (
	StatusReadyToDrink        = "ready_to_drink"
	StatusApproachingDeadline = "approaching_deadline"
	StatusNotReady            = "not_ready"
)

// ApproachingDeadlineDays horizonte del estado approaching_deadline.
const ApproachingDeadlineDays = 30

// Paginación por defecto y máxima.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortFields campos ordenables (lista blanca) -> columna SQL.
// Los IDs son UUID, así que "id" ordena por fecha de alta.
var SortFields = map[string]string{
	"id":       "created_at",
	"name":     "name",
	"producer": "producer",
	"vintage":  "vintage",
	"type":     "type",
}

// ListFilter filtros de colección. Campos vacíos/nil no filtran.
type ListFilter struct {
	SearchTerm           string
	Type                 string
	Vintage              *int
	Country              string
	District             string
	Subdistrict          string
	DrinkingWindowStatus string
}

// Sort orden de la colección.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort valida sort_by (default id). sort_order vacío o "desc" ordena descendente;
// cualquier otro valor, ascendente.
func ParseSort(by, order string) (Sort, error) {
	if by == "" {
		by = "id"
	}
	if _, ok := SortFields[by]; !ok {
		return Sort{}, fmt.Errorf("Invalid sort_by field: %s. Must be one of [id name producer vintage type]", by)
	}
	o := strings.ToLower(strings.TrimSpace(order))
	return Sort{Field: by, Desc: o == "" || o == "desc"}, nil
}

// ValidStatus indica si s es un estado de ventana de consumo conocido (o vacío).
func ValidStatus(s string) bool {
	switch s {
	case "", StatusReadyToDrink, StatusApproachingDeadline, StatusNotReady:
		return true
	}
	return false
}

// Page página 1-indexada.
type Page struct {
	Number int
	Size   int
}

// NewPage aplica valores por defecto y límites.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset desplazamiento SQL.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// TotalPages páginas necesarias para total elementos (mínimo 1).
func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.Size - 1) / p.Size
}

// StatusOf calcula el estado de ventana de consumo de un vino hoy.
// Devuelve "" cuando no aplica ninguno o la cantidad es 0.
// approaching_deadline tiene prioridad sobre ready_to_drink.
func StatusOf(w *entity.Wine, today entity.Date) string {
	if w == nil || w.CurrentQuantity() <= 0 {
		return ""
	}
	if w.DrinkBeforeDate != nil && !w.DrinkBeforeDate.Before(today) &&
		!w.DrinkBeforeDate.After(today.AddDays(ApproachingDeadlineDays)) {
		return StatusApproachingDeadline
	}
	if w.DrinkAfterDate != nil && w.DrinkBeforeDate != nil &&
		!w.DrinkAfterDate.After(today) && !w.DrinkBeforeDate.Before(today) {
		return StatusReadyToDrink
	}
	if w.DrinkAfterDate != nil && w.DrinkAfterDate.After(today) {
		return StatusNotReady
	}
	return ""
}

// MatchesStatus aplica el filtro de ventana de consumo. Cada estado se evalúa por separado,
// así un vino puede estar a la vez ready_to_drink y approaching_deadline.
func MatchesStatus(w *entity.Wine, status string, today entity.Date) bool {
	if status == "" {
		return true
	}
	if w.CurrentQuantity() <= 0 {
		return false
	}
	after, before := w.DrinkAfterDate, w.DrinkBeforeDate
	switch status {
	case StatusReadyToDrink:
		return after != nil && before != nil && !after.After(today) && !before.Before(today)
	case StatusApproachingDeadline:
		return before != nil && !before.Before(today) && !before.After(today.AddDays(ApproachingDeadlineDays))
	case StatusNotReady:
		return after != nil && after.After(today)
	}
	return false
}

// Matches evalúa el filtro completo en memoria, con la misma semántica que la consulta SQL.
func (f ListFilter) Matches(w *entity.Wine, today entity.Date) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		inName := strings.Contains(strings.ToLower(w.Name), term)
		inProducer := w.Producer != nil && strings.Contains(strings.ToLower(*w.Producer), term)
		if !inName && !inProducer {
			return false
		}
	}
	if !eqPtr(f.Type, w.Type) || !eqPtr(f.Country, w.Country) ||
		!eqPtr(f.District, w.District) || !eqPtr(f.Subdistrict, w.Subdistrict) {
		return false
	}
	if f.Vintage != nil && (w.Vintage == nil || *w.Vintage != *f.Vintage) {
		return false
	}
	return MatchesStatus(w, f.DrinkingWindowStatus, today)
}

func eqPtr(want string, got *string) bool {
	return want == "" || (got != nil && *got == want)
}
