package form

import (
	"strings"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/domain/entity"
)

// Campos de la ventana de consumo.
const (
	FieldDrinkAfter  = "drink_after_date"
	FieldDrinkBefore = "drink_before_date"
)

// MsgDrinkBeforeOrder mensaje de rango invertido (también reescribe el error equivalente del servidor).
const MsgDrinkBeforeOrder = "Drink before date must be after the drink after date."

// DrinkingWindow valor confirmado: nil = sin fecha.
type DrinkingWindow struct {
	After  *entity.Date
	Before *entity.Date
}

// DrinkingWindowInput fechas "beber después de" y "beber antes de" (YYYY-MM-DD).
type DrinkingWindowInput struct {
	section[DrinkingWindow]
	opts          Options
	after, before string
}

// NewDrinkingWindowInput crea la sección.
func NewDrinkingWindowInput(opts Options, onChange func(DrinkingWindow)) *DrinkingWindowInput {
	return &DrinkingWindowInput{section: newSection(opts, onChange), opts: opts}
}

// SetAfter borrador de la fecha inicial.
func (in *DrinkingWindowInput) SetAfter(s string) { in.after = s; in.changed() }

// SetBefore borrador de la fecha final.
func (in *DrinkingWindowInput) SetBefore(s string) { in.before = s; in.changed() }

// ApplySuggestion rellena ambas fechas con la sugerencia de la API.
func (in *DrinkingWindowInput) ApplySuggestion(s dto.DrinkingWindowSuggestionResponse) {
	in.after, in.before = s.DrinkAfterDate.String(), s.DrinkBeforeDate.String()
	in.changed()
}

// Drafts devuelve los borradores actuales.
func (in *DrinkingWindowInput) Drafts() (after, before string) { return in.after, in.before }

// Reset vacía la sección sin emitir.
func (in *DrinkingWindowInput) Reset() {
	in.deb.Stop()
	in.after, in.before, in.errs = "", "", nil
}

func (in *DrinkingWindowInput) changed() {
	in.update(in.validate(), in.value)
}

func (in *DrinkingWindowInput) validate() Errors {
	var errs Errors
	today := entity.Today(in.opts.now())

	after, afterErr := parseOptionalDate(in.after)
	before, beforeErr := parseOptionalDate(in.before)

	if afterErr != nil {
		errs.add(FieldDrinkAfter, "Drink after date must be a valid date (YYYY-MM-DD).")
	} else if after != nil && after.Before(today) {
		errs.add(FieldDrinkAfter, "Drink after date cannot be in the past.")
	}
	if beforeErr != nil {
		errs.add(FieldDrinkBefore, "Drink before date must be a valid date (YYYY-MM-DD).")
	} else if before != nil && after != nil && !before.After(*after) {
		errs.add(FieldDrinkBefore, MsgDrinkBeforeOrder)
	}
	return errs
}

func (in *DrinkingWindowInput) value() DrinkingWindow {
	after, _ := parseOptionalDate(in.after)
	before, _ := parseOptionalDate(in.before)
	return DrinkingWindow{After: after, Before: before}
}

func parseOptionalDate(s string) (*entity.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
