package form

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain/wine"
)

// FieldGrapeTotal error del total de porcentajes.
const FieldGrapeTotal = "grape_composition"

var hundred = decimal.NewFromInt(100)

// GrapeRow fila confirmada.
type GrapeRow struct {
	Variety    string
	Percentage decimal.Decimal
}

type grapeDraft struct {
	variety, percentage string
}

// GrapesInput filas de (variedad, porcentaje). Cada porcentaje 0..100 con 1 decimal como máximo
// y el total de las filas no puede superar 100.
type GrapesInput struct {
	section[[]GrapeRow]
	rows []grapeDraft
}

// NewGrapesInput crea la sección sin filas.
func NewGrapesInput(opts Options, onChange func([]GrapeRow)) *GrapesInput {
	return &GrapesInput{section: newSection(opts, onChange)}
}

// GrapeField nombre del campo de una fila ("grape_composition.0.percentage").
func GrapeField(i int, name string) string {
	return fmt.Sprintf("grape_composition.%d.%s", i, name)
}

// AddRow agrega una fila vacía y devuelve su índice.
func (in *GrapesInput) AddRow() int {
	in.rows = append(in.rows, grapeDraft{})
	in.changed()
	return len(in.rows) - 1
}

// RemoveRow quita la fila i (fuera de rango no hace nada).
func (in *GrapesInput) RemoveRow(i int) {
	if i < 0 || i >= len(in.rows) {
		return
	}
	in.rows = append(in.rows[:i], in.rows[i+1:]...)
	in.changed()
}

// SetVariety borrador de la variedad de la fila i.
func (in *GrapesInput) SetVariety(i int, s string) {
	if i >= 0 && i < len(in.rows) {
		in.rows[i].variety = s
		in.changed()
	}
}

// SetPercentage borrador del porcentaje de la fila i.
func (in *GrapesInput) SetPercentage(i int, s string) {
	if i >= 0 && i < len(in.rows) {
		in.rows[i].percentage = s
		in.changed()
	}
}

// Len número de filas.
func (in *GrapesInput) Len() int { return len(in.rows) }

// Total suma de los porcentajes que se pueden leer.
func (in *GrapesInput) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range in.rows {
		if d, err := parseDecimal(strings.TrimSpace(r.percentage)); err == nil {
			total = total.Add(d)
		}
	}
	return total
}

// Reset quita todas las filas sin emitir.
func (in *GrapesInput) Reset() {
	in.deb.Stop()
	in.rows, in.errs = nil, nil
}

func (in *GrapesInput) changed() {
	in.update(in.validate(), in.value)
}

func (in *GrapesInput) validate() Errors {
	var errs Errors
	for i, r := range in.rows {
		if strings.TrimSpace(r.variety) == "" {
			errs.add(GrapeField(i, "grape_variety"), "Grape variety is required.")
		}
		p := strings.TrimSpace(r.percentage)
		d, err := parseDecimal(p)
		switch {
		case p == "":
			errs.add(GrapeField(i, "percentage"), "Percentage is required.")
		case err != nil:
			errs.add(GrapeField(i, "percentage"), "Percentage must be a number.")
		case !wine.ValidPercentage(d):
			errs.add(GrapeField(i, "percentage"), "Percentage must be between 0 and 100.")
		case wine.DecimalPlaces(d) > 1:
			errs.add(GrapeField(i, "percentage"), "Percentage can have at most 1 decimal place.")
		}
	}
	if in.Total().GreaterThan(hundred) {
		errs.add(FieldGrapeTotal, fmt.Sprintf("Total percentage is %s%%; it cannot exceed 100%%.", in.Total().String()))
	}
	return errs
}

func (in *GrapesInput) value() []GrapeRow {
	out := make([]GrapeRow, 0, len(in.rows))
	for _, r := range in.rows {
		d, _ := parseDecimal(strings.TrimSpace(r.percentage))
		out = append(out, GrapeRow{Variety: strings.TrimSpace(r.variety), Percentage: d})
	}
	return out
}
