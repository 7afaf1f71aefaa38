// Package wine contiene las reglas de dominio de un vino: invariantes de ventana de consumo
// y composición de uvas, normalización de tipo y semántica de filtros y ordenamiento.
package wine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
)

// Mensajes de validación expuestos por la API (el formulario reescribe MsgDrinkDateOrder).
const (
	MsgDrinkDateOrder = "drink_before_date must be later than drink_after_date"
	MsgGrapeSum       = "Sum of grape composition percentages must be approximately 100 (±0.5)"
)

// Límites de los campos.
const (
	MaxNameLen      = 255
	MaxProducerLen  = 255
	MaxShortTextLen = 100
	MinVintage      = 1800
	MaxVintage      = 2100
)

var (
	hundred = decimal.NewFromInt(100)
	// GrapeSumTolerance tolerancia del total de porcentajes respecto de 100.
	GrapeSumTolerance = decimal.RequireFromString("0.5")
)

// DecimalPlaces número de decimales escritos (12.50 -> 2, 12 -> 0).
func DecimalPlaces(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}

// GrapeTotal suma los porcentajes.
func GrapeTotal(rows []entity.GrapeComposition) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Percentage)
	}
	return total
}

// TotalWithinTolerance indica si |total - 100| <= 0.5.
func TotalWithinTolerance(total decimal.Decimal) bool {
	return total.Sub(hundred).Abs().LessThanOrEqual(GrapeSumTolerance)
}

// ValidPercentage 0 <= p <= 100.
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// Validate aplica las reglas del recurso completo (alta y resultado de un PATCH).
// Devuelve *domain.ValidationError con todos los mensajes encontrados.
func Validate(w *entity.Wine) error {
	if w == nil {
		return domain.NewValidationError("wine is required")
	}
	var msgs []string
	name := strings.TrimSpace(w.Name)
	if name == "" {
		msgs = append(msgs, "name is required")
	} else if utf8.RuneCountInString(name) > MaxNameLen {
		msgs = append(msgs, fmt.Sprintf("name must be at most %d characters", MaxNameLen))
	}
	msgs = appendLen(msgs, "type", w.Type, MaxShortTextLen)
	msgs = appendLen(msgs, "producer", w.Producer, MaxProducerLen)
	msgs = appendLen(msgs, "country", w.Country, MaxShortTextLen)
	msgs = appendLen(msgs, "district", w.District, MaxShortTextLen)
	msgs = appendLen(msgs, "subdistrict", w.Subdistrict, MaxShortTextLen)

	if w.Vintage != nil && (*w.Vintage < MinVintage || *w.Vintage > MaxVintage) {
		msgs = append(msgs, fmt.Sprintf("vintage must be between %d and %d", MinVintage, MaxVintage))
	}
	if w.PurchasePrice != nil && w.PurchasePrice.IsNegative() {
		msgs = append(msgs, "purchase_price must be greater than or equal to 0")
	}
	if w.Quantity != nil && *w.Quantity < 0 {
		msgs = append(msgs, "quantity must be greater than or equal to 0")
	}
	if w.DrinkAfterDate != nil && w.DrinkBeforeDate != nil && !w.DrinkAfterDate.Before(*w.DrinkBeforeDate) {
		msgs = append(msgs, MsgDrinkDateOrder)
	}

	for i, gc := range w.GrapeComposition {
		variety := strings.TrimSpace(gc.GrapeVariety)
		if variety == "" || utf8.RuneCountInString(variety) > MaxShortTextLen {
			msgs = append(msgs, fmt.Sprintf("grape_composition[%d].grape_variety must be 1-%d characters", i, MaxShortTextLen))
		}
		if !ValidPercentage(gc.Percentage) {
			msgs = append(msgs, fmt.Sprintf("grape_composition[%d].percentage must be between 0 and 100", i))
		}
	}
	if len(w.GrapeComposition) > 0 && !TotalWithinTolerance(GrapeTotal(w.GrapeComposition)) {
		msgs = append(msgs, MsgGrapeSum)
	}

	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

func appendLen(msgs []string, field string, v *string, max int) []string {
	if v != nil && utf8.RuneCountInString(*v) > max {
		return append(msgs, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return msgs
}
