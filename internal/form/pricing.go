package form

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain/wine"
)

// Campos de la sección de precio y cantidad.
const (
	FieldPurchasePrice = "purchase_price"
	FieldQuantity      = "quantity"
)

var (
	decimalText = regexp.MustCompile(`^-?\d+(\.\d*)?$|^-?\.\d+$`)
	integerText = regexp.MustCompile(`^-?\d+$`)
)

// Pricing valor confirmado: nil = campo vacío.
type Pricing struct {
	PurchasePrice *decimal.Decimal
	Quantity      *int
}

// PricingInput precio de compra (>= 0, 2 decimales) y cantidad (entero positivo).
// Los borradores aceptan texto intermedio como "12." sin perder la tecla.
type PricingInput struct {
	section[Pricing]
	price, quantity string
}

// NewPricingInput crea la sección.
func NewPricingInput(opts Options, onChange func(Pricing)) *PricingInput {
	return &PricingInput{section: newSection(opts, onChange)}
}

// SetPurchasePrice borrador del precio.
func (in *PricingInput) SetPurchasePrice(s string) { in.price = s; in.changed() }

// SetQuantity borrador de la cantidad.
func (in *PricingInput) SetQuantity(s string) { in.quantity = s; in.changed() }

// Reset vacía la sección sin emitir.
func (in *PricingInput) Reset() {
	in.deb.Stop()
	in.price, in.quantity, in.errs = "", "", nil
}

func (in *PricingInput) changed() {
	in.update(in.validate(), in.value)
}

func (in *PricingInput) validate() Errors {
	var errs Errors
	if p := strings.TrimSpace(in.price); p != "" {
		d, err := parseDecimal(p)
		switch {
		case err != nil:
			errs.add(FieldPurchasePrice, "Purchase price must be a number.")
		case d.IsNegative():
			errs.add(FieldPurchasePrice, "Purchase price cannot be negative.")
		case wine.DecimalPlaces(d) > 2:
			errs.add(FieldPurchasePrice, "Purchase price can have at most 2 decimal places.")
		}
	}
	if q := strings.TrimSpace(in.quantity); q != "" {
		n, err := strconv.Atoi(q)
		if !integerText.MatchString(q) || err != nil || n < 1 {
			errs.add(FieldQuantity, "Quantity must be a positive whole number.")
		}
	}
	return errs
}

func (in *PricingInput) value() Pricing {
	var p Pricing
	if s := strings.TrimSpace(in.price); s != "" {
		d, _ := parseDecimal(s)
		p.PurchasePrice = &d
	}
	if s := strings.TrimSpace(in.quantity); s != "" {
		n, _ := strconv.Atoi(s)
		p.Quantity = &n
	}
	return p
}

// parseDecimal acepta solo notación decimal simple (sin exponente). "12." se lee como 12 y ".5" como 0.5.
func parseDecimal(s string) (decimal.Decimal, error) {
	if !decimalText.MatchString(s) {
		return decimal.Decimal{}, strconv.ErrSyntax
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}
	return decimal.NewFromString(s)
}
