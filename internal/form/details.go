package form

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/vin/internal/domain/wine"
)

// Campos de la sección de detalles.
const (
	FieldName        = "name"
	FieldType        = "type"
	FieldProducer    = "producer"
	FieldVintage     = "vintage"
	FieldCountry     = "country"
	FieldDistrict    = "district"
	FieldSubdistrict = "subdistrict"
)

var fourDigits = regexp.MustCompile(`^\d{4}$`)

// Details valor confirmado de la sección.
type Details struct {
	Name        string
	Type        string
	Producer    string
	Vintage     *int
	Country     *string
	District    *string
	Subdistrict *string
}

// DetailsInput nombre, tipo, productor, añada y origen.
type DetailsInput struct {
	section[Details]
	opts Options

	name, wineType, producer, vintage string
	country, district, subdistrict    string
}

// NewDetailsInput crea la sección; onChange recibe cada valor válido tras el debounce.
func NewDetailsInput(opts Options, onChange func(Details)) *DetailsInput {
	in := &DetailsInput{section: newSection(opts, onChange), opts: opts}
	in.errs = in.validate()
	return in
}

// Cada Set* guarda el borrador, recalcula errores y programa la emisión.
func (in *DetailsInput) SetName(s string)        { in.name = s; in.changed() }
func (in *DetailsInput) SetType(s string)        { in.wineType = s; in.changed() }
func (in *DetailsInput) SetProducer(s string)    { in.producer = s; in.changed() }
func (in *DetailsInput) SetVintage(s string)     { in.vintage = s; in.changed() }
func (in *DetailsInput) SetCountry(s string)     { in.country = s; in.changed() }
func (in *DetailsInput) SetDistrict(s string)    { in.district = s; in.changed() }
func (in *DetailsInput) SetSubdistrict(s string) { in.subdistrict = s; in.changed() }

// Type borrador del tipo (para pedir sugerencias de ventana).
func (in *DetailsInput) Type() string { return in.wineType }

// Vintage borrador de la añada.
func (in *DetailsInput) Vintage() string { return in.vintage }

// Reset vuelve a los valores vacíos sin emitir.
func (in *DetailsInput) Reset() {
	in.deb.Stop()
	*in = DetailsInput{section: in.section, opts: in.opts}
	in.errs = in.validate()
}

func (in *DetailsInput) changed() {
	in.update(in.validate(), in.value)
}

func (in *DetailsInput) validate() Errors {
	var errs Errors
	if strings.TrimSpace(in.name) == "" {
		errs.add(FieldName, "Name is required.")
	}
	if strings.TrimSpace(in.wineType) == "" {
		errs.add(FieldType, "Type is required.")
	} else if !wine.IsSupportedType(in.wineType) {
		errs.add(FieldType, "Type must be one of: "+strings.Join(wine.SupportedTypes, ", ")+".")
	}
	if strings.TrimSpace(in.producer) == "" {
		errs.add(FieldProducer, "Producer is required.")
	}
	if v := strings.TrimSpace(in.vintage); v != "" {
		if !fourDigits.MatchString(v) {
			errs.add(FieldVintage, "Vintage must be a 4-digit year.")
		} else if year, _ := strconv.Atoi(v); year > in.opts.now().Year() {
			errs.add(FieldVintage, "Vintage cannot be in the future.")
		}
	}
	return errs
}

// value requiere un borrador sin errores.
func (in *DetailsInput) value() Details {
	t, _ := wine.NormalizeType(in.wineType)
	d := Details{
		Name:        strings.TrimSpace(in.name),
		Type:        t,
		Producer:    strings.TrimSpace(in.producer),
		Country:     optional(in.country),
		District:    optional(in.district),
		Subdistrict: optional(in.subdistrict),
	}
	if v := strings.TrimSpace(in.vintage); v != "" {
		year, _ := strconv.Atoi(v)
		d.Vintage = &year
	}
	return d
}
