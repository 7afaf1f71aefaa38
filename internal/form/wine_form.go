package form

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// Mensajes del formulario.
const (
	MsgInvalidForm    = "Please fix the highlighted fields before submitting."
	MsgCreated        = "Wine added to your collection."
	MsgSuggestionArgs = "Select a supported type and a 4-digit vintage to get a suggestion."
)

// DefaultSuccessTTL tiempo que se muestra el mensaje de éxito.
const DefaultSuccessTTL = 3 * time.Second

// Draft últimos valores emitidos por cada sección. Details nil = la sección nunca fue válida.
type Draft struct {
	Details *Details
	Pricing Pricing
	Window  DrinkingWindow
	Grapes  []GrapeRow
}

// WineForm agrega las secciones y envía el alta por POST /api/wines.
type WineForm struct {
	Details *DetailsInput
	Pricing *PricingInput
	Window  *DrinkingWindowInput
	Grapes  *GrapesInput

	api        *client.WinesAPI
	req        *client.Request
	suggestReq *client.Request
	successTTL time.Duration

	mu           sync.Mutex
	draft        Draft
	errMsg       string
	success      string
	successTimer *time.Timer
}

// NewWineForm crea el formulario con sus cuatro secciones.
func NewWineForm(api *client.WinesAPI, opts Options) *WineForm {
	f := &WineForm{
		api:        api,
		req:        api.Client().NewRequest(),
		suggestReq: api.Client().NewRequest(),
		successTTL: DefaultSuccessTTL,
	}
	if opts.SuccessTTL > 0 {
		f.successTTL = opts.SuccessTTL
	}
	f.Details = NewDetailsInput(opts, func(d Details) { f.store(func(dr *Draft) { dr.Details = &d }) })
	f.Pricing = NewPricingInput(opts, func(p Pricing) { f.store(func(dr *Draft) { dr.Pricing = p }) })
	f.Window = NewDrinkingWindowInput(opts, func(w DrinkingWindow) { f.store(func(dr *Draft) { dr.Window = w }) })
	f.Grapes = NewGrapesInput(opts, func(g []GrapeRow) { f.store(func(dr *Draft) { dr.Grapes = g }) })
	return f
}

// Request estado de la llamada de alta (loading/data/error).
func (f *WineForm) Request() *client.Request { return f.req }

func (f *WineForm) store(fn func(*Draft)) {
	f.mu.Lock()
	fn(&f.draft)
	f.mu.Unlock()
}

// Draft copia de los valores agregados.
func (f *WineForm) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.Grapes = append([]GrapeRow(nil), f.draft.Grapes...)
	return d
}

// Valid todas las secciones sin errores, detalles emitidos y, si hay uvas, total dentro de 100 ± 0.5.
func (f *WineForm) Valid() bool {
	if !f.Details.Valid() || !f.Pricing.Valid() || !f.Window.Valid() || !f.Grapes.Valid() {
		return false
	}
	d := f.Draft()
	if d.Details == nil {
		return false
	}
	return len(d.Grapes) == 0 || wine.TotalWithinTolerance(grapeTotal(d.Grapes))
}

// Error último error del envío (ya reescrito para el usuario).
func (f *WineForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Success mensaje transitorio tras un alta correcta.
func (f *WineForm) Success() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

// Payload arma el cuerpo del alta omitiendo los campos vacíos.
func (f *WineForm) Payload() dto.CreateWineRequest {
	d := f.Draft()
	var p dto.CreateWineRequest
	if d.Details != nil {
		p.Name = d.Details.Name
		p.Type = &d.Details.Type
		p.Producer = &d.Details.Producer
		p.Vintage = d.Details.Vintage
		p.Country = d.Details.Country
		p.District = d.Details.District
		p.Subdistrict = d.Details.Subdistrict
	}
	p.PurchasePrice = d.Pricing.PurchasePrice
	p.Quantity = d.Pricing.Quantity
	p.DrinkAfterDate = d.Window.After
	p.DrinkBeforeDate = d.Window.Before
	for _, g := range d.Grapes {
		p.GrapeComposition = append(p.GrapeComposition, dto.GrapeCompositionRequest{
			GrapeVariety: g.Variety,
			Percentage:   g.Percentage,
		})
	}
	return p
}

// Submit emite lo pendiente y, si el formulario es válido, envía el alta.
// Inválido: no hay llamada de red. Éxito: limpia todas las secciones y deja MsgCreated por successTTL.
func (f *WineForm) Submit(ctx context.Context) *dto.WineResponse {
	f.Details.Flush()
	f.Pricing.Flush()
	f.Window.Flush()
	f.Grapes.Flush()

	f.setResult("", "")
	if !f.Valid() {
		f.setResult(MsgInvalidForm, "")
		return nil
	}

	created, msg := f.api.Create(ctx, f.req, f.Payload())
	if msg != "" {
		f.setResult(friendlyError(msg), "")
		return nil
	}

	f.Reset()
	f.setResult("", MsgCreated)
	return created
}

// Suggest pide la ventana sugerida para el tipo y la añada del borrador y la aplica.
// Devuelve el mensaje de error o "".
func (f *WineForm) Suggest(ctx context.Context) string {
	wineType, ok := wine.NormalizeType(f.Details.Type())
	vintage, err := strconv.Atoi(strings.TrimSpace(f.Details.Vintage()))
	if !ok || err != nil || !fourDigits.MatchString(strings.TrimSpace(f.Details.Vintage())) {
		return MsgSuggestionArgs
	}
	s, msg := f.api.Suggestion(ctx, f.suggestReq, wineType, vintage)
	if msg != "" {
		return msg
	}
	if s != nil {
		f.Window.ApplySuggestion(*s)
	}
	return ""
}

// Reset vacía secciones y borrador.
func (f *WineForm) Reset() {
	f.Details.Reset()
	f.Pricing.Reset()
	f.Window.Reset()
	f.Grapes.Reset()
	f.mu.Lock()
	f.draft = Draft{}
	f.mu.Unlock()
}

func (f *WineForm) setResult(errMsg, success string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg, f.success = errMsg, success
	if f.successTimer != nil {
		f.successTimer.Stop()
		f.successTimer = nil
	}
	if success != "" {
		f.successTimer = time.AfterFunc(f.successTTL, func() {
			f.mu.Lock()
			if f.success == success {
				f.success = ""
			}
			f.mu.Unlock()
		})
	}
}

// friendlyError reescribe el error de orden de fechas del servidor.
func friendlyError(msg string) string {
	if strings.Contains(msg, wine.MsgDrinkDateOrder) {
		return MsgDrinkBeforeOrder
	}
	return msg
}

func grapeTotal(rows []GrapeRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Percentage)
	}
	return total
}
