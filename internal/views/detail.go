package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
)

// DetailView ficha de un vino (GET /api/wines/{id}).
type DetailView struct {
	api *client.WinesAPI
	req *client.Request

	mu     sync.Mutex
	id     string
	wine   *dto.WineResponse
	errMsg string
}

// NewDetailView crea la vista para id.
func NewDetailView(api *client.WinesAPI, id string) *DetailView {
	return &DetailView{api: api, req: api.Client().NewRequest(), id: id}
}

// Load pide el vino actual.
func (v *DetailView) Load(ctx context.Context) {
	v.mu.Lock()
	id := v.id
	v.mu.Unlock()

	w, msg := v.api.Get(ctx, v.req, id)
	v.mu.Lock()
	v.wine, v.errMsg = w, msg
	v.mu.Unlock()
}

// SetID cambia el vino mostrado y recarga si es otro.
func (v *DetailView) SetID(ctx context.Context, id string) {
	v.mu.Lock()
	changed := v.id != id
	v.id = id
	v.mu.Unlock()
	if changed {
		v.Load(ctx)
	}
}

// Wine último vino cargado.
func (v *DetailView) Wine() *dto.WineResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.wine
}

// Render ficha en texto.
func (v *DetailView) Render(w io.Writer) error {
	wine, done, err := v.snapshot(w)
	if done {
		return err
	}

	lines := [][2]string{
		{"Name", wine.Name},
		{"Type", str(wine.Type)},
		{"Producer", str(wine.Producer)},
		{"Vintage", num(wine.Vintage)},
		{"Country", str(wine.Country)},
		{"District", str(wine.District)},
		{"Subdistrict", str(wine.Subdistrict)},
		{"Purchase price", money(wine.PurchasePrice)},
		{"Quantity", num(wine.Quantity)},
		{"Drink after", date(wine.DrinkAfterDate)},
		{"Drink before", date(wine.DrinkBeforeDate)},
		{"Status", statusOrMissing(wine.DrinkingWindowStatus)},
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%-15s %s\n", l[0]+":", l[1])
	}
	b.WriteString("Grapes:\n")
	if len(wine.GrapeComposition) == 0 {
		fmt.Fprintf(&b, "  %s\n", Missing)
	}
	for _, g := range wine.GrapeComposition {
		fmt.Fprintf(&b, "  - %s %s%%\n", g.GrapeVariety, g.Percentage.String())
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// wineDoc forma YAML de la ficha.
type wineDoc struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	Type             *string    `yaml:"type"`
	Producer         *string    `yaml:"producer"`
	Vintage          *int       `yaml:"vintage"`
	Country          *string    `yaml:"country"`
	District         *string    `yaml:"district"`
	Subdistrict      *string    `yaml:"subdistrict"`
	PurchasePrice    *string    `yaml:"purchase_price"`
	Quantity         *int       `yaml:"quantity"`
	DrinkAfterDate   *string    `yaml:"drink_after_date"`
	DrinkBeforeDate  *string    `yaml:"drink_before_date"`
	Status           string     `yaml:"drinking_window_status,omitempty"`
	GrapeComposition []grapeDoc `yaml:"grape_composition"`
}

type grapeDoc struct {
	Variety    string `yaml:"grape_variety"`
	Percentage string `yaml:"percentage"`
}

// RenderYAML ficha en YAML (nulos como null).
func (v *DetailView) RenderYAML(w io.Writer) error {
	wine, done, err := v.snapshot(w)
	if done {
		return err
	}

	doc := wineDoc{
		ID: wine.ID, Name: wine.Name, Type: wine.Type, Producer: wine.Producer, Vintage: wine.Vintage,
		Country: wine.Country, District: wine.District, Subdistrict: wine.Subdistrict,
		Quantity: wine.Quantity, Status: wine.DrinkingWindowStatus,
		GrapeComposition: []grapeDoc{},
	}
	if wine.PurchasePrice != nil {
		s := wine.PurchasePrice.StringFixed(2)
		doc.PurchasePrice = &s
	}
	if wine.DrinkAfterDate != nil {
		s := wine.DrinkAfterDate.String()
		doc.DrinkAfterDate = &s
	}
	if wine.DrinkBeforeDate != nil {
		s := wine.DrinkBeforeDate.String()
		doc.DrinkBeforeDate = &s
	}
	for _, g := range wine.GrapeComposition {
		doc.GrapeComposition = append(doc.GrapeComposition, grapeDoc{Variety: g.GrapeVariety, Percentage: g.Percentage.String()})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}

// snapshot escribe loading/error/vacío y devuelve done=true en esos casos.
func (v *DetailView) snapshot(w io.Writer) (*dto.WineResponse, bool, error) {
	st := v.req.State()
	v.mu.Lock()
	wine, errMsg := v.wine, v.errMsg
	v.mu.Unlock()

	if done, err := state(w, st.Loading, errMsg); done {
		return nil, true, err
	}
	if wine == nil {
		_, err := fmt.Fprintln(w, "Wine not found.")
		return nil, true, err
	}
	return wine, false, nil
}
