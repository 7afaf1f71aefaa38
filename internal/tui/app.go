package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/vin/internal/client"
	"github.com/jhoicas/vin/internal/domain/wine"
	"github.com/jhoicas/vin/internal/form"
	"github.com/jhoicas/vin/internal/views"
	"github.com/jhoicas/vin/pkg/logger"
)

// Opciones del menú principal.
const (
	MenuBrowse    = "Browse collection"
	MenuAdd       = "Add a wine"
	MenuShow      = "Show a wine"
	MenuInventory = "Manage inventory"
	MenuQuit      = "Quit"
)

var mainMenu = []string{MenuBrowse, MenuAdd, MenuShow, MenuInventory, MenuQuit}

// Opciones de la vista de colección.
const (
	browseNext   = "Next page"
	browsePrev   = "Previous page"
	browseSearch = "Search"
	browseSort   = "Sort"
	browseFilter = "Filter"
	browseBack   = "Back"
)

// Opciones de inventario.
const (
	inventoryAdjust  = "Adjust quantity"
	inventoryConsume = "Consume bottles"
	inventoryBack    = "Back"
)

const anyOption = "(any)"

// App cliente interactivo de la colección.
type App struct {
	api    *client.WinesAPI
	driver PromptDriver
	opts   form.Options
	log    *logger.Logger
}

// NewApp crea la app. log nil = sin logs.
func NewApp(api *client.WinesAPI, driver PromptDriver, opts form.Options, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{api: api, driver: driver, opts: opts, log: log}
}

// Run muestra el menú principal hasta Quit. Cancelar un prompt (Ctrl+C) termina sin error.
func (a *App) Run(ctx context.Context) error {
	for {
		choice, err := a.driver.Select(ctx, SelectConfig{Message: "What do you want to do?", Options: mainMenu})
		if err != nil {
			return aborted(err)
		}
		switch option(mainMenu, choice) {
		case MenuBrowse:
			err = a.browse(ctx)
		case MenuAdd:
			err = a.addWine(ctx)
		case MenuShow:
			err = a.showWine(ctx)
		case MenuInventory:
			err = a.manageInventory(ctx)
		default:
			return nil
		}
		if err != nil {
			return aborted(err)
		}
	}
}

// ── Colección ──

func (a *App) browse(ctx context.Context) error {
	v := views.NewCollectionView(a.api)
	v.Load(ctx)
	menu := []string{browseNext, browsePrev, browseSearch, browseSort, browseFilter, browseBack}

	for {
		if err := a.show(ctx, v.Render); err != nil {
			return err
		}
		choice, err := a.driver.Select(ctx, SelectConfig{Message: "Collection", Options: menu})
		if err != nil {
			return err
		}
		switch option(menu, choice) {
		case browseNext:
			v.NextPage(ctx)
		case browsePrev:
			v.PrevPage(ctx)
		case browseSearch:
			term, err := a.driver.Input(ctx, InputConfig{Message: "Search (name or producer):", Default: v.Query().SearchTerm})
			if err != nil {
				return err
			}
			v.SetSearchTerm(ctx, strings.TrimSpace(term))
		case browseSort:
			if err := a.sort(ctx, v); err != nil {
				return err
			}
		case browseFilter:
			if err := a.filter(ctx, v); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *App) sort(ctx context.Context, v *views.CollectionView) error {
	fields := []string{"id", "name", "producer", "vintage", "type"}
	f, err := a.driver.Select(ctx, SelectConfig{Message: "Sort by", Options: fields})
	if err != nil {
		return err
	}
	orders := []string{"asc", "desc"}
	o, err := a.driver.Select(ctx, SelectConfig{Message: "Order", Options: orders, DefaultIndex: 1})
	if err != nil {
		return err
	}
	v.SetSort(ctx, option(fields, f), option(orders, o))
	return nil
}

func (a *App) filter(ctx context.Context, v *views.CollectionView) error {
	types := append([]string{anyOption}, wine.SupportedTypes...)
	t, err := a.driver.Select(ctx, SelectConfig{Message: "Type", Options: types})
	if err != nil {
		return err
	}
	statuses := []string{anyOption, wine.StatusReadyToDrink, wine.StatusApproachingDeadline, wine.StatusNotReady}
	s, err := a.driver.Select(ctx, SelectConfig{Message: "Drinking window", Options: statuses})
	if err != nil {
		return err
	}
	v.SetFilters(ctx, views.Filters{Type: anyToEmpty(option(types, t)), DrinkingWindowStatus: anyToEmpty(option(statuses, s))})
	return nil
}

// ── Alta ──

func (a *App) addWine(ctx context.Context) error {
	f := form.NewWineForm(a.api, a.opts)
	d, p, g := f.Details, f.Pricing, f.Grapes

	if err := a.ask(ctx, "Name:", "", d.SetName, d.Errors, form.FieldName); err != nil {
		return err
	}
	t, err := a.driver.Select(ctx, SelectConfig{Message: "Type:", Options: wine.SupportedTypes})
	if err != nil {
		return err
	}
	d.SetType(option(wine.SupportedTypes, t))

	detailSteps := []struct {
		msg, field string
		set        func(string)
	}{
		{"Producer:", form.FieldProducer, d.SetProducer},
		{"Vintage (YYYY, optional):", form.FieldVintage, d.SetVintage},
		{"Country (optional):", form.FieldCountry, d.SetCountry},
		{"District (optional):", form.FieldDistrict, d.SetDistrict},
		{"Subdistrict (optional):", form.FieldSubdistrict, d.SetSubdistrict},
	}
	for _, s := range detailSteps {
		if err := a.ask(ctx, s.msg, "", s.set, d.Errors, s.field); err != nil {
			return err
		}
	}

	if err := a.ask(ctx, "Purchase price (optional):", "", p.SetPurchasePrice, p.Errors, form.FieldPurchasePrice); err != nil {
		return err
	}
	if err := a.ask(ctx, "Quantity (bottles, optional):", "", p.SetQuantity, p.Errors, form.FieldQuantity); err != nil {
		return err
	}

	if err := a.drinkingWindow(ctx, f); err != nil {
		return err
	}
	if err := a.grapes(ctx, g); err != nil {
		return err
	}

	save, err := a.driver.Confirm(ctx, ConfirmConfig{Message: "Save this wine?", Default: true})
	if err != nil || !save {
		return err
	}

	created := f.Submit(ctx)
	if created == nil {
		a.log.Warn().Str("error", f.Error()).Msg("alta rechazada")
		return a.driver.Info(ctx, "Error: "+f.Error()+formErrors(f))
	}
	if err := a.driver.Info(ctx, f.Success()); err != nil {
		return err
	}
	detail := views.NewDetailView(a.api, created.ID)
	detail.Load(ctx)
	return a.show(ctx, detail.Render)
}

func (a *App) drinkingWindow(ctx context.Context, f *form.WineForm) error {
	suggest, err := a.driver.Confirm(ctx, ConfirmConfig{Message: "Suggest a drinking window for this type and vintage?"})
	if err != nil {
		return err
	}
	if suggest {
		if msg := f.Suggest(ctx); msg != "" {
			if err := a.driver.Info(ctx, "Suggestion unavailable: "+msg); err != nil {
				return err
			}
		}
	}
	after, before := f.Window.Drafts()
	if err := a.ask(ctx, "Drink after (YYYY-MM-DD, optional):", after, f.Window.SetAfter, f.Window.Errors, form.FieldDrinkAfter); err != nil {
		return err
	}
	return a.ask(ctx, "Drink before (YYYY-MM-DD, optional):", before, f.Window.SetBefore, f.Window.Errors, form.FieldDrinkBefore)
}

func (a *App) grapes(ctx context.Context, g *form.GrapesInput) error {
	for {
		more, err := a.driver.Confirm(ctx, ConfirmConfig{Message: "Add a grape variety?"})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		row := g.AddRow()
		set := func(s string) { g.SetVariety(row, s) }
		if err := a.ask(ctx, "Grape variety:", "", set, g.Errors, form.GrapeField(row, "grape_variety")); err != nil {
			return err
		}
		set = func(s string) { g.SetPercentage(row, s) }
		if err := a.ask(ctx, "Percentage:", "", set, g.Errors, form.GrapeField(row, "percentage"), form.FieldGrapeTotal); err != nil {
			return err
		}
	}
	if g.Len() == 0 {
		return nil
	}
	return a.driver.Info(ctx, fmt.Sprintf("Grape total: %s%%", g.Total().String()))
}

// ask pregunta un campo; el validador aplica el texto a la sección y devuelve el error de fields.
func (a *App) ask(ctx context.Context, msg, def string, set func(string), errs func() form.Errors, fields ...string) error {
	validate := func(s string) error {
		set(s)
		e := errs()
		for _, f := range fields {
			if m := e.Get(f); m != "" {
				return errors.New(m)
			}
		}
		return nil
	}
	answer, err := a.driver.Input(ctx, InputConfig{Message: msg, Default: def, Validator: validate})
	if err != nil {
		return err
	}
	set(answer)
	return nil
}

func formErrors(f *form.WineForm) string {
	var all form.Errors
	all = append(all, f.Details.Errors()...)
	all = append(all, f.Pricing.Errors()...)
	all = append(all, f.Window.Errors()...)
	all = append(all, f.Grapes.Errors()...)
	if len(all) == 0 {
		if f.Grapes.Len() > 0 && !wine.TotalWithinTolerance(f.Grapes.Total()) {
			return "\n  - " + wine.MsgGrapeSum
		}
		return ""
	}
	var b strings.Builder
	for _, e := range all {
		fmt.Fprintf(&b, "\n  - %s", e.Message)
	}
	return b.String()
}

// ── Detalle e inventario ──

func (a *App) showWine(ctx context.Context) error {
	id, err := a.askID(ctx)
	if err != nil {
		return err
	}
	formats := []string{"Text", "YAML"}
	fm, err := a.driver.Select(ctx, SelectConfig{Message: "Format", Options: formats})
	if err != nil {
		return err
	}
	v := views.NewDetailView(a.api, id)
	v.Load(ctx)
	if option(formats, fm) == "YAML" {
		return a.show(ctx, v.RenderYAML)
	}
	return a.show(ctx, v.Render)
}

func (a *App) manageInventory(ctx context.Context) error {
	id, err := a.askID(ctx)
	if err != nil {
		return err
	}
	detail := views.NewDetailView(a.api, id)
	detail.Load(ctx)
	w := detail.Wine()
	if w == nil {
		return a.show(ctx, detail.Render)
	}

	v := views.NewInventoryView(a.api, id, w.Quantity)
	v.Load(ctx)
	menu := []string{inventoryAdjust, inventoryConsume, inventoryBack}
	for {
		if err := a.show(ctx, v.Render); err != nil {
			return err
		}
		choice, err := a.driver.Select(ctx, SelectConfig{Message: w.Name, Options: menu})
		if err != nil {
			return err
		}
		switch option(menu, choice) {
		case inventoryAdjust:
			qty, note, err := a.askCount(ctx, "New quantity:", "", 0)
			if err != nil {
				return err
			}
			if !v.Adjust(ctx, qty, note) {
				a.log.Warn().Str("wine_id", id).Str("error", v.ActionError()).Msg("ajuste rechazado")
			}
		case inventoryConsume:
			n, note, err := a.askCount(ctx, "Bottles to consume:", "1", 1)
			if err != nil {
				return err
			}
			if !v.Consume(ctx, n, note) {
				a.log.Warn().Str("wine_id", id).Str("error", v.ActionError()).Msg("consumo rechazado")
			}
		default:
			return nil
		}
	}
}

func (a *App) askID(ctx context.Context) (string, error) {
	id, err := a.driver.Input(ctx, InputConfig{
		Message: "Wine ID:",
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("Wine ID is required.")
			}
			return nil
		},
	})
	return strings.TrimSpace(id), err
}

// askCount pide un entero >= least y una nota opcional.
func (a *App) askCount(ctx context.Context, msg, def string, least int) (int, string, error) {
	var n int
	parse := func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < least {
			return fmt.Errorf("Enter a whole number of at least %d.", least)
		}
		n = v
		return nil
	}
	answer, err := a.driver.Input(ctx, InputConfig{Message: msg, Default: def, Validator: parse})
	if err != nil {
		return 0, "", err
	}
	if err := parse(answer); err != nil {
		return 0, "", err
	}
	note, err := a.driver.Input(ctx, InputConfig{Message: "Note (optional):"})
	if err != nil {
		return 0, "", err
	}
	return n, note, nil
}

// ── Helpers ──

func (a *App) show(ctx context.Context, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return a.driver.Info(ctx, strings.TrimRight(buf.String(), "\n"))
}

func option(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return ""
	}
	return options[i]
}

func anyToEmpty(s string) string {
	if s == anyOption {
		return ""
	}
	return s
}

func aborted(err error) error {
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}
