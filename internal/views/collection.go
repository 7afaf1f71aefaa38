package views

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// Filters filtros exactos de la colección. Vacío = sin filtro.
type Filters struct {
	Type                 string
	Vintage              *int
	Country              string
	District             string
	Subdistrict          string
	DrinkingWindowStatus string
}

// CollectionView lista paginada con búsqueda, orden y filtros.
// Cada cambio de parámetros vuelve a pedir GET /api/wines/page.
type CollectionView struct {
	api *client.WinesAPI
	req *client.Request

	mu     sync.Mutex
	query  dto.WineListQuery
	page   *dto.WinePageResponse
	errMsg string
}

// NewCollectionView crea la vista con página 1, tamaño por defecto y orden id desc.
func NewCollectionView(api *client.WinesAPI) *CollectionView {
	return &CollectionView{
		api: api,
		req: api.Client().NewRequest(),
		query: dto.WineListQuery{
			SortBy:    "id",
			SortOrder: "desc",
			Page:      1,
			PageSize:  wine.DefaultPageSize,
		},
	}
}

// Request estado de la última carga.
func (v *CollectionView) Request() *client.Request { return v.req }

// Query parámetros actuales.
func (v *CollectionView) Query() dto.WineListQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Page última página cargada (nil si la última carga falló).
func (v *CollectionView) Page() *dto.WinePageResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Load pide la página con los parámetros actuales (montaje).
func (v *CollectionView) Load(ctx context.Context) {
	q := v.Query()
	page, msg := v.api.Page(ctx, v.req, q)
	v.mu.Lock()
	v.page, v.errMsg = page, msg
	v.mu.Unlock()
}

// SetSearchTerm cambia la búsqueda y vuelve a la página 1.
func (v *CollectionView) SetSearchTerm(ctx context.Context, term string) {
	v.change(ctx, func(q *dto.WineListQuery) {
		q.SearchTerm = term
		q.Page = 1
	})
}

// SetSort cambia campo y sentido de orden.
func (v *CollectionView) SetSort(ctx context.Context, field, order string) {
	v.change(ctx, func(q *dto.WineListQuery) {
		q.SortBy, q.SortOrder = field, order
	})
}

// SetPage cambia la página (mínimo 1).
func (v *CollectionView) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	v.change(ctx, func(q *dto.WineListQuery) { q.Page = page })
}

// NextPage avanza si hay más páginas.
func (v *CollectionView) NextPage(ctx context.Context) {
	p := v.Page()
	if p == nil || p.Page >= p.TotalPages {
		return
	}
	v.SetPage(ctx, p.Page+1)
}

// PrevPage retrocede una página.
func (v *CollectionView) PrevPage(ctx context.Context) {
	v.SetPage(ctx, v.Query().Page-1)
}

// SetFilters reemplaza los filtros y vuelve a la página 1.
func (v *CollectionView) SetFilters(ctx context.Context, f Filters) {
	v.change(ctx, func(q *dto.WineListQuery) {
		q.Type = f.Type
		q.Vintage = f.Vintage
		q.Country = f.Country
		q.District = f.District
		q.Subdistrict = f.Subdistrict
		q.DrinkingWindowStatus = f.DrinkingWindowStatus
		q.Page = 1
	})
}

// change aplica fn y recarga solo si los parámetros cambiaron.
func (v *CollectionView) change(ctx context.Context, fn func(*dto.WineListQuery)) {
	v.mu.Lock()
	before := v.query
	fn(&v.query)
	same := sameQuery(before, v.query)
	v.mu.Unlock()
	if !same {
		v.Load(ctx)
	}
}

func sameQuery(a, b dto.WineListQuery) bool {
	if (a.Vintage == nil) != (b.Vintage == nil) || (a.Vintage != nil && *a.Vintage != *b.Vintage) {
		return false
	}
	a.Vintage, b.Vintage = nil, nil
	return a == b
}

// Render escribe el estado actual: cargando, error, vacío o la tabla con el pie de paginación.
func (v *CollectionView) Render(w io.Writer) error {
	st := v.req.State()
	v.mu.Lock()
	page, errMsg := v.page, v.errMsg
	v.mu.Unlock()

	if done, err := state(w, st.Loading, errMsg); done {
		return err
	}
	if page == nil || len(page.Items) == 0 {
		_, err := fmt.Fprintln(w, MsgEmpty)
		return err
	}

	rows := make([][]string, 0, len(page.Items))
	for _, it := range page.Items {
		rows = append(rows, []string{
			it.ID, it.Name, str(it.Type), str(it.Producer), num(it.Vintage),
			str(it.Country), num(it.Quantity), statusOrMissing(it.DrinkingWindowStatus),
		})
	}
	if err := table(w, []string{"ID", "NAME", "TYPE", "PRODUCER", "VINTAGE", "COUNTRY", "QTY", "STATUS"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d (%d wines)\n", page.Page, max(page.TotalPages, 1), page.Total)
	return err
}

func statusOrMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}
