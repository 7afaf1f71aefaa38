package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/usecase"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/wine"
	"github.com/jhoicas/vin/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func datePtr(t *testing.T, s string) *entity.Date {
	t.Helper()
	d, err := entity.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func newWineUseCase() (*usecase.WineUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewWineUseCase(store, store.Wines()).WithClock(clock), store
}

func TestWineUseCase_CreateRegistraCantidadInicial(t *testing.T) {
	uc, store := newWineUseCase()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateWineRequest{
		Name:     "  Château Margaux ",
		Type:     strPtr("rose"),
		Quantity: intPtr(6),
		GrapeComposition: []dto.GrapeCompositionRequest{
			{GrapeVariety: "Cabernet Sauvignon", Percentage: decimal.RequireFromString("87.5")},
			{GrapeVariety: "Merlot", Percentage: decimal.RequireFromString("12.5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Château Margaux", out.Name)
	require.NotNil(t, out.Type)
	assert.Equal(t, wine.TypeRose, *out.Type)
	assert.Len(t, out.GrapeComposition, 2)

	entries, err := store.Logs().ListByWine(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LogTypeInitial, entries[0].Type)
	assert.Equal(t, 6, entries[0].Change)
	assert.Equal(t, 6, entries[0].QuantityAfter)
}

func TestWineUseCase_CreateSinCantidadNoRegistraLog(t *testing.T) {
	uc, store := newWineUseCase()
	out, err := uc.Create(context.Background(), dto.CreateWineRequest{Name: "Sin botellas"})
	require.NoError(t, err)

	entries, err := store.Logs().ListByWine(context.Background(), out.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWineUseCase_CreateRechazaFechasInvertidas(t *testing.T) {
	uc, _ := newWineUseCase()
	_, err := uc.Create(context.Background(), dto.CreateWineRequest{
		Name:            "Rioja",
		DrinkAfterDate:  datePtr(t, "2030-01-01"),
		DrinkBeforeDate: datePtr(t, "2030-01-01"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), wine.MsgDrinkDateOrder)
}

func TestWineUseCase_CreateAceptaTipoLibre(t *testing.T) {
	uc, _ := newWineUseCase()
	ctx := context.Background()

	for _, typ := range []string{"Orange", "Red blend", "Tinto"} {
		out, err := uc.Create(ctx, dto.CreateWineRequest{Name: "X", Type: strPtr("  " + typ + " ")})
		require.NoError(t, err, typ)
		require.NotNil(t, out.Type)
		assert.Equal(t, typ, *out.Type)
	}

	out, err := uc.Create(ctx, dto.CreateWineRequest{Name: "X", Type: strPtr("SPARKLING")})
	require.NoError(t, err)
	assert.Equal(t, wine.TypeSparkling, *out.Type)
}

func TestWineUseCase_TipoDemasiadoLargo(t *testing.T) {
	uc, _ := newWineUseCase()
	long := strings.Repeat("a", wine.MaxShortTextLen+1)
	_, err := uc.Create(context.Background(), dto.CreateWineRequest{Name: "X", Type: &long})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWineUseCase_UpdateAceptaTipoLibre(t *testing.T) {
	uc, _ := newWineUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateWineRequest{Name: "X", Type: strPtr("red")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateWineRequest{Type: strPtr("Orange")})
	require.NoError(t, err)
	assert.Equal(t, "Orange", *out.Type)
}

func TestWineUseCase_GetByIDNoExiste(t *testing.T) {
	uc, _ := newWineUseCase()
	_, err := uc.GetByID(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(context.Background(), "0b7e6c1e-9a53-4a7d-8f1f-3c2d1f0e9a11")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWineUseCase_UpdateValidaContraValoresGuardados(t *testing.T) {
	uc, _ := newWineUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateWineRequest{
		Name:            "Brunello",
		DrinkAfterDate:  datePtr(t, "2026-01-01"),
		DrinkBeforeDate: datePtr(t, "2030-01-01"),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateWineRequest{DrinkAfterDate: datePtr(t, "2031-01-01")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), wine.MsgDrinkDateOrder)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", got.DrinkAfterDate.String())
}

func TestWineUseCase_UpdateCantidadRegistraLog(t *testing.T) {
	uc, store := newWineUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateWineRequest{Name: "Sancerre", Quantity: intPtr(2)})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateWineRequest{Quantity: intPtr(5), Producer: strPtr("Vacheron")})
	require.NoError(t, err)
	assert.Equal(t, 5, *out.Quantity)
	assert.Equal(t, "Vacheron", *out.Producer)

	entries, err := store.Logs().ListByWine(ctx, created.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	types := []string{entries[0].Type, entries[1].Type}
	assert.ElementsMatch(t, []string{entity.LogTypeInitial, entity.LogTypeUpdate}, types)
}

func TestWineUseCase_UpdateReemplazaComposicion(t *testing.T) {
	uc, _ := newWineUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateWineRequest{
		Name:             "Blend",
		GrapeComposition: []dto.GrapeCompositionRequest{{GrapeVariety: "Syrah", Percentage: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	empty := []dto.GrapeCompositionRequest{}
	out, err := uc.Update(ctx, created.ID, dto.UpdateWineRequest{GrapeComposition: &empty})
	require.NoError(t, err)
	assert.Empty(t, out.GrapeComposition)
}

func TestWineUseCase_PageYFiltros(t *testing.T) {
	uc, _ := newWineUseCase()
	ctx := context.Background()
	for _, n := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := uc.Create(ctx, dto.CreateWineRequest{Name: n, Type: strPtr("red")})
		require.NoError(t, err)
	}

	page, err := uc.Page(ctx, dto.WineListQuery{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 2, Type: "RED"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha", page.Items[0].Name)

	list, err := uc.List(ctx, dto.WineListQuery{SearchTerm: "amm"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gamma", list[0].Name)
}

func TestWineUseCase_ListParametrosInvalidos(t *testing.T) {
	uc, _ := newWineUseCase()
	_, err := uc.List(context.Background(), dto.WineListQuery{SortBy: "price", DrinkingWindowStatus: "someday"})
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 2)
}
