package wine_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/wine"
)

func grapes(pcts ...string) []entity.GrapeComposition {
	out := make([]entity.GrapeComposition, 0, len(pcts))
	for i, p := range pcts {
		out = append(out, entity.GrapeComposition{
			GrapeVariety: "Variety",
			Percentage:   decimal.RequireFromString(p),
			Position:     i,
		})
	}
	return out
}

func mustDate(t *testing.T, s string) *entity.Date {
	t.Helper()
	d, err := entity.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestValidate_VinoMinimoValido(t *testing.T) {
	assert.NoError(t, wine.Validate(&entity.Wine{Name: "Barolo"}))
}

func TestValidate_NombreRequerido(t *testing.T) {
	err := wine.Validate(&entity.Wine{Name: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidate_FechasFueraDeOrden(t *testing.T) {
	w := &entity.Wine{
		Name:            "Rioja",
		DrinkAfterDate:  mustDate(t, "2030-01-01"),
		DrinkBeforeDate: mustDate(t, "2030-01-01"),
	}
	err := wine.Validate(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), wine.MsgDrinkDateOrder)
}

func TestValidate_SumaDeUvas(t *testing.T) {
	cases := []struct {
		name  string
		pcts  []string
		valid bool
	}{
		{"exacto", []string{"60", "40"}, true},
		{"dentro_tolerancia_inferior", []string{"60", "39.5"}, true},
		{"dentro_tolerancia_superior", []string{"60.5", "40"}, true},
		{"fuera_inferior", []string{"59.4", "40"}, false},
		{"fuera_superior", []string{"70", "40"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := wine.Validate(&entity.Wine{Name: "Blend", GrapeComposition: grapes(tc.pcts...)})
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), wine.MsgGrapeSum)
		})
	}
}

func TestValidate_LimitesNumericos(t *testing.T) {
	vintage := 1799
	qty := -1
	price := decimal.RequireFromString("-0.01")
	err := wine.Validate(&entity.Wine{Name: "X", Vintage: &vintage, Quantity: &qty, PurchasePrice: &price})
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 3)
}

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, 0, wine.DecimalPlaces(decimal.RequireFromString("12")))
	assert.Equal(t, 1, wine.DecimalPlaces(decimal.RequireFromString("12.5")))
	assert.Equal(t, 2, wine.DecimalPlaces(decimal.RequireFromString("12.50")))
}

// Para todo conjunto de porcentajes con un decimal, la validación acepta si y solo si
// el total está a no más de 0.5 de 100.
func TestValidate_PropiedadTolerancia(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tenths := rapid.SliceOfN(rapid.IntRange(0, 1000), 1, 6).Draw(t, "tenths")
		rows := make([]entity.GrapeComposition, 0, len(tenths))
		total := 0
		for _, v := range tenths {
			total += v
			rows = append(rows, entity.GrapeComposition{GrapeVariety: "G", Percentage: decimal.New(int64(v), -1)})
		}
		err := wine.Validate(&entity.Wine{Name: "W", GrapeComposition: rows})
		within := total >= 995 && total <= 1005
		if within && err != nil {
			t.Fatalf("total %d décimas debería ser válido: %v", total, err)
		}
		if !within && err == nil {
			t.Fatalf("total %d décimas debería ser rechazado", total)
		}
	})
}
