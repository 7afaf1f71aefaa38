package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
	"github.com/jhoicas/vin/internal/domain/wine"
	"github.com/jhoicas/vin/internal/infrastructure/postgres"
	"github.com/jhoicas/vin/pkg/config"
)

// testPool conecta a DATABASE_URL; sin esa variable el test se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido; se omiten tests de integración")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func TestWineRepo_CicloCompleto(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewWineRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	qty := 4
	price := decimal.RequireFromString("42.50")
	producer := "Integration " + uuid.NewString()
	after, _ := entity.ParseDate("2024-01-01")
	before, _ := entity.ParseDate("2030-12-31")
	w := &entity.Wine{
		ID: uuid.NewString(), Name: "Test Barolo", Producer: &producer, Quantity: &qty, PurchasePrice: &price,
		DrinkAfterDate: &after, DrinkBeforeDate: &before, CreatedAt: now, UpdatedAt: now,
	}
	w.GrapeComposition = []entity.GrapeComposition{
		{ID: uuid.NewString(), WineID: w.ID, GrapeVariety: "Nebbiolo", Percentage: decimal.NewFromInt(100)},
	}

	runner := postgres.NewTxRunner(pool)
	err := runner.Run(ctx, func(wr repository.WineRepository, lr repository.InventoryLogRepository) error {
		if err := wr.Create(ctx, w); err != nil {
			return err
		}
		return lr.Create(ctx, &entity.InventoryLogEntry{
			ID: uuid.NewString(), WineID: w.ID, Type: entity.LogTypeInitial, Change: 4, QuantityAfter: 4, CreatedAt: now,
		})
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, price.Equal(*got.PurchasePrice))
	assert.Equal(t, "2030-12-31", got.DrinkBeforeDate.String())
	require.Len(t, got.GrapeComposition, 1)
	assert.Equal(t, "Nebbiolo", got.GrapeComposition[0].GrapeVariety)

	list, total, err := repo.Page(ctx, wine.ListFilter{SearchTerm: producer}, wine.Sort{Field: "name"}, wine.NewPage(1, 10), entity.Today(now))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)

	require.NoError(t, repo.UpdateQuantity(ctx, w.ID, 1))
	got, err = repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *got.Quantity)

	entries, err := postgres.NewInventoryLogRepository(pool).ListByWine(ctx, w.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = pool.Exec(ctx, `DELETE FROM wines WHERE id = $1`, w.ID)
	require.NoError(t, err)
}

func TestWineRepo_GetByIDInexistente(t *testing.T) {
	pool := testPool(t)
	got, err := postgres.NewWineRepository(pool).GetByID(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}
