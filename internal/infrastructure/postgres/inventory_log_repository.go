package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo persistencia del log de inventario (solo inserción y lectura).
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create inserta una entrada.
func (r *InventoryLogRepo) Create(ctx context.Context, e *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_log (id, wine_id, type, change, quantity_after, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.ID, e.WineID, e.Type, e.Change, e.QuantityAfter, e.Note, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByWine lista las entradas de un vino, más recientes primero.
func (r *InventoryLogRepo) ListByWine(ctx context.Context, wineID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, wine_id, type, change, quantity_after, note, created_at
		FROM inventory_log WHERE wine_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, wineID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory log: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryLogEntry{}
	for rows.Next() {
		var e entity.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.WineID, &e.Type, &e.Change, &e.QuantityAfter, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
