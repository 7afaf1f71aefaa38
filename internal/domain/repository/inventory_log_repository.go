package repository

import (
	"context"

	"github.com/jhoicas/vin/internal/domain/entity"
)

// InventoryLogRepository puerto de persistencia del log de inventario (solo inserción y lectura).
type InventoryLogRepository interface {
	Create(ctx context.Context, entry *entity.InventoryLogEntry) error
	ListByWine(ctx context.Context, wineID string, limit, offset int) ([]*entity.InventoryLogEntry, error)
}
