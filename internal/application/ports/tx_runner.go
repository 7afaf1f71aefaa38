package ports

import (
	"context"

	"github.com/jhoicas/vin/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		wineRepo repository.WineRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}
