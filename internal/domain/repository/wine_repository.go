package repository

import (
	"context"

	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// WineRepository define el puerto de persistencia para Wine y su composición de uvas.
// GetByID y GetForUpdate devuelven (nil, nil) si el vino no existe.
type WineRepository interface {
	Create(ctx context.Context, w *entity.Wine) error
	GetByID(ctx context.Context, id string) (*entity.Wine, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Wine, error)
	Update(ctx context.Context, w *entity.Wine) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, filter wine.ListFilter, sort wine.Sort, today entity.Date) ([]*entity.Wine, error)
	Page(ctx context.Context, filter wine.ListFilter, sort wine.Sort, page wine.Page, today entity.Date) ([]*entity.Wine, int, error)
}
