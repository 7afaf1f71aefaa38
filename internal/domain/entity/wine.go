package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wine representa un vino de la colección (una referencia con su existencia en botellas).
// Quantity solo cambia vía ajustes de inventario, consumo o PATCH, y cada cambio deja un InventoryLogEntry.
type Wine struct {
	ID               string
	Name             string
	Type             *string
	Producer         *string
	Vintage          *int
	Country          *string
	District         *string
	Subdistrict      *string
	PurchasePrice    *decimal.Decimal // 2 decimales
	Quantity         *int
	DrinkAfterDate   *Date
	DrinkBeforeDate  *Date
	GrapeComposition []GrapeComposition // ordenada por Position
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CurrentQuantity devuelve la cantidad o 0 si no está definida.
func (w *Wine) CurrentQuantity() int {
	if w == nil || w.Quantity == nil {
		return 0
	}
	return *w.Quantity
}
