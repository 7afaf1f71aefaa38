package entity

import "time"

// Tipos de entrada del log de inventario.
const (
	LogTypeInitial          = "initial"           // alta del vino con cantidad
	LogTypeManualAdjustment = "manual_adjustment" // PATCH /quantity
	LogTypeConsumption      = "consumption"       // POST /consume
	LogTypeUpdate           = "update"            // cambio de cantidad vía PATCH del vino
)

// InventoryLogEntry registro inmutable de un cambio de cantidad (solo inserción).
type InventoryLogEntry struct {
	ID            string
	WineID        string
	Type          string
	Change        int // positivo entrada, negativo salida
	QuantityAfter int
	Note          *string
	CreatedAt     time.Time
}
