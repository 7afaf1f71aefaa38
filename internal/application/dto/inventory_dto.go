package dto

import "time"

// AdjustQuantityRequest body de PATCH /api/wines/{id}/quantity (cantidad absoluta).
type AdjustQuantityRequest struct {
	Quantity *int    `json:"quantity"`
	Note     *string `json:"note,omitempty"`
}

// ConsumeRequest body de POST /api/wines/{id}/consume. Quantity por defecto 1.
type ConsumeRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Note     *string `json:"note,omitempty"` // nota de cata opcional
}

// InventoryLogEntryResponse entrada del log de inventario.
type InventoryLogEntryResponse struct {
	ID            string    `json:"id"`
	WineID        string    `json:"wine_id"`
	Type          string    `json:"type"`
	Change        int       `json:"change"`
	QuantityAfter int       `json:"quantity_after"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}

// InventoryChangeResponse resultado de un ajuste o consumo: vino actualizado y entrada creada.
// Entry es nil cuando el ajuste no cambió la cantidad.
type InventoryChangeResponse struct {
	Wine  WineResponse               `json:"wine"`
	Entry *InventoryLogEntryResponse `json:"entry,omitempty"`
}

// InventoryLogResponse lista de entradas (más recientes primero).
type InventoryLogResponse struct {
	WineID  string                      `json:"wine_id"`
	Entries []InventoryLogEntryResponse `json:"entries"`
}
