package dto

import (
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// NewWineResponse convierte la entidad en su salida HTTP; today se usa para drinking_window_status.
func NewWineResponse(w *entity.Wine, today entity.Date) WineResponse {
	grapes := make([]GrapeCompositionResponse, 0, len(w.GrapeComposition))
	for _, gc := range w.GrapeComposition {
		grapes = append(grapes, GrapeCompositionResponse{
			ID:           gc.ID,
			GrapeVariety: gc.GrapeVariety,
			Percentage:   gc.Percentage,
		})
	}
	return WineResponse{
		ID:                   w.ID,
		Name:                 w.Name,
		Type:                 w.Type,
		Producer:             w.Producer,
		Vintage:              w.Vintage,
		Country:              w.Country,
		District:             w.District,
		Subdistrict:          w.Subdistrict,
		PurchasePrice:        w.PurchasePrice,
		Quantity:             w.Quantity,
		DrinkAfterDate:       w.DrinkAfterDate,
		DrinkBeforeDate:      w.DrinkBeforeDate,
		GrapeComposition:     grapes,
		DrinkingWindowStatus: wine.StatusOf(w, today),
		CreatedAt:            w.CreatedAt,
		UpdatedAt:            w.UpdatedAt,
	}
}

// NewWineResponses convierte una lista.
func NewWineResponses(list []*entity.Wine, today entity.Date) []WineResponse {
	out := make([]WineResponse, 0, len(list))
	for _, w := range list {
		out = append(out, NewWineResponse(w, today))
	}
	return out
}

// NewInventoryLogEntryResponse convierte una entrada del log.
func NewInventoryLogEntryResponse(e *entity.InventoryLogEntry) InventoryLogEntryResponse {
	return InventoryLogEntryResponse{
		ID:            e.ID,
		WineID:        e.WineID,
		Type:          e.Type,
		Change:        e.Change,
		QuantityAfter: e.QuantityAfter,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
	}
}
