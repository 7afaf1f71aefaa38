package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain/entity"
)

// GrapeCompositionRequest fila de composición de uvas en altas y actualizaciones.
type GrapeCompositionRequest struct {
	GrapeVariety string          `json:"grape_variety"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// CreateWineRequest body de POST /api/wines. Los miembros nil se omiten del JSON.
type CreateWineRequest struct {
	Name             string                    `json:"name"`
	Type             *string                   `json:"type,omitempty"`
	Producer         *string                   `json:"producer,omitempty"`
	Vintage          *int                      `json:"vintage,omitempty"`
	Country          *string                   `json:"country,omitempty"`
	District         *string                   `json:"district,omitempty"`
	Subdistrict      *string                   `json:"subdistrict,omitempty"`
	PurchasePrice    *decimal.Decimal          `json:"purchase_price,omitempty"`
	Quantity         *int                      `json:"quantity,omitempty"`
	DrinkAfterDate   *entity.Date              `json:"drink_after_date,omitempty"`
	DrinkBeforeDate  *entity.Date              `json:"drink_before_date,omitempty"`
	GrapeComposition []GrapeCompositionRequest `json:"grape_composition,omitempty"`
}

// UpdateWineRequest body de PATCH /api/wines/{id}. Solo se aplican los campos presentes;
// GrapeComposition presente (aunque vacía) reemplaza la composición completa.
type UpdateWineRequest struct {
	Name             *string                    `json:"name,omitempty"`
	Type             *string                    `json:"type,omitempty"`
	Producer         *string                    `json:"producer,omitempty"`
	Vintage          *int                       `json:"vintage,omitempty"`
	Country          *string                    `json:"country,omitempty"`
	District         *string                    `json:"district,omitempty"`
	Subdistrict      *string                    `json:"subdistrict,omitempty"`
	PurchasePrice    *decimal.Decimal           `json:"purchase_price,omitempty"`
	Quantity         *int                       `json:"quantity,omitempty"`
	DrinkAfterDate   *entity.Date               `json:"drink_after_date,omitempty"`
	DrinkBeforeDate  *entity.Date               `json:"drink_before_date,omitempty"`
	GrapeComposition *[]GrapeCompositionRequest `json:"grape_composition,omitempty"`
}

// GrapeCompositionResponse fila de composición en respuestas.
type GrapeCompositionResponse struct {
	ID           string          `json:"id"`
	GrapeVariety string          `json:"grape_variety"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// WineResponse salida de un vino.
type WineResponse struct {
	ID                   string                     `json:"id"`
	Name                 string                     `json:"name"`
	Type                 *string                    `json:"type"`
	Producer             *string                    `json:"producer"`
	Vintage              *int                       `json:"vintage"`
	Country              *string                    `json:"country"`
	District             *string                    `json:"district"`
	Subdistrict          *string                    `json:"subdistrict"`
	PurchasePrice        *decimal.Decimal           `json:"purchase_price"`
	Quantity             *int                       `json:"quantity"`
	DrinkAfterDate       *entity.Date               `json:"drink_after_date"`
	DrinkBeforeDate      *entity.Date               `json:"drink_before_date"`
	GrapeComposition     []GrapeCompositionResponse `json:"grape_composition"`
	DrinkingWindowStatus string                     `json:"drinking_window_status,omitempty"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// WineListQuery parámetros de GET /api/wines y GET /api/wines/page.
type WineListQuery struct {
	SearchTerm           string
	Type                 string
	Vintage              *int
	Country              string
	District             string
	Subdistrict          string
	DrinkingWindowStatus string
	SortBy               string
	SortOrder            string
	Page                 int
	PageSize             int
}

// WinePageResponse sobre paginado de la colección.
type WinePageResponse struct {
	Items      []WineResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// DrinkingWindowSuggestionResponse ventana de consumo sugerida por la API externa.
type DrinkingWindowSuggestionResponse struct {
	DrinkAfterDate  entity.Date `json:"drink_after_date"`
	DrinkBeforeDate entity.Date `json:"drink_before_date"`
}
