package ports

import (
	"context"
	"time"

	"github.com/jhoicas/vin/internal/application/dto"
)

// DrinkingWindowSuggester puerto de salida hacia la API externa de sugerencias.
// Los errores de la API se devuelven como *domain.ExternalAPIError; sin configuración, domain.ErrNotConfigured.
type DrinkingWindowSuggester interface {
	SuggestDrinkingWindow(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error)
}

// SuggestionCache caché opcional de sugerencias por (tipo, añada).
// Get devuelve (nil, nil) cuando no hay entrada.
type SuggestionCache interface {
	Get(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error)
	Set(ctx context.Context, wineType string, vintage int, s *dto.DrinkingWindowSuggestionResponse, ttl time.Duration) error
}
