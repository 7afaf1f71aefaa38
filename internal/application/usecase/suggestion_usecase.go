package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/wine"
	"github.com/jhoicas/vin/pkg/logger"
)

// SuggestionUseCase sugerencias de ventana de consumo vía API externa, con caché opcional.
type SuggestionUseCase struct {
	suggester ports.DrinkingWindowSuggester
	cache     ports.SuggestionCache
	ttl       time.Duration
	log       *logger.Logger
}

// NewSuggestionUseCase construye el caso de uso. suggester nil = no configurado (503);
// cache nil = sin caché.
func NewSuggestionUseCase(suggester ports.DrinkingWindowSuggester, cache ports.SuggestionCache, ttl time.Duration, log *logger.Logger) *SuggestionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SuggestionUseCase{suggester: suggester, cache: cache, ttl: ttl, log: log}
}

// Suggest valida tipo y añada, consulta la caché y luego la API externa.
func (uc *SuggestionUseCase) Suggest(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error) {
	var msgs []string
	typ, ok := wine.NormalizeType(strings.TrimSpace(wineType))
	if !ok {
		msgs = append(msgs, "wine_type must be one of: "+strings.Join(wine.SupportedTypes, ", "))
	}
	if vintage < wine.MinVintage || vintage > wine.MaxVintage {
		msgs = append(msgs, fmt.Sprintf("vintage must be between %d and %d", wine.MinVintage, wine.MaxVintage))
	}
	if len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs...)
	}
	if uc.suggester == nil {
		return nil, domain.ErrNotConfigured
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, typ, vintage)
		if err != nil {
			uc.log.Warn().Err(err).Str("wine_type", typ).Int("vintage", vintage).Msg("suggestion cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	s, err := uc.suggester.SuggestDrinkingWindow(ctx, typ, vintage)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, typ, vintage, s, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("wine_type", typ).Int("vintage", vintage).Msg("suggestion cache write failed")
		}
	}
	return s, nil
}
