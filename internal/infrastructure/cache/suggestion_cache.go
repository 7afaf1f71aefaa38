// Package cache caché Redis de sugerencias de ventana de consumo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
)

var _ ports.SuggestionCache = (*SuggestionCache)(nil)

const suggestionKeyPrefix = "vin:suggestion:"

// SuggestionCache guarda sugerencias como JSON bajo vin:suggestion:<tipo>:<añada>.
type SuggestionCache struct {
	client *redis.Client
}

// NewSuggestionCache construye el adaptador.
func NewSuggestionCache(client *redis.Client) *SuggestionCache {
	return &SuggestionCache{client: client}
}

func suggestionKey(wineType string, vintage int) string {
	return fmt.Sprintf("%s%s:%d", suggestionKeyPrefix, wineType, vintage)
}

// Get devuelve (nil, nil) si no hay entrada.
func (c *SuggestionCache) Get(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error) {
	raw, err := c.client.Get(ctx, suggestionKey(wineType, vintage)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get suggestion: %w", err)
	}
	var s dto.DrinkingWindowSuggestionResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode cached suggestion: %w", err)
	}
	return &s, nil
}

// Set guarda la sugerencia con TTL.
func (c *SuggestionCache) Set(ctx context.Context, wineType string, vintage int, s *dto.DrinkingWindowSuggestionResponse, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode suggestion: %w", err)
	}
	return c.client.Set(ctx, suggestionKey(wineType, vintage), raw, ttl).Err()
}
