// Package winesapi adaptador HTTP de la API externa de sugerencias de ventana de consumo.
package winesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa DrinkingWindowSuggester.
var _ ports.DrinkingWindowSuggester = (*Client)(nil)

const suggestionPath = "/suggestions/drinking-window"

// Client llama a GET {base}/suggestions/drinking-window con clave Bearer.
// Un limitador local evita superar la cuota por minuto de la API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New construye el adaptador. Con BaseURL o APIKey vacíos las llamadas devuelven domain.ErrNotConfigured.
func New(cfg config.WineAPIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	burst := rpm
	if burst > 5 {
		burst = 5
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), burst),
	}
}

type suggestionBody struct {
	DrinkAfterDate  string `json:"drink_after_date"`
	DrinkBeforeDate string `json:"drink_before_date"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func apiError(msg string) error {
	return &domain.ExternalAPIError{Message: msg}
}

// SuggestDrinkingWindow implementa ports.DrinkingWindowSuggester.
func (c *Client) SuggestDrinkingWindow(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, domain.ErrNotConfigured
	}
	// Sin espera: el contexto de la petición HTTP no tiene deadline.
	if !c.limiter.Allow() {
		return nil, apiError("External wine API rate limit exceeded")
	}

	q := url.Values{}
	q.Set("wine_type", wineType)
	q.Set("vintage", strconv.Itoa(vintage))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+suggestionPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("wines api: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, apiError("External wine API timed out")
		}
		return nil, apiError("External wine API error: " + err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, apiError("External wine API error: " + err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apiError("External wine API rate limit exceeded")
	case resp.StatusCode >= 500:
		return nil, apiError("External wine API unavailable")
	case resp.StatusCode >= 400:
		var body errorBody
		if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
			return nil, apiError(body.Detail)
		}
		return nil, apiError(fmt.Sprintf("External wine API request failed (%d)", resp.StatusCode))
	}

	var body suggestionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apiError("Invalid response from external wine API")
	}
	after, errA := entity.ParseDate(body.DrinkAfterDate)
	before, errB := entity.ParseDate(body.DrinkBeforeDate)
	if errA != nil || errB != nil {
		return nil, apiError("Invalid response from external wine API")
	}
	if !after.Before(before) {
		return nil, apiError("External API returned invalid drinking window range")
	}
	return &dto.DrinkingWindowSuggestionResponse{DrinkAfterDate: after, DrinkBeforeDate: before}, nil
}
