package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/vin/internal/application/dto"
)

// MsgInvalidResponse error cuando un 2xx trae un cuerpo que no corresponde al tipo esperado.
const MsgInvalidResponse = "Invalid response from server"

// WinesAPI helpers tipados sobre Request para cada endpoint de /api/wines.
// Cada método recibe el Request cuyo estado observa la vista y devuelve el DTO o el mensaje de error.
type WinesAPI struct {
	c *Client
}

// NewWinesAPI crea los helpers sobre c.
func NewWinesAPI(c *Client) *WinesAPI {
	return &WinesAPI{c: c}
}

// Client devuelve el cliente base.
func (a *WinesAPI) Client() *Client { return a.c }

// List GET /api/wines.
func (a *WinesAPI) List(ctx context.Context, req *Request, q dto.WineListQuery) ([]dto.WineResponse, string) {
	var out []dto.WineResponse
	msg := decodeInto(req.do(ctx, http.MethodGet, "/api/wines"+encodeQuery(ListQueryValues(q)), nil), &out)
	return out, msg
}

// Page GET /api/wines/page.
func (a *WinesAPI) Page(ctx context.Context, req *Request, q dto.WineListQuery) (*dto.WinePageResponse, string) {
	return decode[dto.WinePageResponse](req.do(ctx, http.MethodGet, "/api/wines/page"+encodeQuery(ListQueryValues(q)), nil))
}

// Create POST /api/wines.
func (a *WinesAPI) Create(ctx context.Context, req *Request, payload dto.CreateWineRequest) (*dto.WineResponse, string) {
	return decode[dto.WineResponse](req.do(ctx, http.MethodPost, "/api/wines", payload))
}

// Get GET /api/wines/{id}.
func (a *WinesAPI) Get(ctx context.Context, req *Request, id string) (*dto.WineResponse, string) {
	return decode[dto.WineResponse](req.do(ctx, http.MethodGet, winePath(id), nil))
}

// Update PATCH /api/wines/{id}.
func (a *WinesAPI) Update(ctx context.Context, req *Request, id string, payload dto.UpdateWineRequest) (*dto.WineResponse, string) {
	return decode[dto.WineResponse](req.do(ctx, http.MethodPatch, winePath(id), payload))
}

// AdjustQuantity PATCH /api/wines/{id}/quantity.
func (a *WinesAPI) AdjustQuantity(ctx context.Context, req *Request, id string, body dto.AdjustQuantityRequest) (*dto.InventoryChangeResponse, string) {
	return decode[dto.InventoryChangeResponse](req.do(ctx, http.MethodPatch, winePath(id)+"/quantity", body))
}

// Consume POST /api/wines/{id}/consume.
func (a *WinesAPI) Consume(ctx context.Context, req *Request, id string, body dto.ConsumeRequest) (*dto.InventoryChangeResponse, string) {
	return decode[dto.InventoryChangeResponse](req.do(ctx, http.MethodPost, winePath(id)+"/consume", body))
}

// InventoryLog GET /api/wines/{id}/inventory-log.
func (a *WinesAPI) InventoryLog(ctx context.Context, req *Request, id string, limit, offset int) (*dto.InventoryLogResponse, string) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	return decode[dto.InventoryLogResponse](req.do(ctx, http.MethodGet, winePath(id)+"/inventory-log"+encodeQuery(v), nil))
}

// Suggestion GET /api/wines/drinking-window-suggestions.
func (a *WinesAPI) Suggestion(ctx context.Context, req *Request, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, string) {
	v := url.Values{}
	v.Set("wine_type", wineType)
	v.Set("vintage", strconv.Itoa(vintage))
	return decode[dto.DrinkingWindowSuggestionResponse](req.do(ctx, http.MethodGet, "/api/wines/drinking-window-suggestions?"+v.Encode(), nil))
}

// ListQueryValues traduce los parámetros de colección a query string (vacíos se omiten).
func ListQueryValues(q dto.WineListQuery) url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("search_term", q.SearchTerm)
	set("type", q.Type)
	if q.Vintage != nil {
		v.Set("vintage", strconv.Itoa(*q.Vintage))
	}
	set("country", q.Country)
	set("district", q.District)
	set("subdistrict", q.Subdistrict)
	set("drinking_window_status", q.DrinkingWindowStatus)
	set("sort_by", q.SortBy)
	set("sort_order", q.SortOrder)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

func winePath(id string) string {
	return fmt.Sprintf("/api/wines/%s", url.PathEscape(id))
}

func encodeQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func decode[T any](s State) (*T, string) {
	var out T
	if msg := decodeInto(s, &out); msg != "" || s.Data == nil {
		return nil, msg
	}
	return &out, ""
}

func decodeInto(s State, v any) string {
	if s.Error != "" {
		return s.Error
	}
	if s.Data == nil {
		return ""
	}
	if err := json.Unmarshal(s.Data, v); err != nil {
		return MsgInvalidResponse
	}
	return ""
}
