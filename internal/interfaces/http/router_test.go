package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/inventory"
	"github.com/jhoicas/vin/internal/application/usecase"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/infrastructure/memory"
	"github.com/jhoicas/vin/internal/infrastructure/sanitize"
	apphttp "github.com/jhoicas/vin/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

type stubSuggester struct{ err error }

func (s stubSuggester) SuggestDrinkingWindow(ctx context.Context, wineType string, vintage int) (*dto.DrinkingWindowSuggestionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	after, _ := entity.ParseDate("2027-01-01")
	before, _ := entity.ParseDate("2035-01-01")
	return &dto.DrinkingWindowSuggestionResponse{DrinkAfterDate: after, DrinkBeforeDate: before}, nil
}

type stubPDF struct{}

func (stubPDF) GenerateCollectionReport(ctx context.Context, r dto.CollectionReport) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// buildTestApp construye la app con almacenamiento en memoria.
// suggester nil deja las sugerencias sin configurar.
func buildTestApp(suggester *stubSuggester) *fiber.App {
	store := memory.NewStore()
	clock := func() time.Time { return testNow }

	var sugUC *usecase.SuggestionUseCase
	if suggester != nil {
		sugUC = usecase.NewSuggestionUseCase(*suggester, nil, time.Hour, nil)
	} else {
		sugUC = usecase.NewSuggestionUseCase(nil, nil, time.Hour, nil)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		WineUC:       usecase.NewWineUseCase(store, store.Wines()).WithClock(clock),
		InventoryUC:  inventory.NewUseCase(store, store.Wines(), store.Logs(), sanitize.NoteSanitizer{}).WithClock(clock),
		SuggestionUC: sugUC,
		ReportUC:     usecase.NewReportUseCase(store.Wines(), stubPDF{}).WithClock(clock),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func createWine(t *testing.T, app *fiber.App, body string) dto.WineResponse {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/wines", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var w dto.WineResponse
	require.NoError(t, json.Unmarshal(raw, &w))
	return w
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RaizYHealth(t *testing.T) {
	app := buildTestApp(nil)

	resp, raw := doJSON(t, app, http.MethodGet, "/", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"VIN API","routes":["/api/wines"]}`, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestWines_CrearYObtener(t *testing.T) {
	app := buildTestApp(nil)
	w := createWine(t, app, `{
		"name": "Tignanello",
		"type": "red",
		"vintage": 2019,
		"purchase_price": "89.90",
		"quantity": 2,
		"drink_after_date": "2024-01-01",
		"drink_before_date": "2035-12-31",
		"grape_composition": [
			{"grape_variety": "Sangiovese", "percentage": 80},
			{"grape_variety": "Cabernet Sauvignon", "percentage": "20"}
		]
	}`)
	assert.Equal(t, "Red", *w.Type)
	assert.Equal(t, "ready_to_drink", w.DrinkingWindowStatus)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/wines/"+w.ID, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Tignanello", got["name"])
	assert.Equal(t, "2035-12-31", got["drink_before_date"])
	assert.Nil(t, got["producer"])
	assert.Len(t, got["grape_composition"], 2)
}

func TestWines_CrearInvalidoDevuelve400(t *testing.T) {
	app := buildTestApp(nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/wines", `{"name":"X","drink_after_date":"2030-01-01","drink_before_date":"2029-01-01"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "drink_before_date must be later than drink_after_date")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/wines", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWines_NoEncontrado(t *testing.T) {
	app := buildTestApp(nil)
	resp, raw := doJSON(t, app, http.MethodGet, "/api/wines/7f1d2c3b-0000-4000-8000-000000000001", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

func TestWines_PaginaYOrden(t *testing.T) {
	app := buildTestApp(nil)
	for _, n := range []string{"Cava", "Albariño", "Barolo"} {
		createWine(t, app, `{"name":"`+n+`"}`)
	}

	resp, raw := doJSON(t, app, http.MethodGet, "/api/wines/page?sort_by=name&sort_order=asc&page=1&page_size=2", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page dto.WinePageResponse
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Albariño", page.Items[0].Name)
	assert.Equal(t, "Barolo", page.Items[1].Name)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/wines?sort_by=price", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, raw).Message, "Invalid sort_by field")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/wines?vintage=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWines_PatchParcial(t *testing.T) {
	app := buildTestApp(nil)
	w := createWine(t, app, `{"name":"Riesling","quantity":1}`)

	resp, raw := doJSON(t, app, http.MethodPatch, "/api/wines/"+w.ID, `{"producer":"Dönnhoff","quantity":4}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var got dto.WineResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Riesling", got.Name)
	assert.Equal(t, "Dönnhoff", *got.Producer)
	assert.Equal(t, 4, *got.Quantity)
}

func TestInventario_ConsumoYLog(t *testing.T) {
	app := buildTestApp(nil)
	w := createWine(t, app, `{"name":"Priorat","quantity":2}`)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/wines/"+w.ID+"/consume", `{"note":"<i>balsamic</i> finish"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var change dto.InventoryChangeResponse
	require.NoError(t, json.Unmarshal(raw, &change))
	assert.Equal(t, 1, *change.Wine.Quantity)
	require.NotNil(t, change.Entry)
	assert.Equal(t, "balsamic finish", *change.Entry.Note)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/wines/"+w.ID+"/consume", `{"quantity":5}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_QUANTITY", decodeError(t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/wines/"+w.ID+"/consume", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodPatch, "/api/wines/"+w.ID+"/quantity", `{"quantity":6,"note":"restock"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/wines/"+w.ID+"/inventory-log", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var log dto.InventoryLogResponse
	require.NoError(t, json.Unmarshal(raw, &log))
	require.Len(t, log.Entries, 4)
	types := make([]string, 0, len(log.Entries))
	for _, e := range log.Entries {
		types = append(types, e.Type)
	}
	assert.ElementsMatch(t, []string{"initial", "consumption", "consumption", "manual_adjustment"}, types)
}

func TestSugerencias(t *testing.T) {
	resp, raw := doJSON(t, buildTestApp(nil), http.MethodGet, "/api/wines/drinking-window-suggestions?wine_type=Red&vintage=2018", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "NOT_CONFIGURED", decodeError(t, raw).Code)

	app := buildTestApp(&stubSuggester{})
	resp, raw = doJSON(t, app, http.MethodGet, "/api/wines/drinking-window-suggestions?wine_type=sparkling&vintage=2018", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"drink_after_date":"2027-01-01","drink_before_date":"2035-01-01"}`, string(raw))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/wines/drinking-window-suggestions?wine_type=Sparkling", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	failing := buildTestApp(&stubSuggester{err: &domain.ExternalAPIError{Message: "External wine API unavailable"}})
	resp, raw = doJSON(t, failing, http.MethodGet, "/api/wines/drinking-window-suggestions?wine_type=Red&vintage=2018", "")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "External wine API unavailable", decodeError(t, raw).Message)
}

func TestReportePDF(t *testing.T) {
	app := buildTestApp(nil)
	createWine(t, app, `{"name":"Rioja"}`)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/wines/report.pdf?sort_by=name", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}
