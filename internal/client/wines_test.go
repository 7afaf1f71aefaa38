package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
)

func TestListQueryValues_OmiteVacios(t *testing.T) {
	vintage := 2015
	v := client.ListQueryValues(dto.WineListQuery{
		SearchTerm: "rioja",
		Vintage:    &vintage,
		SortBy:     "name",
		SortOrder:  "asc",
		Page:       2,
	})

	assert.Equal(t, "page=2&search_term=rioja&sort_by=name&sort_order=asc&vintage=2015", v.Encode())
}

func TestWinesAPI_Page(t *testing.T) {
	var gotURL string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte(`{"items":[{"id":"a","name":"Tondonia","grape_composition":[]}],"total":1,"page":1,"page_size":20,"total_pages":1}`))
	})
	api := client.NewWinesAPI(c)

	page, msg := api.Page(context.Background(), c.NewRequest(), dto.WineListQuery{Type: "Red", Page: 1, PageSize: 20})

	require.Empty(t, msg)
	require.NotNil(t, page)
	assert.Equal(t, "/api/wines/page?page=1&page_size=20&type=Red", gotURL)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tondonia", page.Items[0].Name)
	assert.Equal(t, 1, page.TotalPages)
}

func TestWinesAPI_CreateEnviaPayload(t *testing.T) {
	var got map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"n1","name":"Viña"}`))
	})
	api := client.NewWinesAPI(c)
	qty := 6

	wine, msg := api.Create(context.Background(), c.NewRequest(), dto.CreateWineRequest{Name: "Viña", Quantity: &qty})

	require.Empty(t, msg)
	assert.Equal(t, "n1", wine.ID)
	assert.Equal(t, map[string]any{"name": "Viña", "quantity": float64(6)}, got)
}

func TestWinesAPI_ConsumeError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wines/w%201/consume", r.URL.EscapedPath())
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"INSUFFICIENT_QUANTITY","message":"Not enough bottles in stock"}`))
	})
	api := client.NewWinesAPI(c)

	res, msg := api.Consume(context.Background(), c.NewRequest(), "w 1", dto.ConsumeRequest{})

	assert.Nil(t, res)
	assert.Equal(t, "Not enough bottles in stock", msg)
}

func TestWinesAPI_RespuestaConTipoInvalido(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})
	api := client.NewWinesAPI(c)

	res, msg := api.Get(context.Background(), c.NewRequest(), "x")

	assert.Nil(t, res)
	assert.Equal(t, client.MsgInvalidResponse, msg)
}

func TestWinesAPI_Suggestion(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Red", r.URL.Query().Get("wine_type"))
		assert.Equal(t, "2018", r.URL.Query().Get("vintage"))
		_, _ = w.Write([]byte(`{"drink_after_date":"2024-01-01","drink_before_date":"2030-12-31"}`))
	})
	api := client.NewWinesAPI(c)

	s, msg := api.Suggestion(context.Background(), c.NewRequest(), "Red", 2018)

	require.Empty(t, msg)
	assert.Equal(t, "2030-12-31", s.DrinkBeforeDate.String())
}
