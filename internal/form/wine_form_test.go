package form_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/form"
)

type fakeAPI struct {
	calls  atomic.Int32
	status int
	body   string
	last   atomic.Value // []byte
}

func newFakeAPI(t *testing.T, status int, body string) (*fakeAPI, *client.WinesAPI) {
	t.Helper()
	f := &fakeAPI{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		b, _ := io.ReadAll(r.Body)
		f.last.Store(b)
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(srv.Close)
	return f, client.NewWinesAPI(client.New(srv.URL, srv.Client()))
}

func fillDetails(f *form.WineForm) {
	f.Details.SetName("Viña Tondonia")
	f.Details.SetType("red")
	f.Details.SetProducer("López de Heredia")
	f.Details.SetVintage("2015")
}

func setGrapes(f *form.WineForm, percentages ...string) {
	for i, p := range percentages {
		row := f.Grapes.AddRow()
		f.Grapes.SetVariety(row, fmt.Sprintf("Grape %d", i+1))
		f.Grapes.SetPercentage(row, p)
	}
}

func TestWineForm_SumaMayorA100NoLlamaALaRed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tenths := rapid.SliceOfN(rapid.IntRange(0, 1000), 2, 5).
			Filter(func(v []int) bool {
				sum := 0
				for _, x := range v {
					sum += x
				}
				return sum > 1005
			}).
			Draw(rt, "tenths")

		api, winesAPI := newFakeAPI(t, http.StatusCreated, `{"id":"x","name":"n"}`)
		f := form.NewWineForm(winesAPI, manualOpts())
		fillDetails(f)
		percentages := make([]string, len(tenths))
		for i, v := range tenths {
			percentages[i] = fmt.Sprintf("%d.%d", v/10, v%10)
		}
		setGrapes(f, percentages...)

		if created := f.Submit(context.Background()); created != nil {
			rt.Fatalf("alta aceptada con %v", percentages)
		}
		if n := api.calls.Load(); n != 0 {
			rt.Fatalf("%d llamadas de red con %v", n, percentages)
		}
		if f.Error() != form.MsgInvalidForm {
			rt.Fatalf("error %q", f.Error())
		}
	})
}

func TestWineForm_Total100SeEnvia(t *testing.T) {
	api, winesAPI := newFakeAPI(t, http.StatusCreated, `{"id":"w1","name":"Viña Tondonia"}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)
	setGrapes(f, "70.0", "20.0", "10.0")

	created := f.Submit(context.Background())

	require.NotNil(t, created)
	assert.Equal(t, "w1", created.ID)
	assert.Equal(t, int32(1), api.calls.Load())
	assert.Equal(t, form.MsgCreated, f.Success())
	assert.Empty(t, f.Error())

	// éxito: secciones vacías
	assert.Nil(t, f.Draft().Details)
	assert.Equal(t, 0, f.Grapes.Len())
	assert.True(t, f.Details.Errors().Has(form.FieldName))
}

func TestWineForm_MensajeDeExitoCaduca(t *testing.T) {
	_, winesAPI := newFakeAPI(t, http.StatusCreated, `{"id":"w1","name":"Viña Tondonia"}`)
	opts := manualOpts()
	opts.SuccessTTL = 30 * time.Millisecond
	f := form.NewWineForm(winesAPI, opts)
	fillDetails(f)

	require.NotNil(t, f.Submit(context.Background()))
	assert.Equal(t, form.MsgCreated, f.Success())

	assert.Eventually(t, func() bool { return f.Success() == "" }, time.Second, 5*time.Millisecond)
}

func TestWineForm_Total99_4SeRechaza(t *testing.T) {
	api, winesAPI := newFakeAPI(t, http.StatusCreated, `{}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)
	setGrapes(f, "60.0", "39.4")

	assert.Nil(t, f.Submit(context.Background()))
	assert.False(t, f.Valid())
	assert.Equal(t, int32(0), api.calls.Load())
}

func TestWineForm_DentroDeTolerancia(t *testing.T) {
	_, winesAPI := newFakeAPI(t, http.StatusCreated, `{}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)
	setGrapes(f, "60.0", "39.5")
	f.Grapes.Flush()
	f.Details.Flush()

	assert.True(t, f.Valid())
}

func TestWineForm_SinDetallesNoEsValido(t *testing.T) {
	api, winesAPI := newFakeAPI(t, http.StatusCreated, `{}`)
	f := form.NewWineForm(winesAPI, manualOpts())

	assert.False(t, f.Valid())
	assert.Nil(t, f.Submit(context.Background()))
	assert.Equal(t, int32(0), api.calls.Load())
}

func TestWineForm_ReescribeErrorDeFechas(t *testing.T) {
	_, winesAPI := newFakeAPI(t, http.StatusBadRequest,
		`{"code":"VALIDATION","message":"drink_before_date must be later than drink_after_date"}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)

	assert.Nil(t, f.Submit(context.Background()))
	assert.Equal(t, "Drink before date must be after the drink after date.", f.Error())
	assert.Empty(t, f.Success())
	assert.NotNil(t, f.Draft().Details, "un fallo conserva el borrador")
}

func TestWineForm_ErrorDelServidor(t *testing.T) {
	_, winesAPI := newFakeAPI(t, http.StatusInternalServerError, `{"detail":"boom"}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)

	assert.Nil(t, f.Submit(context.Background()))
	assert.Equal(t, "boom", f.Error())
	st := f.Request().State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Data)
}

func TestWineForm_PayloadOmiteVacios(t *testing.T) {
	api, winesAPI := newFakeAPI(t, http.StatusCreated, `{"id":"w1"}`)
	f := form.NewWineForm(winesAPI, manualOpts())
	fillDetails(f)
	f.Details.SetCountry("Spain")
	f.Pricing.SetPurchasePrice("45.90")
	f.Pricing.SetQuantity("6")
	f.Window.SetAfter("2026-01-01")
	setGrapes(f, "75", "25")
	f.Details.Flush()
	f.Pricing.Flush()
	f.Window.Flush()
	f.Grapes.Flush()

	vintage, qty := 2015, 6
	wineType, producer, country := "Red", "López de Heredia", "Spain"
	price := decimal.RequireFromString("45.90")
	after, _ := entity.ParseDate("2026-01-01")
	want := dto.CreateWineRequest{
		Name:           "Viña Tondonia",
		Type:           &wineType,
		Producer:       &producer,
		Vintage:        &vintage,
		Country:        &country,
		PurchasePrice:  &price,
		Quantity:       &qty,
		DrinkAfterDate: &after,
		GrapeComposition: []dto.GrapeCompositionRequest{
			{GrapeVariety: "Grape 1", Percentage: decimal.NewFromInt(75)},
			{GrapeVariety: "Grape 2", Percentage: decimal.NewFromInt(25)},
		},
	}
	if diff := cmp.Diff(want, f.Payload()); diff != "" {
		t.Errorf("payload (-want +got):\n%s", diff)
	}

	require.NotNil(t, f.Submit(context.Background()))
	var sent map[string]any
	require.NoError(t, json.Unmarshal(api.last.Load().([]byte), &sent))
	assert.NotContains(t, sent, "district")
	assert.NotContains(t, sent, "drink_before_date")
	assert.Equal(t, "2026-01-01", sent["drink_after_date"])
}

func TestWineForm_Suggest(t *testing.T) {
	_, winesAPI := newFakeAPI(t, http.StatusOK, `{"drink_after_date":"2026-01-01","drink_before_date":"2031-12-31"}`)
	f := form.NewWineForm(winesAPI, manualOpts())

	assert.Equal(t, form.MsgSuggestionArgs, f.Suggest(context.Background()))

	fillDetails(f)
	require.Empty(t, f.Suggest(context.Background()))
	f.Window.Flush()

	assert.Equal(t, "2031-12-31", f.Draft().Window.Before.String())
}
