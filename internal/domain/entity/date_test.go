package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/domain/entity"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var payload struct {
		After  *entity.Date `json:"after"`
		Before *entity.Date `json:"before"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"after":"2026-03-01","before":null}`), &payload))
	require.NotNil(t, payload.After)
	assert.Nil(t, payload.Before)
	assert.Equal(t, "2026-03-01", payload.After.String())

	out, err := json.Marshal(payload.After)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-01"`, string(out))
}

func TestDate_FormatoInvalido(t *testing.T) {
	var d entity.Date
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2026"`), &d))
}

func TestToday_IgnoraHora(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	today := entity.Today(now)
	assert.Equal(t, "2026-10-19", today.String())
	assert.True(t, today.Before(today.AddDays(1)))
	assert.False(t, today.After(today))
}
