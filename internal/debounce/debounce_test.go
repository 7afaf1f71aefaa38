package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vin/internal/debounce"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	r.got = append(r.got, v)
	r.mu.Unlock()
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDebouncer_RafagaEmiteUnaVezConUltimoValor(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(30*time.Millisecond, rec.add)

	d.Trigger("a")
	d.Trigger("ab")
	d.Trigger("abc")

	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, rec.values())
	assert.False(t, d.Pending())
}

func TestDebouncer_RafagasSeparadasEmitenDosVeces(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(20*time.Millisecond, rec.add)

	d.Trigger("uno")
	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	d.Trigger("dos")
	require.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"uno", "dos"}, rec.values())
}

func TestDebouncer_Flush(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(time.Hour, rec.add)

	assert.False(t, d.Flush())
	d.Trigger("x")
	assert.True(t, d.Pending())
	assert.True(t, d.Flush())

	assert.Equal(t, []string{"x"}, rec.values())
	assert.False(t, d.Flush(), "el valor ya se emitió")
}

func TestDebouncer_StopDescarta(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(10*time.Millisecond, rec.add)

	d.Trigger("x")
	d.Stop()
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, rec.values())
}

func TestDebouncer_DelayPorDefecto(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(0, rec.add)

	d.Trigger("x")
	time.Sleep(debounce.DefaultDelay / 3)
	assert.Empty(t, rec.values())
	assert.True(t, d.Flush())
}
