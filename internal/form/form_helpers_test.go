package form_test

import (
	"sync"
	"time"

	"github.com/jhoicas/vin/internal/form"
)

// 15 de junio de 2025
func fixedNow() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

// manualOpts: el debounce nunca vence solo, los tests emiten con Flush.
func manualOpts() form.Options {
	return form.Options{Delay: time.Hour, Now: fixedNow}
}

type emissions[T any] struct {
	mu  sync.Mutex
	got []T
}

func (e *emissions[T]) add(v T) {
	e.mu.Lock()
	e.got = append(e.got, v)
	e.mu.Unlock()
}

func (e *emissions[T]) all() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]T(nil), e.got...)
}
