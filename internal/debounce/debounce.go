// Package debounce agrupa ráfagas de eventos en una sola emisión tras un periodo de inactividad.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay periodo de inactividad de los formularios.
const DefaultDelay = 150 * time.Millisecond

// Debouncer dispara fn con el último valor recibido cuando pasa delay sin nuevos Trigger.
// Cada Trigger cancela el temporizador pendiente y lo reprograma (flanco de bajada).
// Seguro para uso concurrente; un temporizador por instancia.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	armed   bool
	seq     uint64
}

// New crea un Debouncer. delay <= 0 usa DefaultDelay.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger programa fn(v) y descarta el valor pendiente anterior.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Flush dispara ya el valor pendiente, si lo hay. Devuelve true si hubo emisión.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Stop descarta el valor pendiente sin emitirlo.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.armed {
		d.take()
	}
}

// Pending indica si hay una emisión programada.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// fire corre en la goroutine del temporizador; seq evita emitir un valor ya reemplazado o vaciado.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if !d.armed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

// take vacía el estado pendiente. Requiere d.mu.
func (d *Debouncer[T]) take() T {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	d.seq++
	return v
}
