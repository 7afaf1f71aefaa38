// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa con APP_STORAGE=memory y como doble de la base de datos en los tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
	"github.com/jhoicas/vin/internal/domain/wine"
)

type state struct {
	wines map[string]*entity.Wine
	logs  []*entity.InventoryLogEntry
}

func (st *state) clone() *state {
	out := &state{wines: make(map[string]*entity.Wine, len(st.wines)), logs: append([]*entity.InventoryLogEntry(nil), st.logs...)}
	for id, w := range st.wines {
		out.wines[id] = w
	}
	return out
}

// Store guarda vinos y log. Las transacciones se serializan con un mutex y
// trabajan sobre una copia que solo se publica si fn no devuelve error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{wines: map[string]*entity.Wine{}}}
}

// Wines repositorio de vinos fuera de transacción.
func (s *Store) Wines() repository.WineRepository { return &wineRepo{store: s} }

// Logs repositorio del log fuera de transacción.
func (s *Store) Logs() repository.InventoryLogRepository { return &logRepo{store: s} }

// Run implementa ports.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repository.WineRepository, repository.InventoryLogRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&wineRepo{tx: work}, &logRepo{tx: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// view ejecuta fn sobre el estado: el de la tx si existe, si no el publicado bajo lock.
func view(store *Store, tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return fn(store.st)
}

// ── Vinos ──

type wineRepo struct {
	store *Store
	tx    *state
}

func (r *wineRepo) Create(ctx context.Context, w *entity.Wine) error {
	return view(r.store, r.tx, func(st *state) error {
		st.wines[w.ID] = cloneWine(w)
		return nil
	})
}

func (r *wineRepo) GetByID(ctx context.Context, id string) (*entity.Wine, error) {
	var out *entity.Wine
	err := view(r.store, r.tx, func(st *state) error {
		if w, ok := st.wines[id]; ok {
			out = cloneWine(w)
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: el lock es el de la transacción.
func (r *wineRepo) GetForUpdate(ctx context.Context, id string) (*entity.Wine, error) {
	return r.GetByID(ctx, id)
}

func (r *wineRepo) Update(ctx context.Context, w *entity.Wine) error {
	return view(r.store, r.tx, func(st *state) error {
		if _, ok := st.wines[w.ID]; ok {
			st.wines[w.ID] = cloneWine(w)
		}
		return nil
	})
}

func (r *wineRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return view(r.store, r.tx, func(st *state) error {
		if w, ok := st.wines[id]; ok {
			c := cloneWine(w)
			c.Quantity = &quantity
			st.wines[id] = c
		}
		return nil
	})
}

func (r *wineRepo) List(ctx context.Context, filter wine.ListFilter, s wine.Sort, today entity.Date) ([]*entity.Wine, error) {
	var out []*entity.Wine
	err := view(r.store, r.tx, func(st *state) error {
		for _, w := range st.wines {
			if filter.Matches(w, today) {
				out = append(out, cloneWine(w))
			}
		}
		return nil
	})
	sortWines(out, s)
	return out, err
}

func (r *wineRepo) Page(ctx context.Context, filter wine.ListFilter, s wine.Sort, page wine.Page, today entity.Date) ([]*entity.Wine, int, error) {
	all, err := r.List(ctx, filter, s, today)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	from := page.Offset()
	if from > total {
		from = total
	}
	to := from + page.Size
	if to > total {
		to = total
	}
	return all[from:to], total, nil
}

// ── Log ──

type logRepo struct {
	store *Store
	tx    *state
}

func (r *logRepo) Create(ctx context.Context, entry *entity.InventoryLogEntry) error {
	c := *entry
	return view(r.store, r.tx, func(st *state) error {
		st.logs = append(st.logs, &c)
		return nil
	})
}

// ListByWine devuelve las entradas más recientes primero.
func (r *logRepo) ListByWine(ctx context.Context, wineID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	var out []*entity.InventoryLogEntry
	err := view(r.store, r.tx, func(st *state) error {
		for i := len(st.logs) - 1; i >= 0; i-- {
			if e := st.logs[i]; e.WineID == wineID {
				c := *e
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.InventoryLogEntry{}, err
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, err
}

// ── helpers ──

func cloneWine(w *entity.Wine) *entity.Wine {
	c := *w
	c.GrapeComposition = append([]entity.GrapeComposition(nil), w.GrapeComposition...)
	return &c
}

// sortWines replica ORDER BY <campo> {ASC|DESC}, id: NULL va al final en ASC y al principio en DESC.
func sortWines(list []*entity.Wine, s wine.Sort) {
	sort.SliceStable(list, func(i, j int) bool {
		c := compareWines(list[i], list[j], s.Field)
		if c == 0 {
			c = strings.Compare(list[i].ID, list[j].ID)
		}
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compareWines(a, b *entity.Wine, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "producer":
		return compareStr(a.Producer, b.Producer)
	case "type":
		return compareStr(a.Type, b.Type)
	case "vintage":
		switch {
		case a.Vintage == nil && b.Vintage == nil:
			return 0
		case a.Vintage == nil:
			return 1
		case b.Vintage == nil:
			return -1
		}
		return *a.Vintage - *b.Vintage
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareStr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return strings.Compare(*a, *b)
}
