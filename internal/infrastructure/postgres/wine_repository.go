package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
	"github.com/jhoicas/vin/internal/domain/wine"
)

var _ repository.WineRepository = (*WineRepo)(nil)

const wineColumns = `id, name, type, producer, vintage, country, district, subdistrict,
	purchase_price, quantity, drink_after_date, drink_before_date, created_at, updated_at`

// WineRepo implementación del puerto WineRepository sobre PostgreSQL (usable con pool o tx).
type WineRepo struct {
	q Querier
}

// NewWineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWineRepository(q Querier) *WineRepo {
	return &WineRepo{q: q}
}

// Create persiste el vino y su composición de uvas.
func (r *WineRepo) Create(ctx context.Context, w *entity.Wine) error {
	query := `
		INSERT INTO wines (` + wineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Type, w.Producer, w.Vintage, w.Country, w.District, w.Subdistrict,
		w.PurchasePrice, w.Quantity, dateArg(w.DrinkAfterDate), dateArg(w.DrinkBeforeDate), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
		return fmt.Errorf("insert wine: %w", err)
	}
	return r.insertGrapes(ctx, w)
}

// GetByID obtiene un vino con su composición.
func (r *WineRepo) GetByID(ctx context.Context, id string) (*entity.Wine, error) {
	return r.getOne(ctx, `SELECT `+wineColumns+` FROM wines WHERE id = $1`, id)
}

// GetForUpdate obtiene el vino bloqueando la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *WineRepo) GetForUpdate(ctx context.Context, id string) (*entity.Wine, error) {
	return r.getOne(ctx, `SELECT `+wineColumns+` FROM wines WHERE id = $1 FOR UPDATE`, id)
}

func (r *WineRepo) getOne(ctx context.Context, query, id string) (*entity.Wine, error) {
	w, err := scanWine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wine: %w", err)
	}
	if err := r.loadGrapes(ctx, []*entity.Wine{w}); err != nil {
		return nil, err
	}
	return w, nil
}

// Update reemplaza todos los campos y la composición de uvas.
func (r *WineRepo) Update(ctx context.Context, w *entity.Wine) error {
	query := `
		UPDATE wines SET name = $2, type = $3, producer = $4, vintage = $5, country = $6, district = $7,
			subdistrict = $8, purchase_price = $9, quantity = $10, drink_after_date = $11,
			drink_before_date = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Type, w.Producer, w.Vintage, w.Country, w.District, w.Subdistrict,
		w.PurchasePrice, w.Quantity, dateArg(w.DrinkAfterDate), dateArg(w.DrinkBeforeDate), w.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
		return fmt.Errorf("update wine: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM grape_compositions WHERE wine_id = $1`, w.ID); err != nil {
		return fmt.Errorf("delete grape compositions: %w", err)
	}
	return r.insertGrapes(ctx, w)
}

// UpdateQuantity actualiza solo la cantidad (usado por ajustes y consumos).
func (r *WineRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE wines SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update wine quantity: %w", err)
	}
	return nil
}

// List devuelve la colección filtrada y ordenada.
func (r *WineRepo) List(ctx context.Context, filter wine.ListFilter, s wine.Sort, today entity.Date) ([]*entity.Wine, error) {
	where, args := buildWineWhere(filter, today)
	return r.query(ctx, `SELECT `+wineColumns+` FROM wines`+where+orderBy(s), args...)
}

// Page devuelve una página y el total de coincidencias.
func (r *WineRepo) Page(ctx context.Context, filter wine.ListFilter, s wine.Sort, page wine.Page, today entity.Date) ([]*entity.Wine, int, error) {
	where, args := buildWineWhere(filter, today)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM wines`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wines: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM wines%s%s LIMIT $%d OFFSET $%d`, wineColumns, where, orderBy(s), n+1, n+2)
	list, err := r.query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *WineRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Wine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wines: %w", err)
	}
	defer rows.Close()
	list := []*entity.Wine{}
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wine: %w", err)
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wines: %w", err)
	}
	if err := r.loadGrapes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ── Composición de uvas ──

func (r *WineRepo) insertGrapes(ctx context.Context, w *entity.Wine) error {
	for i, gc := range w.GrapeComposition {
		_, err := r.q.Exec(ctx,
			`INSERT INTO grape_compositions (id, wine_id, grape_variety, percentage, position) VALUES ($1, $2, $3, $4, $5)`,
			gc.ID, w.ID, gc.GrapeVariety, gc.Percentage, i,
		)
		if err != nil {
			if isCheckViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
			}
			return fmt.Errorf("insert grape composition: %w", err)
		}
	}
	return nil
}

// loadGrapes carga la composición de todos los vinos en una sola consulta.
func (r *WineRepo) loadGrapes(ctx context.Context, list []*entity.Wine) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Wine, len(list))
	ids := make([]string, 0, len(list))
	for _, w := range list {
		w.GrapeComposition = []entity.GrapeComposition{}
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, wine_id, grape_variety, percentage, position
		FROM grape_compositions WHERE wine_id = ANY($1::uuid[])
		ORDER BY wine_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list grape compositions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var gc entity.GrapeComposition
		var pct decimal.Decimal
		if err := rows.Scan(&gc.ID, &gc.WineID, &gc.GrapeVariety, &pct, &gc.Position); err != nil {
			return fmt.Errorf("scan grape composition: %w", err)
		}
		gc.Percentage = pct
		if w, ok := byID[gc.WineID]; ok {
			w.GrapeComposition = append(w.GrapeComposition, gc)
		}
	}
	return rows.Err()
}

func scanWine(row pgx.Row) (*entity.Wine, error) {
	var (
		w             entity.Wine
		after, before *time.Time
	)
	err := row.Scan(
		&w.ID, &w.Name, &w.Type, &w.Producer, &w.Vintage, &w.Country, &w.District, &w.Subdistrict,
		&w.PurchasePrice, &w.Quantity, &after, &before, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.DrinkAfterDate = toDate(after)
	w.DrinkBeforeDate = toDate(before)
	return &w, nil
}
