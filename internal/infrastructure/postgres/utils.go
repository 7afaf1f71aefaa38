package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/vin/internal/domain/entity"
)

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// dateArg convierte una fecha opcional en argumento SQL (NULL si nil).
func dateArg(d *entity.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// toDate convierte un DATE leído (posiblemente NULL).
func toDate(t *time.Time) *entity.Date {
	if t == nil {
		return nil
	}
	d := entity.NewDate(*t)
	return &d
}
