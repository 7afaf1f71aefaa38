package postgres

import (
	"context"
	"fmt"
)

// schemaStatements DDL idempotente de la colección.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS wines (
		id                UUID PRIMARY KEY,
		name              VARCHAR(255) NOT NULL,
		type              VARCHAR(100),
		producer          VARCHAR(255),
		vintage           INTEGER CHECK (vintage BETWEEN 1800 AND 2100),
		country           VARCHAR(100),
		district          VARCHAR(100),
		subdistrict       VARCHAR(100),
		purchase_price    NUMERIC(12,2) CHECK (purchase_price >= 0),
		quantity          INTEGER CHECK (quantity >= 0),
		drink_after_date  DATE,
		drink_before_date DATE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT wines_drinking_window_chk CHECK (
			drink_after_date IS NULL OR drink_before_date IS NULL OR drink_after_date < drink_before_date
		)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wines_name ON wines (name)`,
	`CREATE INDEX IF NOT EXISTS idx_wines_created_at ON wines (created_at)`,
	`CREATE TABLE IF NOT EXISTS grape_compositions (
		id            UUID PRIMARY KEY,
		wine_id       UUID NOT NULL REFERENCES wines(id) ON DELETE CASCADE,
		grape_variety VARCHAR(100) NOT NULL,
		percentage    NUMERIC(5,2) NOT NULL CHECK (percentage BETWEEN 0 AND 100),
		position      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_grape_compositions_wine ON grape_compositions (wine_id)`,
	`CREATE TABLE IF NOT EXISTS inventory_log (
		id             UUID PRIMARY KEY,
		wine_id        UUID NOT NULL REFERENCES wines(id) ON DELETE CASCADE,
		type           VARCHAR(32) NOT NULL,
		change         INTEGER NOT NULL,
		quantity_after INTEGER NOT NULL CHECK (quantity_after >= 0),
		note           TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_log_wine ON inventory_log (wine_id, created_at DESC)`,
}

// EnsureSchema crea tablas e índices si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
