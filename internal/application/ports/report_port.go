package ports

import (
	"context"

	"github.com/jhoicas/vin/internal/application/dto"
)

// CollectionReportGenerator genera el PDF del inventario de la bodega.
type CollectionReportGenerator interface {
	GenerateCollectionReport(ctx context.Context, report dto.CollectionReport) ([]byte, error)
}

// TextSanitizer limpia texto libre del usuario (notas de cata y de ajuste).
type TextSanitizer interface {
	Sanitize(s string) string
}
