package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de la colección con los mismos filtros del listado.
type ReportUseCase struct {
	repo repository.WineRepository
	gen  ports.CollectionReportGenerator
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.WineRepository, gen ports.CollectionReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, gen: gen, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// CollectionPDF arma el reporte y lo delega al generador.
func (uc *ReportUseCase) CollectionPDF(ctx context.Context, q dto.WineListQuery) ([]byte, error) {
	filter, sort, err := ParseListQuery(q)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	today := entity.Today(now)
	list, err := uc.repo.List(ctx, filter, sort, today)
	if err != nil {
		return nil, err
	}
	report := dto.CollectionReport{
		Title:       "Wine Collection",
		GeneratedAt: now,
		Wines:       dto.NewWineResponses(list, today),
	}
	for _, w := range list {
		report.TotalBottles += w.CurrentQuantity()
	}
	return uc.gen.GenerateCollectionReport(ctx, report)
}
