package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// WineUseCase casos de uso CRUD de la colección. La cantidad inicial y los cambios
// de cantidad por PATCH quedan registrados en el log de inventario.
type WineUseCase struct {
	tx   ports.TxRunner
	repo repository.WineRepository
	now  func() time.Time
}

// NewWineUseCase construye el caso de uso.
func NewWineUseCase(tx ports.TxRunner, repo repository.WineRepository) *WineUseCase {
	return &WineUseCase{tx: tx, repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *WineUseCase) WithClock(now func() time.Time) *WineUseCase {
	uc.now = now
	return uc
}

// Create valida y crea un vino con su composición de uvas.
func (uc *WineUseCase) Create(ctx context.Context, in dto.CreateWineRequest) (*dto.WineResponse, error) {
	typ := normalizeType(in.Type)
	now := uc.now()
	w := &entity.Wine{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(in.Name),
		Type:            typ,
		Producer:        trimmed(in.Producer),
		Vintage:         in.Vintage,
		Country:         trimmed(in.Country),
		District:        trimmed(in.District),
		Subdistrict:     trimmed(in.Subdistrict),
		PurchasePrice:   in.PurchasePrice,
		Quantity:        in.Quantity,
		DrinkAfterDate:  in.DrinkAfterDate,
		DrinkBeforeDate: in.DrinkBeforeDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	w.GrapeComposition = toGrapes(w.ID, in.GrapeComposition)
	if err := wine.Validate(w); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(wineRepo repository.WineRepository, logRepo repository.InventoryLogRepository) error {
		if err := wineRepo.Create(ctx, w); err != nil {
			return err
		}
		if qty := w.CurrentQuantity(); qty > 0 {
			return logRepo.Create(ctx, &entity.InventoryLogEntry{
				ID:            uuid.New().String(),
				WineID:        w.ID,
				Type:          entity.LogTypeInitial,
				Change:        qty,
				QuantityAfter: qty,
				CreatedAt:     now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewWineResponse(w, entity.Today(now))
	return &out, nil
}

// GetByID obtiene un vino por ID. domain.ErrNotFound si no existe.
func (uc *WineUseCase) GetByID(ctx context.Context, id string) (*dto.WineResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewWineResponse(w, entity.Today(uc.now()))
	return &out, nil
}

// Update aplica un PATCH parcial. El recurso resultante se valida completo
// (por ejemplo, cambiar solo drink_after_date se compara con el drink_before_date guardado).
func (uc *WineUseCase) Update(ctx context.Context, id string, in dto.UpdateWineRequest) (*dto.WineResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	typ := normalizeType(in.Type)
	now := uc.now()
	var updated *entity.Wine

	err := uc.tx.Run(ctx, func(wineRepo repository.WineRepository, logRepo repository.InventoryLogRepository) error {
		w, err := wineRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		before := w.CurrentQuantity()

		if in.Name != nil {
			w.Name = strings.TrimSpace(*in.Name)
		}
		if in.Type != nil {
			w.Type = typ
		}
		if in.Producer != nil {
			w.Producer = trimmed(in.Producer)
		}
		if in.Vintage != nil {
			w.Vintage = in.Vintage
		}
		if in.Country != nil {
			w.Country = trimmed(in.Country)
		}
		if in.District != nil {
			w.District = trimmed(in.District)
		}
		if in.Subdistrict != nil {
			w.Subdistrict = trimmed(in.Subdistrict)
		}
		if in.PurchasePrice != nil {
			w.PurchasePrice = in.PurchasePrice
		}
		if in.Quantity != nil {
			w.Quantity = in.Quantity
		}
		if in.DrinkAfterDate != nil {
			w.DrinkAfterDate = in.DrinkAfterDate
		}
		if in.DrinkBeforeDate != nil {
			w.DrinkBeforeDate = in.DrinkBeforeDate
		}
		if in.GrapeComposition != nil {
			w.GrapeComposition = toGrapes(w.ID, *in.GrapeComposition)
		}
		if err := wine.Validate(w); err != nil {
			return err
		}
		w.UpdatedAt = now
		if err := wineRepo.Update(ctx, w); err != nil {
			return err
		}
		if after := w.CurrentQuantity(); after != before {
			if err := logRepo.Create(ctx, &entity.InventoryLogEntry{
				ID:            uuid.New().String(),
				WineID:        w.ID,
				Type:          entity.LogTypeUpdate,
				Change:        after - before,
				QuantityAfter: after,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewWineResponse(updated, entity.Today(now))
	return &out, nil
}

// List devuelve la colección filtrada y ordenada (sin paginar).
func (uc *WineUseCase) List(ctx context.Context, q dto.WineListQuery) ([]dto.WineResponse, error) {
	filter, sort, err := ParseListQuery(q)
	if err != nil {
		return nil, err
	}
	today := entity.Today(uc.now())
	list, err := uc.repo.List(ctx, filter, sort, today)
	if err != nil {
		return nil, err
	}
	return dto.NewWineResponses(list, today), nil
}

// Page devuelve una página de la colección con el total de coincidencias.
func (uc *WineUseCase) Page(ctx context.Context, q dto.WineListQuery) (*dto.WinePageResponse, error) {
	filter, sort, err := ParseListQuery(q)
	if err != nil {
		return nil, err
	}
	page := wine.NewPage(q.Page, q.PageSize)
	today := entity.Today(uc.now())
	list, total, err := uc.repo.Page(ctx, filter, sort, page, today)
	if err != nil {
		return nil, err
	}
	return &dto.WinePageResponse{
		Items:      dto.NewWineResponses(list, today),
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
	}, nil
}

// ParseListQuery convierte los parámetros de consulta en filtro y orden de dominio.
func ParseListQuery(q dto.WineListQuery) (wine.ListFilter, wine.Sort, error) {
	var msgs []string
	filter := wine.ListFilter{
		SearchTerm:  strings.TrimSpace(q.SearchTerm),
		Vintage:     q.Vintage,
		Country:     strings.TrimSpace(q.Country),
		District:    strings.TrimSpace(q.District),
		Subdistrict: strings.TrimSpace(q.Subdistrict),
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		// Tipos fuera del catálogo se filtran tal cual (datos antiguos).
		if norm, ok := wine.NormalizeType(t); ok {
			t = norm
		}
		filter.Type = t
	}
	if !wine.ValidStatus(q.DrinkingWindowStatus) {
		msgs = append(msgs, "Invalid drinking_window_status: "+q.DrinkingWindowStatus+
			". Must be one of [ready_to_drink approaching_deadline not_ready]")
	} else {
		filter.DrinkingWindowStatus = q.DrinkingWindowStatus
	}
	sort, err := wine.ParseSort(q.SortBy, q.SortOrder)
	if err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return wine.ListFilter{}, wine.Sort{}, domain.NewValidationError(msgs...)
	}
	return filter, sort, nil
}

// ── helpers ──

// normalizeType lleva un tipo conocido a su forma canónica; cualquier otro texto
// se guarda recortado (la longitud la valida wine.Validate). nil o vacío -> nil.
func normalizeType(t *string) *string {
	s := trimmed(t)
	if s == nil {
		return nil
	}
	norm, _ := wine.NormalizeType(*s)
	return &norm
}

// trimmed recorta espacios; cadena vacía -> nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toGrapes(wineID string, in []dto.GrapeCompositionRequest) []entity.GrapeComposition {
	out := make([]entity.GrapeComposition, 0, len(in))
	for i, g := range in {
		out = append(out, entity.GrapeComposition{
			ID:           uuid.New().String(),
			WineID:       wineID,
			GrapeVariety: strings.TrimSpace(g.GrapeVariety),
			Percentage:   g.Percentage,
			Position:     i,
		})
	}
	return out
}
