package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/domain"
	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/repository"
)

// MaxNoteLen longitud máxima de una nota (después de sanear).
const MaxNoteLen = 1000

// Paginación del log.
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 200
)

// UseCase ajustes de cantidad y consumos con bloqueo de fila (SELECT FOR UPDATE)
// y registro en el log de inventario dentro de la misma transacción.
type UseCase struct {
	tx        ports.TxRunner
	wineRepo  repository.WineRepository
	logRepo   repository.InventoryLogRepository
	sanitizer ports.TextSanitizer
	now       func() time.Time
}

// NewUseCase construye el caso de uso. wineRepo y logRepo se usan para lecturas fuera de tx.
func NewUseCase(
	tx ports.TxRunner,
	wineRepo repository.WineRepository,
	logRepo repository.InventoryLogRepository,
	sanitizer ports.TextSanitizer,
) *UseCase {
	return &UseCase{
		tx:        tx,
		wineRepo:  wineRepo,
		logRepo:   logRepo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// AdjustQuantity fija la cantidad absoluta de botellas y registra la diferencia como manual_adjustment.
// Si la cantidad no cambia no se registra nada y Entry es nil.
func (uc *UseCase) AdjustQuantity(ctx context.Context, wineID string, in dto.AdjustQuantityRequest) (*dto.InventoryChangeResponse, error) {
	if in.Quantity == nil {
		return nil, domain.NewValidationError("quantity is required")
	}
	if *in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity must be greater than or equal to 0")
	}
	note, err := uc.note(in.Note)
	if err != nil {
		return nil, err
	}
	target := *in.Quantity
	return uc.apply(ctx, wineID, func(current int) (int, string, error) {
		return target, entity.LogTypeManualAdjustment, nil
	}, note)
}

// Consume descuenta botellas (por defecto 1). domain.ErrInsufficientStock si no alcanzan.
func (uc *UseCase) Consume(ctx context.Context, wineID string, in dto.ConsumeRequest) (*dto.InventoryChangeResponse, error) {
	n := 1
	if in.Quantity != nil {
		n = *in.Quantity
	}
	if n < 1 {
		return nil, domain.NewValidationError("quantity must be greater than or equal to 1")
	}
	note, err := uc.note(in.Note)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, wineID, func(current int) (int, string, error) {
		if current < n {
			return 0, "", domain.ErrInsufficientStock
		}
		return current - n, entity.LogTypeConsumption, nil
	}, note)
}

// Log devuelve las entradas del log de un vino, más recientes primero.
func (uc *UseCase) Log(ctx context.Context, wineID string, limit, offset int) (*dto.InventoryLogResponse, error) {
	if _, err := uuid.Parse(wineID); err != nil {
		return nil, domain.ErrNotFound
	}
	w, err := uc.wineRepo.GetByID(ctx, wineID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := uc.logRepo.ListByWine(ctx, wineID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryLogResponse{WineID: wineID, Entries: make([]dto.InventoryLogEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.NewInventoryLogEntryResponse(e))
	}
	return out, nil
}

// apply bloquea el vino, calcula la nueva cantidad con next y persiste cantidad y entrada.
func (uc *UseCase) apply(
	ctx context.Context,
	wineID string,
	next func(current int) (int, string, error),
	note *string,
) (*dto.InventoryChangeResponse, error) {
	if _, err := uuid.Parse(wineID); err != nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	var (
		updated *entity.Wine
		entry   *entity.InventoryLogEntry
	)
	err := uc.tx.Run(ctx, func(wineRepo repository.WineRepository, logRepo repository.InventoryLogRepository) error {
		w, err := wineRepo.GetForUpdate(ctx, wineID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		current := w.CurrentQuantity()
		qty, logType, err := next(current)
		if err != nil {
			return err
		}
		updated = w
		if qty == current {
			return nil
		}
		if err := wineRepo.UpdateQuantity(ctx, w.ID, qty); err != nil {
			return err
		}
		w.Quantity = &qty
		w.UpdatedAt = now
		entry = &entity.InventoryLogEntry{
			ID:            uuid.New().String(),
			WineID:        w.ID,
			Type:          logType,
			Change:        qty - current,
			QuantityAfter: qty,
			Note:          note,
			CreatedAt:     now,
		}
		return logRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryChangeResponse{Wine: dto.NewWineResponse(updated, entity.Today(now))}
	if entry != nil {
		e := dto.NewInventoryLogEntryResponse(entry)
		out.Entry = &e
	}
	return out, nil
}

// note sanea la nota; vacía -> nil.
func (uc *UseCase) note(in *string) (*string, error) {
	if in == nil {
		return nil, nil
	}
	s := *in
	if uc.sanitizer != nil {
		s = uc.sanitizer.Sanitize(s)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > MaxNoteLen {
		return nil, domain.NewValidationError(fmt.Sprintf("note must be at most %d characters", MaxNoteLen))
	}
	return &s, nil
}
