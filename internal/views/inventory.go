package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/client"
)

// DefaultLogLimit entradas pedidas por carga.
const DefaultLogLimit = 50

// InventoryView cantidad actual y log de inventario de un vino.
// Ajustes y consumos se delegan a la API y la cantidad local se toma de su respuesta.
type InventoryView struct {
	api       *client.WinesAPI
	logReq    *client.Request
	actionReq *client.Request
	wineID    string

	mu        sync.Mutex
	quantity  *int
	entries   []dto.InventoryLogEntryResponse
	logErr    string
	actionErr string
}

// NewInventoryView crea la vista; quantity es la cantidad conocida (puede ser nil).
func NewInventoryView(api *client.WinesAPI, wineID string, quantity *int) *InventoryView {
	return &InventoryView{
		api:       api,
		logReq:    api.Client().NewRequest(),
		actionReq: api.Client().NewRequest(),
		wineID:    wineID,
		quantity:  quantity,
	}
}

// Load pide el log (más recientes primero).
func (v *InventoryView) Load(ctx context.Context) {
	res, msg := v.api.InventoryLog(ctx, v.logReq, v.wineID, DefaultLogLimit, 0)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logErr = msg
	if res != nil {
		v.entries = res.Entries
	} else {
		v.entries = nil
	}
}

// Adjust fija la cantidad absoluta. Devuelve false si la API rechazó el cambio (ver ActionError).
func (v *InventoryView) Adjust(ctx context.Context, quantity int, note string) bool {
	res, msg := v.api.AdjustQuantity(ctx, v.actionReq, v.wineID, dto.AdjustQuantityRequest{
		Quantity: &quantity,
		Note:     optionalNote(note),
	})
	return v.applied(res, msg)
}

// Consume descuenta n botellas (n <= 0 usa el valor por defecto del servidor, 1).
func (v *InventoryView) Consume(ctx context.Context, n int, note string) bool {
	body := dto.ConsumeRequest{Note: optionalNote(note)}
	if n > 0 {
		body.Quantity = &n
	}
	res, msg := v.api.Consume(ctx, v.actionReq, v.wineID, body)
	return v.applied(res, msg)
}

func (v *InventoryView) applied(res *dto.InventoryChangeResponse, msg string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.actionErr = msg
	if msg != "" || res == nil {
		return false
	}
	v.quantity = res.Wine.Quantity
	if res.Entry != nil {
		v.entries = append([]dto.InventoryLogEntryResponse{*res.Entry}, v.entries...)
	}
	return true
}

// Quantity cantidad mostrada.
func (v *InventoryView) Quantity() *int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.quantity
}

// Entries entradas mostradas.
func (v *InventoryView) Entries() []dto.InventoryLogEntryResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]dto.InventoryLogEntryResponse(nil), v.entries...)
}

// ActionError último error de ajuste o consumo.
func (v *InventoryView) ActionError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.actionErr
}

// Render cantidad, último error de acción y log.
func (v *InventoryView) Render(w io.Writer) error {
	st := v.logReq.State()
	v.mu.Lock()
	qty, entries, logErr, actionErr := v.quantity, v.entries, v.logErr, v.actionErr
	v.mu.Unlock()

	if _, err := fmt.Fprintf(w, "Bottles in stock: %s\n", num(qty)); err != nil {
		return err
	}
	if actionErr != "" {
		if _, err := fmt.Fprintf(w, "Error: %s\n", actionErr); err != nil {
			return err
		}
	}
	if done, err := state(w, st.Loading, logErr); done {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, MsgNoLog)
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Format("2006-01-02 15:04"), e.Type, signed(e.Change), strconv.Itoa(e.QuantityAfter), str(e.Note),
		})
	}
	return table(w, []string{"WHEN", "TYPE", "CHANGE", "AFTER", "NOTE"}, rows)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func optionalNote(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
