package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/inventory"
)

// InventoryHandler maneja ajustes de cantidad, consumos y el log de inventario.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AdjustQuantity godoc
// @Summary      Fijar cantidad de botellas
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del vino"
// @Param        body  body  dto.AdjustQuantityRequest  true  "quantity (absoluta) y note"
// @Success      200   {object}  dto.InventoryChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/wines/{id}/quantity [patch]
func (h *InventoryHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
	}
	out, err := h.uc.AdjustQuantity(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Consumir botellas
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "ID del vino"
// @Param        body  body  dto.ConsumeRequest  false  "quantity (por defecto 1) y nota de cata"
// @Success      200   {object}  dto.InventoryChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wines/{id}/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
		}
	}
	out, err := h.uc.Consume(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Log godoc
// @Summary      Log de inventario de un vino
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del vino"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wines/{id}/inventory-log [get]
func (h *InventoryHandler) Log(c *fiber.Ctx) error {
	out, err := h.uc.Log(c.UserContext(), c.Params("id"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
