package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/usecase"
)

// WineHandler maneja las peticiones HTTP de la colección.
type WineHandler struct {
	uc *usecase.WineUseCase
}

// NewWineHandler construye el handler.
func NewWineHandler(uc *usecase.WineUseCase) *WineHandler {
	return &WineHandler{uc: uc}
}

// parseListQuery lee filtros, orden y paginación de la query string.
func parseListQuery(c *fiber.Ctx) (dto.WineListQuery, error) {
	q := dto.WineListQuery{
		SearchTerm:           c.Query("search_term"),
		Type:                 c.Query("type"),
		Country:              c.Query("country"),
		District:             c.Query("district"),
		Subdistrict:          c.Query("subdistrict"),
		DrinkingWindowStatus: c.Query("drinking_window_status"),
		SortBy:               c.Query("sort_by"),
		SortOrder:            c.Query("sort_order"),
		Page:                 c.QueryInt("page", 1),
		PageSize:             c.QueryInt("page_size", 20),
	}
	if raw := strings.TrimSpace(c.Query("vintage")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, fiber.NewError(fiber.StatusBadRequest, "vintage must be an integer")
		}
		q.Vintage = &v
	}
	return q, nil
}

// List godoc
// @Summary      Listar vinos
// @Tags         wines
// @Produce      json
// @Param        search_term             query  string  false  "Nombre o productor (parcial)"
// @Param        type                    query  string  false  "Tipo"
// @Param        vintage                 query  int     false  "Añada"
// @Param        drinking_window_status  query  string  false  "ready_to_drink | approaching_deadline | not_ready"
// @Param        sort_by                 query  string  false  "id | name | producer | vintage | type"
// @Param        sort_order              query  string  false  "asc | desc"
// @Success      200  {array}   dto.WineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/wines [get]
func (h *WineHandler) List(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Page godoc
// @Summary      Listar vinos paginado
// @Tags         wines
// @Produce      json
// @Param        page       query  int  false  "Página (1..)"  default(1)
// @Param        page_size  query  int  false  "Tamaño (1..100)"  default(20)
// @Success      200  {object}  dto.WinePageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/wines/page [get]
func (h *WineHandler) Page(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.Page(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear vino
// @Tags         wines
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWineRequest  true  "Datos del vino"
// @Success      201   {object}  dto.WineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wines [post]
func (h *WineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWineRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener vino por ID
// @Tags         wines
// @Produce      json
// @Param        id   path  string  true  "ID del vino"
// @Success      200  {object}  dto.WineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wines/{id} [get]
func (h *WineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vino (parcial)
// @Tags         wines
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del vino"
// @Param        body  body  dto.UpdateWineRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/wines/{id} [patch]
func (h *WineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWineRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
