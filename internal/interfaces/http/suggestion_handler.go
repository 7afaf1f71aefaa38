package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/usecase"
)

// SuggestionHandler expone las sugerencias de ventana de consumo.
type SuggestionHandler struct {
	uc *usecase.SuggestionUseCase
}

// NewSuggestionHandler construye el handler.
func NewSuggestionHandler(uc *usecase.SuggestionUseCase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

// Suggest godoc
// @Summary      Sugerir ventana de consumo
// @Tags         wines
// @Produce      json
// @Param        wine_type  query  string  true  "Red | White | Rosé | Sparkling | Dessert | Fortified"
// @Param        vintage    query  int     true  "Añada (1800..2100)"
// @Success      200  {object}  dto.DrinkingWindowSuggestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/wines/drinking-window-suggestions [get]
func (h *SuggestionHandler) Suggest(c *fiber.Ctx) error {
	wineType := c.Query("wine_type")
	if wineType == "" {
		return badRequest(c, "VALIDATION", "wine_type is required")
	}
	vintage, err := strconv.Atoi(c.Query("vintage"))
	if err != nil {
		return badRequest(c, "VALIDATION", "vintage must be an integer")
	}
	out, err := h.uc.Suggest(c.UserContext(), wineType, vintage)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
