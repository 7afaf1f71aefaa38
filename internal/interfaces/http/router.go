package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/inventory"
	"github.com/jhoicas/vin/internal/application/usecase"
)

// ServiceName nombre publicado en / y /health.
const ServiceName = "VIN API"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WineUC       *usecase.WineUseCase
	InventoryUC  *inventory.UseCase
	SuggestionUC *usecase.SuggestionUseCase
	ReportUC     *usecase.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.StatusResponse{Status: "ok", Service: ServiceName, Routes: []string{"/api/wines"}})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.StatusResponse{Status: "ok"})
	})

	wines := app.Group("/api/wines")
	wineHandler := NewWineHandler(deps.WineUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	suggestionHandler := NewSuggestionHandler(deps.SuggestionUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Rutas estáticas antes de /:id
	wines.Get("/", wineHandler.List)
	wines.Post("/", wineHandler.Create)
	wines.Get("/page", wineHandler.Page)
	wines.Get("/drinking-window-suggestions", suggestionHandler.Suggest)
	wines.Get("/report.pdf", reportHandler.CollectionPDF)

	wines.Get("/:id", wineHandler.GetByID)
	wines.Patch("/:id", wineHandler.Update)
	wines.Patch("/:id/quantity", inventoryHandler.AdjustQuantity)
	wines.Post("/:id/consume", inventoryHandler.Consume)
	wines.Get("/:id/inventory-log", inventoryHandler.Log)
}
