package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/usecase"
)

// ReportHandler descarga del reporte PDF de la colección.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CollectionPDF godoc
// @Summary      Reporte PDF de la colección
// @Description  Acepta los mismos filtros y orden que GET /api/wines.
// @Tags         wines
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/wines/report.pdf [get]
func (h *ReportHandler) CollectionPDF(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	pdf, err := h.uc.CollectionPDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="wine-collection-%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}
