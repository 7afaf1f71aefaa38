package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string, string) {
	var verr *domain.ValidationError
	var apiErr *domain.ExternalAPIError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION", verr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "Wine not found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_QUANTITY", "Not enough bottles in stock"
	case errors.Is(err, domain.ErrNotConfigured):
		return fiber.StatusServiceUnavailable, "NOT_CONFIGURED", "External wine API is not configured"
	case errors.As(err, &apiErr):
		return fiber.StatusBadGateway, "EXTERNAL_API", apiErr.Message
	default:
		return fiber.StatusInternalServerError, "INTERNAL", err.Error()
	}
}

// writeError responde con dto.ErrorResponse según el error de dominio.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler manejador global de fiber (errores no tratados y *fiber.Error).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
	}
	return writeError(c, err)
}
