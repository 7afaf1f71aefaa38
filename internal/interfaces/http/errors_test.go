package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vin/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.NewValidationError("name is required"), fiber.StatusBadRequest},
		{fmt.Errorf("%w: check", domain.ErrInvalidInput), fiber.StatusBadRequest},
		{fmt.Errorf("tx: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrInsufficientStock, fiber.StatusConflict},
		{domain.ErrNotConfigured, fiber.StatusServiceUnavailable},
		{&domain.ExternalAPIError{Message: "down"}, fiber.StatusBadGateway},
		{errors.New("db exploded"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _, _ := errorStatus(tc.err)
		assert.Equal(t, tc.code, status, tc.err.Error())
	}
}
