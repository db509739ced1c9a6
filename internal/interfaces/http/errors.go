package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP y código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrOrderNotCancellable):
		return fiber.StatusConflict, "ORDER_NOT_CANCELLABLE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInsufficientPayment):
		return fiber.StatusPaymentRequired, "INSUFFICIENT_PAYMENT"
	case errors.Is(err, domain.ErrNoActivePrice):
		return fiber.StatusBadRequest, "NO_ACTIVE_PRICE"
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, domain.ErrInvalidAdjustment):
		return fiber.StatusBadRequest, "INVALID_ADJUSTMENT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el ErrorResponse del error. En INSUFFICIENT_STOCK informa la cantidad disponible.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	if status == fiber.StatusInternalServerError {
		resp.Message = "error interno"
	}
	if n, ok := domain.AvailableStock(err); ok {
		resp.Available = &n
	}
	return c.Status(status).JSON(resp)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
