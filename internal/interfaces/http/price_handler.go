package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
)

// PriceHandler precios de venta por producto.
type PriceHandler struct {
	uc *pricing.PriceUseCase
}

// NewPriceHandler construye el handler de precios.
func NewPriceHandler(uc *pricing.PriceUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Precios del producto (activo primero)
// @Tags         prices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.PriceResponse
// @Router       /api/products/{id}/prices [get]
func (h *PriceHandler) ListByProduct(c *fiber.Ctx) error {
	prices, err := h.uc.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, toPriceResponse(p))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear precio
// @Description  Si is_active es true desactiva los demás precios del producto en la misma transacción.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "ID del producto"
// @Param        body  body  dto.PriceRequest  true  "precio"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/prices [post]
func (h *PriceHandler) Create(c *fiber.Ctx) error {
	var in dto.PriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	price, err := h.uc.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPriceResponse(price))
}

// Update godoc
// @Summary      Actualizar precio
// @Tags         prices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "ID del precio"
// @Param        body  body  dto.PriceRequest  true  "precio"
// @Success      200   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [put]
func (h *PriceHandler) Update(c *fiber.Ctx) error {
	var in dto.PriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	price, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPriceResponse(price))
}

// Activate godoc
// @Summary      Activar precio
// @Tags         prices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del precio"
// @Success      200  {object}  dto.PriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/{id}/activate [post]
func (h *PriceHandler) Activate(c *fiber.Ctx) error {
	price, err := h.uc.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPriceResponse(price))
}

// Delete godoc
// @Summary      Eliminar precio
// @Tags         prices
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del precio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [delete]
func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
