package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// InventoryHandler ajustes de stock, umbrales, kardex y verificación.
type InventoryHandler struct {
	adjust *inventory.AdjustStockUseCase
	query  *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, query *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, query: query}
}

// Adjust godoc
// @Summary      Registrar entrada, salida o ajuste de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, type (IN|OUT|ADJUST), quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.adjust.AdjustStock(c.UserContext(), inventory.AdjustStockInput{
		ProductID: in.ProductID,
		Kind:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponses([]*entity.StockMovement{mov})[0])
}

// ListStock godoc
// @Summary      Stock de productos activos
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query  string  false  "all | low | noStock"
// @Param        search  query  string  false  "código o descripción"
// @Success      200     {array}   dto.StockResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	views, err := h.query.List(c.UserContext(), c.Query("filter"), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toStockResponse(v.Product, v.Stock))
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Kardex del producto (más recientes primero)
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.query.Movements(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// SetThresholds godoc
// @Summary      Cambiar mínimo y máximo de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del producto"
// @Param        body  body  dto.ThresholdsRequest  true  "minimum, maximum"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/thresholds [put]
func (h *InventoryHandler) SetThresholds(c *fiber.Ctx) error {
	var in dto.ThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	stock, err := h.adjust.SetThresholds(c.UserContext(), c.Params("id"), in.Minimum, in.Maximum)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(nil, stock))
}

// Verify godoc
// @Summary      Reconstruir el stock desde el kardex
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/verify [get]
func (h *InventoryHandler) Verify(c *fiber.Ctx) error {
	check, err := h.query.Verify(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerCheckResponse(check))
}
