package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

// CartHandler carrito de la venta en curso. Cada usuario autenticado tiene su propio carrito.
type CartHandler struct {
	carts     *sales.CartRegistry
	customers repository.CustomerRepository
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *sales.CartRegistry, customers repository.CustomerRepository) *CartHandler {
	return &CartHandler{carts: carts, customers: customers}
}

func (h *CartHandler) cart(c *fiber.Ctx) *sales.Cart {
	return h.carts.Get(GetUserID(c))
}

func (h *CartHandler) respondCart(c *fiber.Ctx, cart *sales.Cart) error {
	return c.JSON(toCartResponse(cart.Snapshot()))
}

// Get godoc
// @Summary      Ver carrito con totales
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return h.respondCart(c, h.cart(c))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cart := h.cart(c)
	cart.Clear()
	return h.respondCart(c, cart)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma a la línea. Valida precio activo y stock.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddCartItemRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	cart := h.cart(c)
	if _, err := cart.Add(c.UserContext(), in.ProductID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lineId  path  string                  true  "ID de la línea"
// @Param        body    body  dto.SetQuantityRequest  true  "quantity (0 elimina la línea)"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart := h.cart(c)
	if err := cart.SetQuantity(c.UserContext(), c.Params("lineId"), in.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}

// RemoveItem godoc
// @Summary      Quitar línea del carrito
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cart := h.cart(c)
	if err := cart.Remove(c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}

// SetCustomer godoc
// @Summary      Seleccionar cliente del comprobante
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SetCustomerRequest  true  "customer_id (vacío = sin cliente)"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/customer [put]
func (h *CartHandler) SetCustomer(c *fiber.Ctx) error {
	var in dto.SetCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart := h.cart(c)
	if in.CustomerID == "" {
		cart.SetCustomer(nil)
		return h.respondCart(c, cart)
	}
	customer, err := h.customers.GetByID(c.UserContext(), in.CustomerID)
	if err != nil {
		return respondError(c, err)
	}
	if customer == nil {
		return respondError(c, domain.ErrNotFound)
	}
	cart.SetCustomer(customer)
	return h.respondCart(c, cart)
}

// SetDocumentType godoc
// @Summary      Cambiar tipo de comprobante
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SetDocumentTypeRequest  true  "receipt | invoice | ticket"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/document-type [put]
func (h *CartHandler) SetDocumentType(c *fiber.Ctx) error {
	var in dto.SetDocumentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart := h.cart(c)
	if err := cart.SetDocumentType(in.DocumentType); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}

// Increment godoc
// @Summary      Sumar una unidad a la línea
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId}/increment [post]
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	cart := h.cart(c)
	if err := cart.Increment(c.UserContext(), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}

// Decrement godoc
// @Summary      Restar una unidad a la línea (en 1 la elimina)
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId}/decrement [post]
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	cart := h.cart(c)
	if err := cart.Decrement(c.UserContext(), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return h.respondCart(c, cart)
}
