package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
)

// SalesHandler cobro del carrito e historial de pedidos.
type SalesHandler struct {
	carts    *sales.CartRegistry
	checkout *sales.CheckoutUseCase
	cancel   *sales.CancelOrderUseCase
	orders   *sales.OrderQueryUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(carts *sales.CartRegistry, checkout *sales.CheckoutUseCase, cancel *sales.CancelOrderUseCase, orders *sales.OrderQueryUseCase) *SalesHandler {
	return &SalesHandler{carts: carts, checkout: checkout, cancel: cancel, orders: orders}
}

// Checkout godoc
// @Summary      Cobrar el carrito
// @Description  Numera el comprobante, descuenta stock y registra los pagos en una sola transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CheckoutRequest  true  "pagos, descuento y notas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/checkout [post]
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	commit := sales.CommitInput{Discount: in.Discount, Notes: in.Notes}
	for _, p := range in.Payments {
		commit.Payments = append(commit.Payments, sales.PaymentInput{Method: p.Method, Amount: p.Amount, Reference: p.Reference})
	}
	res, err := h.checkout.CommitSale(c.UserContext(), h.carts.Get(GetUserID(c)), commit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderDetailResponse(res))
}

// ListOrders godoc
// @Summary      Historial de pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "all | today | week | month"
// @Param        search  query  string  false  "número o cliente"
// @Param        limit   query  int     false  "límite"  default(20)
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200     {object}  dto.OrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *SalesHandler) ListOrders(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.orders.List(c.UserContext(), c.Query("period", sales.PeriodAll), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.OrderListResponse{
		Orders:     make([]dto.OrderResponse, 0, len(out.Orders)),
		SalesTotal: out.SalesTotal,
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: out.Total},
	}
	for _, o := range out.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	return c.JSON(resp)
}

// GetOrder godoc
// @Summary      Detalle de pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *SalesHandler) GetOrder(c *fiber.Ctx) error {
	res, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderDetailResponse(res))
}

// CancelOrder godoc
// @Summary      Anular pedido
// @Description  Repone el stock con movimientos RETURN y marca el pedido como anulado.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *SalesHandler) CancelOrder(c *fiber.Ctx) error {
	res, err := h.cancel.CancelOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderDetailResponse(res))
}
