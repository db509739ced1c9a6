package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Carts       *sales.CartRegistry
	Customers   repository.CustomerRepository
	Checkout    *sales.CheckoutUseCase
	CancelOrder *sales.CancelOrderUseCase
	Orders      *sales.OrderQueryUseCase
	AdjustStock *inventory.AdjustStockUseCase
	StockQuery  *inventory.StockQueryUseCase
	Prices      *pricing.PriceUseCase
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Auth: login público, alta de usuarios solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", authMW, adminOnly, authHandler.Register)

	// Carrito (uno por usuario)
	cartHandler := NewCartHandler(deps.Carts, deps.Customers)
	cart := api.Group("/cart", authMW)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:lineId", cartHandler.SetQuantity)
	cart.Delete("/items/:lineId", cartHandler.RemoveItem)
	cart.Post("/items/:lineId/increment", cartHandler.Increment)
	cart.Post("/items/:lineId/decrement", cartHandler.Decrement)
	cart.Put("/customer", cartHandler.SetCustomer)
	cart.Put("/document-type", cartHandler.SetDocumentType)

	// Venta e historial
	salesHandler := NewSalesHandler(deps.Carts, deps.Checkout, deps.CancelOrder, deps.Orders)
	api.Post("/sales/checkout", authMW, salesHandler.Checkout)
	orders := api.Group("/orders", authMW)
	orders.Get("/", salesHandler.ListOrders)
	orders.Get("/:id", salesHandler.GetOrder)
	orders.Post("/:id/cancel", salesRoles, salesHandler.CancelOrder)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.StockQuery)
	inv := api.Group("/inventory", authMW)
	inv.Post("/adjustments", stockRoles, inventoryHandler.Adjust)
	inv.Get("/stock", inventoryHandler.ListStock)
	inv.Get("/products/:id/movements", inventoryHandler.Movements)
	inv.Put("/products/:id/thresholds", stockRoles, inventoryHandler.SetThresholds)
	inv.Get("/products/:id/verify", inventoryHandler.Verify)

	// Precios
	priceHandler := NewPriceHandler(deps.Prices)
	api.Get("/products/:id/prices", authMW, priceHandler.ListByProduct)
	api.Post("/products/:id/prices", authMW, adminOnly, priceHandler.Create)
	prices := api.Group("/prices", authMW, adminOnly)
	prices.Put("/:id", priceHandler.Update)
	prices.Post("/:id/activate", priceHandler.Activate)
	prices.Delete("/:id", priceHandler.Delete)
}

// RequestLogger registra método, ruta, status y latencia de cada request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	httpLog := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := httpLog.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = httpLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
