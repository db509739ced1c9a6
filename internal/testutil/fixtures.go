// Package testutil arma un entorno en memoria con catálogo, precios y stock para las pruebas.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/catalog"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// Env casos de uso conectados a un Store en memoria.
type Env struct {
	Store    *memory.Store
	Identity *auth.ContextIdentity
	Ledger   *inventory.Ledger
	Lookup   *catalog.Lookup
	Adjust   *inventory.AdjustStockUseCase
	Stock    *inventory.StockQueryUseCase
	Prices   *pricing.PriceUseCase
	Checkout *sales.CheckoutUseCase
	Cancel   *sales.CancelOrderUseCase
	Orders   *sales.OrderQueryUseCase
	Carts    *sales.CartRegistry

	seq int
}

// NewEnv construye el entorno.
func NewEnv() *Env {
	store := memory.NewStore()
	log := logger.Nop()
	identity := auth.NewContextIdentity(store.Users())
	ledger := inventory.NewLedger()
	lookup := catalog.NewLookup(store.Products(), store.Prices(), store.Stocks(), nil, time.Minute, log)
	return &Env{
		Store:    store,
		Identity: identity,
		Ledger:   ledger,
		Lookup:   lookup,
		Adjust:   inventory.NewAdjustStockUseCase(store, ledger, store.Products(), identity, log),
		Stock:    inventory.NewStockQueryUseCase(store.Products(), store.Stocks(), store.Movements()),
		Prices:   pricing.NewPriceUseCase(store, store.Prices(), store.Products(), lookup, log),
		Checkout: sales.NewCheckoutUseCase(store, ledger, identity, log),
		Cancel:   sales.NewCancelOrderUseCase(store, ledger, identity, log),
		Orders:   sales.NewOrderQueryUseCase(store.Orders(), store.Movements()),
		Carts:    sales.NewCartRegistry(lookup),
	}
}

// Product crea un producto activo con precio activo y stock inicial (vía kardex).
func (e *Env) Product(t testing.TB, unitPrice, netCost string, stock int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	e.seq++
	p := &entity.Product{
		ID:          fmt.Sprintf("prod-%03d", e.seq),
		Code:        entity.ProductCode(e.seq),
		Description: fmt.Sprintf("Producto %d", e.seq),
		Active:      true,
		CreatedAt:   time.Now(),
	}
	e.Store.AddProduct(p)
	if unitPrice != "" {
		_, err := e.Prices.Create(ctx, p.ID, PriceRequest(unitPrice, netCost, true))
		require.NoError(t, err)
	}
	if stock > 0 {
		_, err := e.Adjust.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: p.ID, Kind: entity.MovementIN, Quantity: stock, Reason: "Stock inicial",
		})
		require.NoError(t, err)
	}
	return p
}

// User registra un usuario y devuelve el contexto autenticado con él.
func (e *Env) User(t testing.TB, email, role string) (context.Context, *entity.User) {
	t.Helper()
	u := &entity.User{ID: "user-" + email, Email: email, Name: email, Role: role, Active: true}
	require.NoError(t, e.Store.Users().Create(context.Background(), u))
	return auth.WithUserID(context.Background(), u.ID), u
}

// Qty devuelve el stock actual del producto.
func (e *Env) Qty(t testing.TB, productID string) int {
	t.Helper()
	st, err := e.Store.Stocks().Get(context.Background(), productID)
	require.NoError(t, err)
	return st.Quantity
}

// Dec atajo para decimales literales.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Cash pago en efectivo.
func Cash(amount string) sales.PaymentInput {
	return sales.PaymentInput{Method: entity.PaymentCash, Amount: Dec(amount)}
}
