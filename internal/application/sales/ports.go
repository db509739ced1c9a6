package sales

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

// SalesTxRunner ejecuta fn en una transacción con los repos de kardex, stock y pedidos.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// InventoryLedger registra movimientos de stock dentro de la transacción del caller.
type InventoryLedger interface {
	PostMovementInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		in inventory.PostMovementInput,
	) (*entity.StockMovement, error)
}

// CatalogLookup consultas de catálogo que hace el carrito (validaciones previas, no bloqueantes).
type CatalogLookup interface {
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	FindActivePrice(ctx context.Context, productID string) (*entity.Price, error)
	CurrentStock(ctx context.Context, productID string) (int, error)
}
