package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var (
	_ inventory.TxRunner    = (*TxRunner)(nil)
	_ sales.SalesTxRunner   = (*TxRunner)(nil)
	_ pricing.PriceTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con kardex y stock atados a la tx (ajustes manuales, umbrales).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewStockRepository(tx))
	})
}

// RunSale ejecuta fn con kardex, stock y pedidos atados a la tx (venta y cancelación).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewStockRepository(tx), NewOrderRepository(tx))
	})
}

// RunPricing ejecuta fn con el repositorio de precios atado a la tx.
func (r *TxRunner) RunPricing(ctx context.Context, fn func(priceRepo repository.PriceRepository) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewPriceRepository(tx))
	})
}

// within inicia la transacción, ejecuta fn y hace Commit; ante error o panic hace Rollback.
func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
