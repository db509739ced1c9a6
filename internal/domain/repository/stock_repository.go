package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// StockRepository puerto para el stock actual por producto.
// Get y GetForUpdate devuelven un registro vacío (mínimo por defecto) si el producto aún no tiene fila.
type StockRepository interface {
	Get(ctx context.Context, productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context) ([]*entity.Stock, error)
}
