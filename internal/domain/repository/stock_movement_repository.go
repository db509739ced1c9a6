package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// StockMovementRepository puerto del kardex (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByProduct devuelve los movimientos en orden de registro (más antiguo primero).
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error)
}
