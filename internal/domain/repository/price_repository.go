package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// PriceRepository puerto de persistencia de precios.
type PriceRepository interface {
	Create(ctx context.Context, p *entity.Price) error
	Update(ctx context.Context, p *entity.Price) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Price, error)
	// GetActiveByProduct devuelve el precio activo o nil si no hay ninguno.
	GetActiveByProduct(ctx context.Context, productID string) (*entity.Price, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Price, error)
	// ListByProductForUpdate bloquea el conjunto de precios del producto hasta el fin de la tx.
	ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Price, error)
}
