package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// ProductRepository puerto del catálogo de productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// ProductWriter alta de productos (importación del catálogo).
// Delete solo procede si el producto no tiene movimientos; arrastra sus precios y su stock.
type ProductWriter interface {
	Create(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
