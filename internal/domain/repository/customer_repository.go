package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// CustomerRepository puerto de clientes (solo lectura desde la venta).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
