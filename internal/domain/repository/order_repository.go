package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// OrderFilter filtro para el historial de pedidos.
type OrderFilter struct {
	From   *time.Time
	Search string // número de comprobante o nombre de cliente
}

// OrderRepository puerto de persistencia de pedidos, líneas y pagos.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	Update(ctx context.Context, o *entity.Order) error
	CreateLine(ctx context.Context, l *entity.OrderLine) error
	CreatePayment(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea el pedido hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	ListPayments(ctx context.Context, orderID string) ([]*entity.Payment, error)
	// List devuelve los pedidos del filtro, más reciente primero.
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	// LockSequence serializa la numeración de un tipo de comprobante hasta el fin de la tx.
	LockSequence(ctx context.Context, docType string) error
	// MaxSequence devuelve el mayor correlativo emitido para el tipo (0 si no hay).
	MaxSequence(ctx context.Context, docType string) (int, error)
}
