package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-ventas/internal/domain/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/textutil"
)

// PostMovementInput datos de un movimiento del kardex.
type PostMovementInput struct {
	ProductID string
	Kind      string
	Quantity  int
	Reason    string
	UserID    string // vacío = anónimo
	OrderID   string // vacío si no proviene de un pedido
}

// Ledger registra movimientos de stock. Es el único que modifica Stock.Quantity.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el kardex con el reloj del sistema.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	return &Ledger{now: now}
}

// PostMovementInTx bloquea la fila de stock (GetForUpdate), valida la salida, actualiza la cantidad
// y guarda el movimiento con la foto antes/después. Usa los repos del caller (misma transacción).
func (l *Ledger) PostMovementInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	in PostMovementInput,
) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.Quantity > entity.MaxStockQuantity || !entity.IsValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if entity.IsDecrease(in.Kind) && in.Quantity > stock.Quantity {
		return nil, domain.NewInsufficientStock(in.ProductID, stock.Quantity)
	}
	if (in.Kind == entity.MovementIN || in.Kind == entity.MovementRETURN) && in.Quantity > entity.MaxStockQuantity-stock.Quantity {
		return nil, domain.ErrInvalidInput
	}

	now := l.now()
	before := stock.Quantity
	stock.Quantity = domaininv.NextQuantity(in.Kind, before, in.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Kind:           in.Kind,
		Quantity:       in.Quantity,
		QuantityBefore: before,
		QuantityAfter:  stock.Quantity,
		Reason:         textutil.Clean(in.Reason),
		UserID:         in.UserID,
		OrderID:        in.OrderID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
