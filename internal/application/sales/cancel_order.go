package sales

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// CancelOrderUseCase anula un pedido devolviendo al stock lo vendido.
type CancelOrderUseCase struct {
	txRunner SalesTxRunner
	ledger   InventoryLedger
	identity auth.IdentityProvider
	log      *logger.Logger
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner SalesTxRunner, ledger InventoryLedger, identity auth.IdentityProvider, log *logger.Logger) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		identity: identity,
		log:      log.Component("sales"),
	}
}

// CancelOrder registra un RETURN por cada movimiento SALE del pedido y lo marca cancelado.
// Solo pedidos completados o pendientes; uno ya cancelado devuelve ErrOrderNotCancellable.
func (uc *CancelOrderUseCase) CancelOrder(ctx context.Context, orderID string) (*OrderResult, error) {
	userID, err := auth.ActorID(ctx, uc.identity)
	if err != nil {
		return nil, err
	}
	res := &OrderResult{}
	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsCancellable() {
			return domain.ErrOrderNotCancellable
		}
		movs, err := movRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		sales := make([]*entity.StockMovement, 0, len(movs))
		for _, m := range movs {
			if m.Kind == entity.MovementSALE {
				sales = append(sales, m)
			}
		}
		sort.SliceStable(sales, func(i, j int) bool { return sales[i].ProductID < sales[j].ProductID })

		reason := "Cancelación de " + order.Number
		for _, m := range sales {
			ret, err := uc.ledger.PostMovementInTx(ctx, movRepo, stockRepo, inventory.PostMovementInput{
				ProductID: m.ProductID,
				Kind:      entity.MovementRETURN,
				Quantity:  m.Quantity,
				Reason:    reason,
				UserID:    userID,
				OrderID:   order.ID,
			})
			if err != nil {
				return err
			}
			res.Movements = append(res.Movements, ret)
		}
		order.Status = entity.OrderCancelled
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		res.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order", res.Order.Number).
		Int("returns", len(res.Movements)).
		Str("user_id", userID).
		Msg("pedido cancelado")
	return res, nil
}
