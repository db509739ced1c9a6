package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas/internal/domain/sales"
	"github.com/jhoicas/pos-ventas/pkg/logger"
	"github.com/jhoicas/pos-ventas/pkg/textutil"
)

// PaymentInput pago entregado por el cliente.
type PaymentInput struct {
	Method    string
	Amount    decimal.Decimal
	Reference string
}

// CommitInput datos de cobro para cerrar la venta.
type CommitInput struct {
	Payments []PaymentInput
	Discount decimal.Decimal // descuento global sobre el total (IGV incluido)
	Notes    string
}

// OrderResult pedido persistido con su detalle.
type OrderResult struct {
	Order     *entity.Order
	Lines     []*entity.OrderLine
	Payments  []*entity.Payment
	Movements []*entity.StockMovement
	Change    decimal.Decimal // vuelto: pagado - total
}

// CheckoutUseCase convierte el carrito en un pedido completado, descontando stock y registrando pagos
// en una sola transacción.
type CheckoutUseCase struct {
	txRunner SalesTxRunner
	ledger   InventoryLedger
	identity auth.IdentityProvider
	log      *logger.Logger
	now      func() time.Time
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner SalesTxRunner, ledger InventoryLedger, identity auth.IdentityProvider, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		identity: identity,
		log:      log.Component("sales"),
		now:      time.Now,
	}
}

// CommitSale valida el cobro, numera el comprobante, crea pedido, líneas, movimientos SALE y pagos
// y marca el pedido como completado. Si algo falla no se persiste nada y el carrito queda intacto;
// si todo sale bien el carrito se vacía.
func (uc *CheckoutUseCase) CommitSale(ctx context.Context, cart *Cart, in CommitInput) (*OrderResult, error) {
	snap := cart.Snapshot()
	if len(snap.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(snap.Total) {
		return nil, domain.ErrInvalidInput
	}
	paid := decimal.Zero
	for _, p := range in.Payments {
		if !entity.IsValidPaymentMethod(p.Method) || !p.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		paid = paid.Add(p.Amount)
	}
	total := snap.Total.Sub(in.Discount)
	if paid.LessThan(total) {
		return nil, domain.ErrInsufficientPayment
	}

	userID, err := auth.ActorID(ctx, uc.identity)
	if err != nil {
		return nil, err
	}

	// orden de bloqueo por producto para no cruzarse con otra venta
	lockOrder := make([]string, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lockOrder = append(lockOrder, l.Product.ID)
	}
	sort.Strings(lockOrder)

	now := uc.now()
	res := &OrderResult{}
	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := orderRepo.LockSequence(ctx, snap.DocumentType); err != nil {
			return err
		}
		last, err := orderRepo.MaxSequence(ctx, snap.DocumentType)
		if err != nil {
			return err
		}
		order := &entity.Order{
			ID:           uuid.New().String(),
			Number:       domainsales.FormatOrderNumber(snap.DocumentType, last+1),
			DocumentType: snap.DocumentType,
			Date:         now,
			Status:       entity.OrderPending,
			SellerID:     userID,
			CashierID:    userID,
			Notes:        textutil.Clean(in.Notes),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if snap.Customer != nil {
			order.CustomerID = snap.Customer.ID
			order.CustomerName = textutil.Clean(snap.Customer.Name)
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for _, productID := range lockOrder {
			if _, err := stockRepo.GetForUpdate(ctx, productID); err != nil {
				return err
			}
		}

		reason := "Venta " + order.Number
		for _, cl := range snap.Lines {
			line := &entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: cl.Product.ID,
				PriceID:   cl.Price.ID,
				Quantity:  cl.Quantity,
				UnitPrice: cl.Price.UnitPrice,
				Discount:  decimal.Zero,
				UnitCost:  cl.Price.NetCost,
			}
			line.CalculateSubtotal()
			if err := orderRepo.CreateLine(ctx, line); err != nil {
				return err
			}
			mov, err := uc.ledger.PostMovementInTx(ctx, movRepo, stockRepo, inventory.PostMovementInput{
				ProductID: cl.Product.ID,
				Kind:      entity.MovementSALE,
				Quantity:  cl.Quantity,
				Reason:    reason,
				UserID:    userID,
				OrderID:   order.ID,
			})
			if err != nil {
				return err
			}
			res.Lines = append(res.Lines, line)
			res.Movements = append(res.Movements, mov)
		}

		for _, p := range in.Payments {
			pay := &entity.Payment{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				Method:    p.Method,
				Amount:    p.Amount,
				Reference: textutil.Clean(p.Reference),
				CreatedAt: now,
			}
			if err := orderRepo.CreatePayment(ctx, pay); err != nil {
				return err
			}
			res.Payments = append(res.Payments, pay)
		}

		domainsales.ApplyTotals(order, domainsales.ComputeTotals(res.Lines, in.Discount))
		order.Status = entity.OrderCompleted
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		res.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart.clearAfterCommit(snap.version)
	res.Change = paid.Sub(res.Order.Total)
	uc.log.Info().
		Str("order", res.Order.Number).
		Str("total", res.Order.Total.StringFixed(2)).
		Str("tax", res.Order.Tax.StringFixed(2)).
		Int("lines", len(res.Lines)).
		Str("user_id", userID).
		Msg("venta registrada")
	return res, nil
}
