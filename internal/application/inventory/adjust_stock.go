package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
	"github.com/jhoicas/pos-ventas/pkg/textutil"
)

// AdjustStockInput ajuste manual de stock (fuera de una venta).
type AdjustStockInput struct {
	ProductID string
	Kind      string // IN, OUT o ADJUST
	Quantity  int
	Reason    string
}

// AdjustStockUseCase registra entradas, salidas y ajustes manuales, y actualiza umbrales.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	ledger      *Ledger
	productRepo repository.ProductRepository
	identity    auth.IdentityProvider
	log         *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	ledger *Ledger,
	productRepo repository.ProductRepository,
	identity auth.IdentityProvider,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		identity:    identity,
		log:         log.Component("inventory"),
	}
}

// AdjustStock valida el ajuste y lo registra como un único movimiento en su propia transacción.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.StockMovement, error) {
	switch in.Kind {
	case entity.MovementIN, entity.MovementOUT, entity.MovementADJUST:
	default:
		return nil, domain.ErrInvalidAdjustment
	}
	if in.Quantity <= 0 || in.Quantity > entity.MaxStockQuantity || textutil.IsBlank(in.Reason) {
		return nil, domain.ErrInvalidAdjustment
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	userID, err := auth.ActorID(ctx, uc.identity)
	if err != nil {
		return nil, err
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		var err error
		mov, err = uc.ledger.PostMovementInTx(ctx, movRepo, stockRepo, PostMovementInput{
			ProductID: in.ProductID,
			Kind:      in.Kind,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			UserID:    userID,
		})
		return err
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		return nil, domain.ErrInvalidAdjustment
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Kind).
		Int("quantity", mov.Quantity).
		Int("before", mov.QuantityBefore).
		Int("after", mov.QuantityAfter).
		Msg("ajuste de stock registrado")
	return mov, nil
}

// SetThresholds actualiza el mínimo (y opcionalmente el máximo) del stock de un producto.
func (uc *AdjustStockUseCase) SetThresholds(ctx context.Context, productID string, minimum int, maximum *int) (*entity.Stock, error) {
	if minimum < 0 || (maximum != nil && *maximum < minimum) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	var out *entity.Stock
	err = uc.txRunner.Run(ctx, func(_ repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		stock, err := stockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		stock.Minimum = minimum
		stock.Maximum = maximum
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}
		out = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
