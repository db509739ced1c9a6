package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// PriceUseCase administra los precios de un producto garantizando un único precio activo.
type PriceUseCase struct {
	txRunner    PriceTxRunner
	priceRepo   repository.PriceRepository
	productRepo repository.ProductRepository
	cache       CacheInvalidator
	log         *logger.Logger
}

// NewPriceUseCase construye el caso de uso. cache puede ser nil.
func NewPriceUseCase(
	txRunner PriceTxRunner,
	priceRepo repository.PriceRepository,
	productRepo repository.ProductRepository,
	cache CacheInvalidator,
	log *logger.Logger,
) *PriceUseCase {
	return &PriceUseCase{
		txRunner:    txRunner,
		priceRepo:   priceRepo,
		productRepo: productRepo,
		cache:       cache,
		log:         log.Component("pricing"),
	}
}

// ListByProduct devuelve los precios del producto.
func (uc *PriceUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Price, error) {
	return uc.priceRepo.ListByProduct(ctx, productID)
}

// Create registra un precio. Si viene activo, los demás precios del producto se desactivan en la misma tx.
func (uc *PriceUseCase) Create(ctx context.Context, productID string, in dto.PriceRequest) (*entity.Price, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	price := &entity.Price{ID: uuid.New().String(), ProductID: productID, CreatedAt: now}
	apply(price, in, now)

	err = uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		siblings, err := priceRepo.ListByProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if price.IsActive {
			if err := deactivate(ctx, priceRepo, siblings, "", now); err != nil {
				return err
			}
		}
		return priceRepo.Create(ctx, price)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, productID)
	return price, nil
}

// Update modifica un precio. Si queda activo, los demás del producto se desactivan en la misma tx.
func (uc *PriceUseCase) Update(ctx context.Context, priceID string, in dto.PriceRequest) (*entity.Price, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	current, err := uc.priceRepo.GetByID(ctx, priceID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	var out *entity.Price
	err = uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		siblings, err := priceRepo.ListByProductForUpdate(ctx, current.ProductID)
		if err != nil {
			return err
		}
		target := find(siblings, priceID)
		if target == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if in.IsActive {
			if err := deactivate(ctx, priceRepo, siblings, priceID, now); err != nil {
				return err
			}
		}
		apply(target, in, now)
		if err := priceRepo.Update(ctx, target); err != nil {
			return err
		}
		out = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, out.ProductID)
	return out, nil
}

// Activate deja priceID como único precio activo de su producto.
func (uc *PriceUseCase) Activate(ctx context.Context, priceID string) (*entity.Price, error) {
	current, err := uc.priceRepo.GetByID(ctx, priceID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	var out *entity.Price
	err = uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		siblings, err := priceRepo.ListByProductForUpdate(ctx, current.ProductID)
		if err != nil {
			return err
		}
		target := find(siblings, priceID)
		if target == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := deactivate(ctx, priceRepo, siblings, priceID, now); err != nil {
			return err
		}
		if !target.IsActive {
			target.IsActive = true
			target.UpdatedAt = now
			if err := priceRepo.Update(ctx, target); err != nil {
				return err
			}
		}
		out = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, out.ProductID)
	uc.log.Info().Str("product_id", out.ProductID).Str("price_id", out.ID).
		Str("unit_price", out.UnitPrice.StringFixed(2)).Msg("precio activado")
	return out, nil
}

// Delete elimina un precio. Si era el activo el producto queda sin precio activo.
func (uc *PriceUseCase) Delete(ctx context.Context, priceID string) error {
	current, err := uc.priceRepo.GetByID(ctx, priceID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	err = uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		if _, err := priceRepo.ListByProductForUpdate(ctx, current.ProductID); err != nil {
			return err
		}
		return priceRepo.Delete(ctx, priceID)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, current.ProductID)
	return nil
}

func (uc *PriceUseCase) invalidate(ctx context.Context, productID string) {
	if uc.cache != nil {
		uc.cache.InvalidateProduct(ctx, productID)
	}
}

// deactivate desactiva los precios activos distintos de exceptID.
func deactivate(ctx context.Context, priceRepo repository.PriceRepository, prices []*entity.Price, exceptID string, now time.Time) error {
	for _, p := range prices {
		if p.ID == exceptID || !p.IsActive {
			continue
		}
		p.IsActive = false
		p.UpdatedAt = now
		if err := priceRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func find(prices []*entity.Price, id string) *entity.Price {
	for _, p := range prices {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func validate(in dto.PriceRequest) error {
	if !in.UnitPrice.IsPositive() {
		return domain.ErrInvalidInput
	}
	for _, d := range []decimal.Decimal{in.WholesalePrice, in.NetCost, in.BaseCost, in.Discount1, in.Discount2, in.Discount3} {
		if d.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if in.MinimumUnit < 0 || in.PurchaseUnit < 0 || in.BonusUnit < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func apply(p *entity.Price, in dto.PriceRequest, now time.Time) {
	p.UnitPrice = in.UnitPrice
	p.WholesalePrice = in.WholesalePrice
	p.NetCost = in.NetCost
	p.BaseCost = in.BaseCost
	p.MinimumUnit = in.MinimumUnit
	if p.MinimumUnit == 0 {
		p.MinimumUnit = 1
	}
	p.PurchaseUnit = in.PurchaseUnit
	if p.PurchaseUnit == 0 {
		p.PurchaseUnit = 1
	}
	p.BonusUnit = in.BonusUnit
	p.Discount1 = in.Discount1
	p.Discount2 = in.Discount2
	p.Discount3 = in.Discount3
	p.IsActive = in.IsActive
	p.UpdatedAt = now
}
