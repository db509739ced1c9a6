package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// Lookup consultas de catálogo usadas por el carrito: precio activo, stock actual y producto.
type Lookup struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	stockRepo   repository.StockRepository
	cache       PriceCache
	ttl         time.Duration
	log         *logger.Logger
}

// NewLookup construye el servicio. Si cache es nil se usa NoopPriceCache.
func NewLookup(
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	stockRepo repository.StockRepository,
	cache PriceCache,
	ttl time.Duration,
	log *logger.Logger,
) *Lookup {
	if cache == nil {
		cache = NoopPriceCache{}
	}
	return &Lookup{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		stockRepo:   stockRepo,
		cache:       cache,
		ttl:         ttl,
		log:         log.Component("catalog"),
	}
}

// GetProduct devuelve el producto o nil si no existe.
func (l *Lookup) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	return l.productRepo.GetByID(ctx, productID)
}

// FindActivePrice devuelve el precio activo del producto o nil si no tiene.
// Un fallo de cache no corta la consulta. La generación se lee antes que la base.
func (l *Lookup) FindActivePrice(ctx context.Context, productID string) (*entity.Price, error) {
	cached, ok, err := l.cache.Get(ctx, productID)
	if err != nil {
		l.log.Warn().Err(err).Str("product_id", productID).Msg("cache de precios no disponible")
	}
	if ok && cached != nil {
		return cached, nil
	}
	gen, genErr := l.cache.Generation(ctx, productID)
	price, err := l.priceRepo.GetActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if price != nil && genErr == nil {
		if err := l.cache.Set(ctx, price, gen, l.ttl); err != nil {
			l.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo cachear el precio")
		}
	}
	return price, nil
}

// CurrentStock devuelve la cantidad disponible (0 si no hay registro).
func (l *Lookup) CurrentStock(ctx context.Context, productID string) (int, error) {
	s, err := l.stockRepo.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return s.Quantity, nil
}

// InvalidateProduct descarta el precio cacheado del producto y avanza su generación.
// Se llama después de confirmar la transacción que cambió los precios.
func (l *Lookup) InvalidateProduct(ctx context.Context, productID string) {
	if err := l.cache.Delete(ctx, productID); err != nil {
		l.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo invalidar el precio cacheado")
	}
}
