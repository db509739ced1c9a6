package pricing

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

// PriceTxRunner ejecuta fn en una transacción con el repositorio de precios atado a ella.
type PriceTxRunner interface {
	RunPricing(ctx context.Context, fn func(priceRepo repository.PriceRepository) error) error
}

// CacheInvalidator descarta el precio activo cacheado de un producto.
type CacheInvalidator interface {
	InvalidateProduct(ctx context.Context, productID string)
}
