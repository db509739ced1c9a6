package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// PriceCache guarda el precio activo por producto.
//
// Cada producto tiene una generación que Delete incrementa. Set solo guarda si la
// generación sigue siendo la leída antes de consultar la base, así una lectura que
// vio el precio anterior no puede repoblar la cache después de una invalidación.
type PriceCache interface {
	Get(ctx context.Context, productID string) (*entity.Price, bool, error)
	Generation(ctx context.Context, productID string) (int64, error)
	Set(ctx context.Context, price *entity.Price, generation int64, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}

// NoopPriceCache no guarda nada; cada consulta va al repositorio.
type NoopPriceCache struct{}

func (NoopPriceCache) Get(_ context.Context, _ string) (*entity.Price, bool, error) {
	return nil, false, nil
}

func (NoopPriceCache) Generation(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (NoopPriceCache) Set(_ context.Context, _ *entity.Price, _ int64, _ time.Duration) error {
	return nil
}

func (NoopPriceCache) Delete(_ context.Context, _ string) error {
	return nil
}
