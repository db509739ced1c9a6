package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// Catalog productos existentes y alta de nuevos.
type Catalog interface {
	repository.ProductRepository
	repository.ProductWriter
}

// Result resumen de la importación.
type Result struct {
	Created int
	Skipped int // descripción ya existente en el catálogo
}

// Importer da de alta cada fila como producto con código correlativo, precio activo y stock inicial vía kardex.
type Importer struct {
	products Catalog
	prices   *pricing.PriceUseCase
	adjust   *inventory.AdjustStockUseCase
	log      *logger.Logger
}

// New construye el importador.
func New(products Catalog, prices *pricing.PriceUseCase, adjust *inventory.AdjustStockUseCase, log *logger.Logger) *Importer {
	return &Importer{products: products, prices: prices, adjust: adjust, log: log.Component("importer")}
}

// Import procesa las filas en orden. Se detiene en el primer error: las filas anteriores quedan
// importadas y el producto de la fila fallida se elimina junto con su precio y umbrales.
func (im *Importer) Import(ctx context.Context, rows []Row) (*Result, error) {
	existing, err := im.products.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Description)] = true
	}
	seq := len(existing)
	res := &Result{}

	for _, row := range rows {
		key := strings.ToLower(row.Description)
		if known[key] {
			res.Skipped++
			continue
		}
		seq++
		now := time.Now()
		p := &entity.Product{
			ID:          uuid.New().String(),
			Code:        entity.ProductCode(seq),
			Description: row.Description,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := im.products.Create(ctx, p); err != nil {
			return res, fmt.Errorf("línea %d: crear producto: %w", row.Line, err)
		}
		_, err := im.prices.Create(ctx, p.ID, dto.PriceRequest{UnitPrice: row.UnitPrice, NetCost: row.NetCost, IsActive: true})
		if err != nil {
			return res, im.discard(ctx, p.ID, fmt.Errorf("línea %d: precio: %w", row.Line, err))
		}
		if row.Minimum > 0 {
			if _, err := im.adjust.SetThresholds(ctx, p.ID, row.Minimum, nil); err != nil {
				return res, im.discard(ctx, p.ID, fmt.Errorf("línea %d: mínimo: %w", row.Line, err))
			}
		}
		if row.Stock > 0 {
			_, err := im.adjust.AdjustStock(ctx, inventory.AdjustStockInput{
				ProductID: p.ID, Kind: entity.MovementIN, Quantity: row.Stock, Reason: "Stock inicial",
			})
			if err != nil {
				return res, im.discard(ctx, p.ID, fmt.Errorf("línea %d: stock: %w", row.Line, err))
			}
		}
		known[key] = true
		res.Created++
	}
	im.log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("catálogo importado")
	return res, nil
}

// discard elimina el producto de una fila que no terminó de importarse.
func (im *Importer) discard(ctx context.Context, productID string, cause error) error {
	if err := im.products.Delete(ctx, productID); err != nil {
		im.log.Error().Err(err).Str("product_id", productID).Msg("no se pudo eliminar el producto incompleto")
	}
	return cause
}
