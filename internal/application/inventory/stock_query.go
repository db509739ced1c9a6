package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-ventas/internal/domain/inventory"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/pkg/textutil"
)

// Filtros del listado de stock.
const (
	StockFilterAll     = "all"
	StockFilterLow     = "low"
	StockFilterNoStock = "noStock"
)

// StockView stock de un producto junto a sus datos de catálogo.
type StockView struct {
	Product *entity.Product
	Stock   *entity.Stock
}

// LedgerCheck resultado de reconstruir el stock desde el kardex.
type LedgerCheck struct {
	ProductID  string
	Balance    int
	Replayed   int
	Movements  int
	BrokenAt   int // -1 si la cadena antes/después es continua
	Consistent bool
}

// StockQueryUseCase consultas de stock y kardex.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, stockRepo: stockRepo, movRepo: movRepo}
}

// List devuelve el stock de los productos activos según el filtro (all, low, noStock).
// search, si no está vacío, filtra por código o descripción sin distinguir mayúsculas.
func (uc *StockQueryUseCase) List(ctx context.Context, filter, search string) ([]StockView, error) {
	if filter == "" {
		filter = StockFilterAll
	}
	if filter != StockFilterAll && filter != StockFilterLow && filter != StockFilterNoStock {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(textutil.Clean(search))
	byProduct := make(map[string]*entity.Stock, len(stocks))
	for _, s := range stocks {
		byProduct[s.ProductID] = s
	}

	out := make([]StockView, 0, len(products))
	for _, p := range products {
		if !p.Active || !matchesProduct(p, term) {
			continue
		}
		s, ok := byProduct[p.ID]
		if !ok {
			s = entity.NewStock(p.ID)
		}
		switch filter {
		case StockFilterLow:
			if s.Status() != entity.StockStatusLow {
				continue
			}
		case StockFilterNoStock:
			if s.Status() != entity.StockStatusNoStock {
				continue
			}
		}
		out = append(out, StockView{Product: p, Stock: s})
	}
	return out, nil
}

func matchesProduct(p *entity.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Code), term) ||
		strings.Contains(strings.ToLower(textutil.Clean(p.Description)), term)
}

// Movements devuelve el kardex del producto, más reciente primero.
func (uc *StockQueryUseCase) Movements(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movs, func(i, j int) bool { return movs[i].Seq > movs[j].Seq })
	return movs, nil
}

// Verify reconstruye la cantidad del producto desde su kardex y la compara con el saldo guardado.
func (uc *StockQueryUseCase) Verify(ctx context.Context, productID string) (*LedgerCheck, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	replayed := domaininv.Replay(movs)
	broken := domaininv.CheckChain(movs)
	return &LedgerCheck{
		ProductID:  productID,
		Balance:    stock.Quantity,
		Replayed:   replayed,
		Movements:  len(movs),
		BrokenAt:   broken,
		Consistent: broken == -1 && replayed == stock.Quantity,
	}, nil
}
