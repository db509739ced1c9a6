package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

// Periodos del historial de pedidos.
const (
	PeriodAll   = "all"
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// OrderPage página del historial.
type OrderPage struct {
	Orders     []*entity.Order
	Total      int
	SalesTotal decimal.Decimal // suma de los pedidos completados del filtro
}

// OrderQueryUseCase historial y detalle de pedidos.
type OrderQueryUseCase struct {
	orderRepo repository.OrderRepository
	movRepo   repository.StockMovementRepository
	now       func() time.Time
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(orderRepo repository.OrderRepository, movRepo repository.StockMovementRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo, movRepo: movRepo, now: time.Now}
}

// PeriodStart devuelve el inicio del periodo relativo a now (nil = sin límite).
func PeriodStart(period string, now time.Time) (*time.Time, error) {
	var from time.Time
	switch period {
	case "", PeriodAll:
		return nil, nil
	case PeriodToday:
		y, m, d := now.Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	default:
		return nil, domain.ErrInvalidInput
	}
	return &from, nil
}

// List devuelve los pedidos del periodo que coinciden con la búsqueda (número o cliente), más reciente primero.
func (uc *OrderQueryUseCase) List(ctx context.Context, period, search string, limit, offset int) (*OrderPage, error) {
	from, err := PeriodStart(period, uc.now())
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.List(ctx, repository.OrderFilter{From: from, Search: search})
	if err != nil {
		return nil, err
	}
	page := &OrderPage{Total: len(orders), SalesTotal: decimal.Zero}
	for _, o := range orders {
		if o.Status == entity.OrderCompleted {
			page.SalesTotal = page.SalesTotal.Add(o.Total)
		}
	}
	if offset > len(orders) {
		offset = len(orders)
	}
	end := len(orders)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page.Orders = orders[offset:end]
	return page, nil
}

// Get devuelve el pedido con líneas, pagos y movimientos de stock.
func (uc *OrderQueryUseCase) Get(ctx context.Context, id string) (*OrderResult, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.orderRepo.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return &OrderResult{
		Order:     order,
		Lines:     lines,
		Payments:  payments,
		Movements: movs,
		Change:    paid.Sub(order.Total),
	}, nil
}
