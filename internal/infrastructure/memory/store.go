// Package memory implementa los puertos de persistencia en memoria con la misma semántica
// transaccional que PostgreSQL: bloqueos por clave hasta el fin de la tx y escrituras
// que solo se publican en el commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var (
	_ inventory.TxRunner    = (*Store)(nil)
	_ sales.SalesTxRunner   = (*Store)(nil)
	_ pricing.PriceTxRunner = (*Store)(nil)
)

// Store datos confirmados más los bloqueos por clave.
type Store struct {
	mu    sync.RWMutex // protege los mapas confirmados
	locks keyLocks

	movSeq    int64
	products  map[string]*entity.Product
	prices    map[string]*entity.Price
	stocks    map[string]*entity.Stock
	movements []*entity.StockMovement
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine
	payments  map[string][]*entity.Payment
	users     map[string]*entity.User
	customers map[string]*entity.Customer
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		locks:     keyLocks{m: make(map[string]chan struct{})},
		products:  make(map[string]*entity.Product),
		prices:    make(map[string]*entity.Price),
		stocks:    make(map[string]*entity.Stock),
		orders:    make(map[string]*entity.Order),
		lines:     make(map[string][]*entity.OrderLine),
		payments:  make(map[string][]*entity.Payment),
		users:     make(map[string]*entity.User),
		customers: make(map[string]*entity.Customer),
	}
}

// AddProduct registra un producto del catálogo.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = clone(p)
}

// AddCustomer registra un cliente.
func (s *Store) AddCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = clone(c)
}

// Repositorios fuera de transacción (lecturas de lo confirmado, escrituras inmediatas).

func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Prices() *PriceRepo       { return &PriceRepo{s: s} }
func (s *Store) Stocks() *StockRepo       { return &StockRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{s: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Run ejecuta fn con kardex y stock en una unidad de trabajo.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return s.within(ctx, func(u *unitOfWork) error {
		return fn(&MovementRepo{s: s, u: u}, &StockRepo{s: s, u: u})
	})
}

// RunSale ejecuta fn con kardex, stock y pedidos en una unidad de trabajo.
func (s *Store) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return s.within(ctx, func(u *unitOfWork) error {
		return fn(&MovementRepo{s: s, u: u}, &StockRepo{s: s, u: u}, &OrderRepo{s: s, u: u})
	})
}

// RunPricing ejecuta fn con precios en una unidad de trabajo.
func (s *Store) RunPricing(ctx context.Context, fn func(priceRepo repository.PriceRepository) error) error {
	return s.within(ctx, func(u *unitOfWork) error {
		return fn(&PriceRepo{s: s, u: u})
	})
}

func (s *Store) within(ctx context.Context, fn func(u *unitOfWork) error) error {
	u := newUnitOfWork(s)
	defer u.release()
	if err := fn(u); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.commit()
	return nil
}

// keyLocks mutex por clave que respeta la cancelación del contexto.
type keyLocks struct {
	mu sync.Mutex
	m  map[string]chan struct{}
}

func (k *keyLocks) acquire(ctx context.Context, key string) error {
	k.mu.Lock()
	ch, ok := k.m[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.m[key] = ch
	}
	k.mu.Unlock()
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *keyLocks) release(key string) {
	k.mu.Lock()
	ch := k.m[key]
	k.mu.Unlock()
	<-ch
}

// unitOfWork escrituras pendientes y claves bloqueadas de una transacción.
type unitOfWork struct {
	s         *Store
	held      []string
	heldSet   map[string]bool
	stocks    map[string]*entity.Stock
	prices    map[string]*entity.Price
	deleted   map[string]bool
	movements []*entity.StockMovement
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine
	payments  map[string][]*entity.Payment

	movOrigins []*entity.StockMovement // punteros del caller para informar el Seq asignado
}

func newUnitOfWork(s *Store) *unitOfWork {
	return &unitOfWork{
		s:        s,
		heldSet:  make(map[string]bool),
		stocks:   make(map[string]*entity.Stock),
		prices:   make(map[string]*entity.Price),
		deleted:  make(map[string]bool),
		orders:   make(map[string]*entity.Order),
		lines:    make(map[string][]*entity.OrderLine),
		payments: make(map[string][]*entity.Payment),
	}
}

// lock toma la clave hasta el fin de la unidad de trabajo (reentrante).
func (u *unitOfWork) lock(ctx context.Context, key string) error {
	if u.heldSet[key] {
		return nil
	}
	if err := u.s.locks.acquire(ctx, key); err != nil {
		return err
	}
	u.heldSet[key] = true
	u.held = append(u.held, key)
	return nil
}

func (u *unitOfWork) release() {
	for i := len(u.held) - 1; i >= 0; i-- {
		u.s.locks.release(u.held[i])
	}
	u.held = nil
	u.heldSet = map[string]bool{}
}

// commit publica las escrituras pendientes de una sola vez.
func (u *unitOfWork) commit() {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, st := range u.stocks {
		s.stocks[id] = st
	}
	for id := range u.deleted {
		delete(s.prices, id)
	}
	for id, p := range u.prices {
		s.prices[id] = p
	}
	for i, m := range u.movements {
		s.movSeq++
		m.Seq = s.movSeq
		u.movOrigins[i].Seq = m.Seq
		s.movements = append(s.movements, m)
	}
	for id, o := range u.orders {
		s.orders[id] = o
	}
	for id, ls := range u.lines {
		s.lines[id] = append(s.lines[id], ls...)
	}
	for id, ps := range u.payments {
		s.payments[id] = append(s.payments[id], ps...)
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
