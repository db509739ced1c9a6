package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas/internal/domain/sales"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.ProductWriter           = (*ProductRepo)(nil)
	_ repository.PriceRepository         = (*PriceRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.products[id]), nil
}

// Create registra el producto. Código o ID repetido devuelve ErrConflict.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrConflict
	}
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrConflict
		}
	}
	r.s.products[p.ID] = clone(p)
	return nil
}

// Delete quita el producto con sus precios y stock. Con movimientos devuelve ErrConflict.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	for priceID, p := range r.s.prices {
		if p.ProductID == id {
			delete(r.s.prices, priceID)
		}
	}
	delete(r.s.stocks, id)
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// StockRepo stock por producto; con unidad de trabajo lee primero lo pendiente.
type StockRepo struct {
	s *Store
	u *unitOfWork
}

func (r *StockRepo) Get(_ context.Context, productID string) (*entity.Stock, error) {
	if r.u != nil {
		if st, ok := r.u.stocks[productID]; ok {
			return clone(st), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.stocks[productID]; ok {
		return clone(st), nil
	}
	return entity.NewStock(productID), nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	if r.u != nil {
		if err := r.u.lock(ctx, "stock:"+productID); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, productID)
}

func (r *StockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	c := clone(stock)
	if r.u != nil {
		r.u.stocks[c.ProductID] = c
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[c.ProductID] = c
	return nil
}

func (r *StockRepo) List(_ context.Context) ([]*entity.Stock, error) {
	merged := make(map[string]*entity.Stock)
	r.s.mu.RLock()
	for id, st := range r.s.stocks {
		merged[id] = st
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for id, st := range r.u.stocks {
			merged[id] = st
		}
	}
	out := make([]*entity.Stock, 0, len(merged))
	for _, st := range merged {
		out = append(out, clone(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// MovementRepo kardex; solo inserción.
type MovementRepo struct {
	s *Store
	u *unitOfWork
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	c := clone(m)
	if r.u != nil {
		r.u.movements = append(r.u.movements, c)
		r.u.movOrigins = append(r.u.movOrigins, m)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movSeq++
	c.Seq = r.s.movSeq
	m.Seq = c.Seq
	r.s.movements = append(r.s.movements, c)
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.ProductID == productID }), nil
}

func (r *MovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.OrderID == orderID }), nil
}

// All devuelve el kardex confirmado en orden de registro.
func (r *MovementRepo) All() []*entity.StockMovement {
	return r.filter(func(*entity.StockMovement) bool { return true })
}

func (r *MovementRepo) filter(keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	var out []*entity.StockMovement
	r.s.mu.RLock()
	for _, m := range r.s.movements {
		if keep(m) {
			out = append(out, clone(m))
		}
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for _, m := range r.u.movements {
			if keep(m) {
				out = append(out, clone(m))
			}
		}
	}
	return out
}

// PriceRepo precios por producto.
type PriceRepo struct {
	s *Store
	u *unitOfWork
}

func (r *PriceRepo) Create(_ context.Context, p *entity.Price) error {
	c := clone(p)
	if r.u != nil {
		delete(r.u.deleted, c.ID)
		r.u.prices[c.ID] = c
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prices[c.ID] = c
	return nil
}

func (r *PriceRepo) Update(ctx context.Context, p *entity.Price) error {
	existing, _ := r.GetByID(ctx, p.ID)
	if existing == nil {
		return domain.ErrNotFound
	}
	return r.Create(ctx, p)
}

func (r *PriceRepo) Delete(_ context.Context, id string) error {
	if r.u != nil {
		delete(r.u.prices, id)
		r.u.deleted[id] = true
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prices, id)
	return nil
}

func (r *PriceRepo) GetByID(_ context.Context, id string) (*entity.Price, error) {
	if r.u != nil {
		if r.u.deleted[id] {
			return nil, nil
		}
		if p, ok := r.u.prices[id]; ok {
			return clone(p), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.prices[id]), nil
}

func (r *PriceRepo) GetActiveByProduct(ctx context.Context, productID string) (*entity.Price, error) {
	prices, err := r.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, p := range prices {
		if p.IsActive {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PriceRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Price, error) {
	merged := make(map[string]*entity.Price)
	r.s.mu.RLock()
	for id, p := range r.s.prices {
		if p.ProductID == productID {
			merged[id] = p
		}
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for id := range r.u.deleted {
			delete(merged, id)
		}
		for id, p := range r.u.prices {
			if p.ProductID == productID {
				merged[id] = p
			}
		}
	}
	out := make([]*entity.Price, 0, len(merged))
	for _, p := range merged {
		out = append(out, clone(p))
	}
	// activo primero, luego más reciente primero
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsActive != out[j].IsActive {
			return out[i].IsActive
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PriceRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Price, error) {
	if r.u != nil {
		if err := r.u.lock(ctx, "prices:"+productID); err != nil {
			return nil, err
		}
	}
	return r.ListByProduct(ctx, productID)
}

// OrderRepo pedidos con sus líneas y pagos.
type OrderRepo struct {
	s *Store
	u *unitOfWork
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	c := clone(o)
	if r.u != nil {
		r.u.orders[c.ID] = c
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[c.ID] = c
	return nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	existing, _ := r.GetByID(ctx, o.ID)
	if existing == nil {
		return domain.ErrNotFound
	}
	return r.Create(ctx, o)
}

func (r *OrderRepo) CreateLine(_ context.Context, l *entity.OrderLine) error {
	c := clone(l)
	if r.u != nil {
		r.u.lines[c.OrderID] = append(r.u.lines[c.OrderID], c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lines[c.OrderID] = append(r.s.lines[c.OrderID], c)
	return nil
}

func (r *OrderRepo) CreatePayment(_ context.Context, p *entity.Payment) error {
	c := clone(p)
	if r.u != nil {
		r.u.payments[c.OrderID] = append(r.u.payments[c.OrderID], c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[c.OrderID] = append(r.s.payments[c.OrderID], c)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if r.u != nil {
		if o, ok := r.u.orders[id]; ok {
			return clone(o), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.orders[id]), nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if r.u != nil {
		if err := r.u.lock(ctx, "order:"+id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	r.s.mu.RLock()
	out := make([]*entity.OrderLine, 0, len(r.s.lines[orderID]))
	for _, l := range r.s.lines[orderID] {
		out = append(out, clone(l))
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for _, l := range r.u.lines[orderID] {
			out = append(out, clone(l))
		}
	}
	return out, nil
}

func (r *OrderRepo) ListPayments(_ context.Context, orderID string) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	out := make([]*entity.Payment, 0, len(r.s.payments[orderID]))
	for _, p := range r.s.payments[orderID] {
		out = append(out, clone(p))
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for _, p := range r.u.payments[orderID] {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *OrderRepo) all() []*entity.Order {
	merged := make(map[string]*entity.Order)
	r.s.mu.RLock()
	for id, o := range r.s.orders {
		merged[id] = o
	}
	r.s.mu.RUnlock()
	if r.u != nil {
		for id, o := range r.u.orders {
			merged[id] = o
		}
	}
	out := make([]*entity.Order, 0, len(merged))
	for _, o := range merged {
		out = append(out, clone(o))
	}
	return out
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Order
	for _, o := range r.all() {
		if f.From != nil && o.Date.Before(*f.From) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(o.Number), q) && !strings.Contains(strings.ToLower(o.CustomerName), q) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Number > out[j].Number
	})
	return out, nil
}

func (r *OrderRepo) LockSequence(ctx context.Context, docType string) error {
	if r.u == nil {
		return nil
	}
	return r.u.lock(ctx, "seq:"+docType)
}

func (r *OrderRepo) MaxSequence(_ context.Context, docType string) (int, error) {
	var numbers []string
	for _, o := range r.all() {
		if o.DocumentType == docType {
			numbers = append(numbers, o.Number)
		}
	}
	return domainsales.MaxSequence(numbers), nil
}

// UserRepo usuarios.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrConflict
		}
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.users[id]), nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, nil
}

// CustomerRepo clientes.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.customers[id]), nil
}
