package sales

import "sync"

// CartRegistry mantiene un carrito por sesión de venta (por ejemplo, por usuario autenticado).
type CartRegistry struct {
	mu     sync.Mutex
	lookup CatalogLookup
	carts  map[string]*Cart
}

// NewCartRegistry construye el registro.
func NewCartRegistry(lookup CatalogLookup) *CartRegistry {
	return &CartRegistry{lookup: lookup, carts: make(map[string]*Cart)}
}

// Get devuelve el carrito de la sesión, creándolo si no existe.
func (r *CartRegistry) Get(session string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[session]
	if !ok {
		c = NewCart(r.lookup)
		r.carts[session] = c
	}
	return c
}

// Drop descarta el carrito de la sesión.
func (r *CartRegistry) Drop(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, session)
}
