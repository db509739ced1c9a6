package sales

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	domainsales "github.com/jhoicas/pos-ventas/internal/domain/sales"
)

// CartLine línea del carrito con el producto y el precio vigentes al agregarla.
type CartLine struct {
	ID       string
	Product  entity.Product
	Price    entity.Price
	Quantity int
}

// Subtotal devuelve precio * cantidad (IGV incluido).
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot copia inmutable del carrito con sus totales.
type CartSnapshot struct {
	Lines        []CartLine
	Customer     *entity.Customer
	DocumentType string
	Subtotal     decimal.Decimal // suma de líneas, IGV incluido
	TaxBase      decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	ItemCount    int
	version      uint64
}

// Cart carrito de una venta en curso. Vive solo en memoria; nada se persiste hasta CommitSale.
// Las validaciones de precio y stock son preventivas: la venta las repite con bloqueo.
type Cart struct {
	mu       sync.Mutex
	lookup   CatalogLookup
	lines    []*CartLine
	customer *entity.Customer
	docType  string
	version  uint64
}

// NewCart crea un carrito vacío de tipo boleta.
func NewCart(lookup CatalogLookup) *Cart {
	return &Cart{lookup: lookup, docType: entity.DocumentReceipt}
}

// Add agrega quantity unidades del producto. Si ya está en el carrito suma a la línea existente
// y valida el stock contra la cantidad combinada.
func (c *Cart) Add(ctx context.Context, productID string, quantity int) (*CartLine, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	product, err := c.lookup.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	price, err := c.lookup.FindActivePrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, domain.ErrNoActivePrice
	}
	available, err := c.lookup.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	if line := c.findByProduct(productID); line != nil {
		if quantity > available-line.Quantity {
			return nil, domain.NewInsufficientStock(productID, available)
		}
		line.Quantity += quantity
		c.version++
		out := *line
		return &out, nil
	}
	if quantity > available {
		return nil, domain.NewInsufficientStock(productID, available)
	}
	line := &CartLine{
		ID:       uuid.New().String(),
		Product:  *product,
		Price:    *price,
		Quantity: quantity,
	}
	c.lines = append(c.lines, line)
	c.version++
	out := *line
	return &out, nil
}

// SetQuantity fija la cantidad de una línea. n <= 0 elimina la línea.
func (c *Cart) SetQuantity(ctx context.Context, lineID string, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setQuantity(ctx, lineID, n)
}

// Increment suma una unidad a la línea.
func (c *Cart) Increment(ctx context.Context, lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.findByID(lineID)
	if line == nil {
		return domain.ErrNotFound
	}
	return c.setQuantity(ctx, lineID, line.Quantity+1)
}

// Decrement resta una unidad; en 1 elimina la línea.
func (c *Cart) Decrement(ctx context.Context, lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.findByID(lineID)
	if line == nil {
		return domain.ErrNotFound
	}
	return c.setQuantity(ctx, lineID, line.Quantity-1)
}

func (c *Cart) setQuantity(ctx context.Context, lineID string, n int) error {
	line := c.findByID(lineID)
	if line == nil {
		return domain.ErrNotFound
	}
	if n <= 0 {
		c.removeLocked(lineID)
		return nil
	}
	available, err := c.lookup.CurrentStock(ctx, line.Product.ID)
	if err != nil {
		return err
	}
	if n > available {
		return domain.NewInsufficientStock(line.Product.ID, available)
	}
	line.Quantity = n
	c.version++
	return nil
}

// Remove quita la línea. Devuelve ErrNotFound si no existe.
func (c *Cart) Remove(lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.removeLocked(lineID) {
		return domain.ErrNotFound
	}
	return nil
}

func (c *Cart) removeLocked(lineID string) bool {
	for i, l := range c.lines {
		if l.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.version++
			return true
		}
	}
	return false
}

// Clear vacía el carrito y quita el cliente seleccionado.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cart) clearLocked() {
	c.lines = nil
	c.customer = nil
	c.version++
}

// clearAfterCommit vacía el carrito solo si no cambió desde la foto usada en la venta.
func (c *Cart) clearAfterCommit(version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == version {
		c.clearLocked()
	}
}

// SetCustomer selecciona el cliente (nil = sin cliente).
func (c *Cart) SetCustomer(customer *entity.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if customer != nil {
		cp := *customer
		customer = &cp
	}
	c.customer = customer
	c.version++
}

// SetDocumentType cambia el tipo de comprobante (receipt, invoice, ticket).
func (c *Cart) SetDocumentType(docType string) error {
	if !entity.IsValidDocumentType(docType) {
		return domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docType = docType
	c.version++
	return nil
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Snapshot devuelve una copia de las líneas con subtotal, IGV, total y cantidad de ítems.
func (c *Cart) Snapshot() CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := CartSnapshot{
		Lines:        make([]CartLine, 0, len(c.lines)),
		DocumentType: c.docType,
		Subtotal:     decimal.Zero,
		version:      c.version,
	}
	if c.customer != nil {
		cp := *c.customer
		snap.Customer = &cp
	}
	for _, l := range c.lines {
		snap.Lines = append(snap.Lines, *l)
		snap.Subtotal = snap.Subtotal.Add(l.Subtotal())
		snap.ItemCount += l.Quantity
	}
	snap.Total = snap.Subtotal
	snap.TaxBase, snap.Tax = domainsales.SplitTax(snap.Total)
	return snap
}

func (c *Cart) findByProduct(productID string) *CartLine {
	for _, l := range c.lines {
		if l.Product.ID == productID {
			return l
		}
	}
	return nil
}

func (c *Cart) findByID(lineID string) *CartLine {
	for _, l := range c.lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}
