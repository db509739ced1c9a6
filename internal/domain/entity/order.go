package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante.
const (
	DocumentReceipt = "receipt" // boleta
	DocumentInvoice = "invoice" // factura
	DocumentTicket  = "ticket"  // ticket
)

// Estados del pedido.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// DocumentPrefix devuelve la letra de serie del comprobante ("" si el tipo no existe).
func DocumentPrefix(docType string) string {
	switch docType {
	case DocumentReceipt:
		return "B"
	case DocumentInvoice:
		return "F"
	case DocumentTicket:
		return "T"
	}
	return ""
}

// IsValidDocumentType indica si docType es un comprobante conocido.
func IsValidDocumentType(docType string) bool {
	return DocumentPrefix(docType) != ""
}

// Order representa la cabecera de una venta (pedido).
type Order struct {
	ID            string
	Number        string // B001-0000001
	DocumentType  string
	Date          time.Time
	Subtotal      decimal.Decimal // base sin IGV
	DiscountTotal decimal.Decimal
	Tax           decimal.Decimal // IGV 18% extraído del total
	Total         decimal.Decimal
	CostTotal     decimal.Decimal
	Status        string
	CustomerID    string
	CustomerName  string // copia del nombre al momento de la venta
	SellerID      string
	CashierID     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profit devuelve total - costo.
func (o *Order) Profit() decimal.Decimal {
	return o.Total.Sub(o.CostTotal)
}

// IsCancellable indica si el pedido admite anulación.
func (o *Order) IsCancellable() bool {
	return o.Status == OrderCompleted || o.Status == OrderPending
}

// OrderLine representa una línea del pedido con precio y costo copiados.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	PriceID   string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal // cantidad * precio - descuento
	UnitCost  decimal.Decimal
}

// CalculateSubtotal recalcula Subtotal desde cantidad, precio y descuento.
func (l *OrderLine) CalculateSubtotal() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// Cost devuelve costo unitario * cantidad.
func (l *OrderLine) Cost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
