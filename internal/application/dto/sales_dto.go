package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest body para POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"` // 0 = 1
}

// SetQuantityRequest body para PUT /api/cart/items/:lineId.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCustomerRequest body para PUT /api/cart/customer (vacío = sin cliente).
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// SetDocumentTypeRequest body para PUT /api/cart/document-type.
type SetDocumentTypeRequest struct {
	DocumentType string `json:"document_type"` // receipt | invoice | ticket
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	PriceID     string          `json:"price_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse estado del carrito con totales derivados.
type CartResponse struct {
	Lines        []CartLineResponse `json:"lines"`
	CustomerID   string             `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	DocumentType string             `json:"document_type"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxBase      decimal.Decimal    `json:"tax_base"`
	Tax          decimal.Decimal    `json:"tax"`
	Total        decimal.Decimal    `json:"total"`
	ItemCount    int                `json:"item_count"`
}

// PaymentRequest pago entregado en caja.
type PaymentRequest struct {
	Method    string          `json:"method"` // cash | card | yape | plin | transfer
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// CheckoutRequest body para POST /api/sales/checkout.
type CheckoutRequest struct {
	Payments []PaymentRequest `json:"payments"`
	Discount decimal.Decimal  `json:"discount"`
	Notes    string           `json:"notes,omitempty"`
}

// OrderLineResponse línea del pedido.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	PriceID   string          `json:"price_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// OrderResponse pedido con detalle.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	DocumentType  string              `json:"document_type"`
	Date          time.Time           `json:"date"`
	Status        string              `json:"status"`
	CustomerID    string              `json:"customer_id,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	SellerID      string              `json:"seller_id,omitempty"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	DiscountTotal decimal.Decimal     `json:"discount_total"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	CostTotal     decimal.Decimal     `json:"cost_total"`
	Profit        decimal.Decimal     `json:"profit"`
	Change        decimal.Decimal     `json:"change"` // vuelto
	Notes         string              `json:"notes,omitempty"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
	Payments      []PaymentResponse   `json:"payments,omitempty"`
	Movements     []MovementResponse  `json:"movements,omitempty"`
}

// OrderListResponse historial de pedidos.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	SalesTotal decimal.Decimal `json:"sales_total"` // suma de pedidos completados
	Page       PageResponse    `json:"page"`
}
