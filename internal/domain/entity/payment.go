package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentYape     = "yape"
	PaymentPlin     = "plin"
	PaymentTransfer = "transfer"
)

// IsValidPaymentMethod indica si method es un método de pago conocido.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentYape, PaymentPlin, PaymentTransfer:
		return true
	}
	return false
}

// Payment representa un pago registrado contra un pedido.
type Payment struct {
	ID        string
	OrderID   string
	Method    string
	Amount    decimal.Decimal
	Reference string // nro de operación (tarjeta, billetera, transferencia)
	CreatedAt time.Time
}
