package entity

import (
	"fmt"
	"time"
)

// Tipos de movimiento del kardex.
const (
	MovementIN     = "IN"     // entrada
	MovementOUT    = "OUT"    // salida
	MovementADJUST = "ADJUST" // ajuste a cantidad absoluta
	MovementRETURN = "RETURN" // devolución
	MovementSALE   = "SALE"   // venta
)

// IsValidMovementKind indica si kind es un tipo de movimiento conocido.
func IsValidMovementKind(kind string) bool {
	switch kind {
	case MovementIN, MovementOUT, MovementADJUST, MovementRETURN, MovementSALE:
		return true
	}
	return false
}

// IsDecrease indica si el tipo descuenta stock.
func IsDecrease(kind string) bool {
	return kind == MovementOUT || kind == MovementSALE
}

// StockMovement es un registro inmutable del kardex con la foto antes/después.
type StockMovement struct {
	ID             string
	Seq            int64 // orden de inserción dentro del kardex
	ProductID      string
	Kind           string
	Quantity       int
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	UserID         string // vacío si no hubo usuario
	OrderID        string // vacío si no proviene de un pedido
	CreatedAt      time.Time
}

// SignedLabel devuelve la cantidad con signo para mostrar (+n, -n, =n).
func (m *StockMovement) SignedLabel() string {
	switch m.Kind {
	case MovementIN, MovementRETURN:
		return fmt.Sprintf("+%d", m.Quantity)
	case MovementOUT, MovementSALE:
		return fmt.Sprintf("-%d", m.Quantity)
	default:
		return fmt.Sprintf("=%d", m.Quantity)
	}
}
