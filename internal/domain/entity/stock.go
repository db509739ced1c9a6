package entity

import (
	"math"
	"time"
)

// MaxStockQuantity tope de cantidad por movimiento y por saldo (columna INTEGER).
const MaxStockQuantity = math.MaxInt32

// DefaultMinimumStock umbral mínimo con el que se crean los registros de stock.
const DefaultMinimumStock = 5

// Estados derivados del stock.
const (
	StockStatusNoStock = "noStock"
	StockStatusLow     = "low"
	StockStatusNormal  = "normal"
	StockStatusHigh    = "high"
)

// Stock representa la cantidad actual de un producto (una fila por producto).
type Stock struct {
	ProductID string
	Quantity  int
	Minimum   int
	Maximum   *int // nil = sin máximo
	UpdatedAt time.Time
}

// NewStock devuelve un registro vacío con el mínimo por defecto.
func NewStock(productID string) *Stock {
	return &Stock{ProductID: productID, Minimum: DefaultMinimumStock}
}

// Status clasifica la cantidad respecto a los umbrales.
func (s *Stock) Status() string {
	switch {
	case s.Quantity <= 0:
		return StockStatusNoStock
	case s.Quantity <= s.Minimum:
		return StockStatusLow
	case s.Maximum != nil && s.Quantity >= *s.Maximum:
		return StockStatusHigh
	default:
		return StockStatusNormal
	}
}
