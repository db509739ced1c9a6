package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrNoActivePrice       = errors.New("el producto no tiene precio activo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientPayment = errors.New("el monto pagado no cubre el total")
	ErrEmptyCart           = errors.New("el carrito está vacío")
	ErrInvalidAdjustment   = errors.New("ajuste de stock inválido")
	ErrOrderNotCancellable = errors.New("el pedido no se puede cancelar en su estado actual")
)

// InsufficientStockError indica la cantidad disponible al rechazar una salida.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d", e.ProductID, e.Available)
}

// Is permite comparar contra ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock construye el error con la cantidad disponible.
func NewInsufficientStock(productID string, available int) error {
	return &InsufficientStockError{ProductID: productID, Available: available}
}

// AvailableStock extrae la cantidad disponible de un error de stock insuficiente.
func AvailableStock(err error) (int, bool) {
	var e *InsufficientStockError
	if errors.As(err, &e) {
		return e.Available, true
	}
	return 0, false
}
