package entity

import (
	"fmt"
	"time"
)

// Product representa un artículo vendible del catálogo.
// El precio de venta vive en Price (uno activo a la vez) y la cantidad en Stock.
type Product struct {
	ID          string
	Code        string // PROD-001, PROD-002, ...
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductCode formatea el código correlativo de producto.
func ProductCode(seq int) string {
	return fmt.Sprintf("PROD-%03d", seq)
}
