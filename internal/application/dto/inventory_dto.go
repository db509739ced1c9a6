package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT | ADJUST
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ThresholdsRequest body para PUT /api/inventory/products/:id/thresholds.
type ThresholdsRequest struct {
	Minimum int  `json:"minimum"`
	Maximum *int `json:"maximum,omitempty"`
}

// MovementResponse movimiento del kardex.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	Label          string    `json:"label"` // +n, -n, =n
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	UserID         string    `json:"user_id,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockResponse stock de un producto con su estado.
type StockResponse struct {
	ProductID   string    `json:"product_id"`
	Code        string    `json:"code,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Minimum     int       `json:"minimum"`
	Maximum     *int      `json:"maximum,omitempty"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LedgerCheckResponse resultado de reconstruir el stock desde el kardex.
type LedgerCheckResponse struct {
	ProductID  string `json:"product_id"`
	Balance    int    `json:"balance"`
	Replayed   int    `json:"replayed"`
	Movements  int    `json:"movements"`
	Consistent bool   `json:"consistent"`
	BrokenAt   *int   `json:"broken_at,omitempty"`
}
