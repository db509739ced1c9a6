package entity

import "time"

// Customer representa un cliente al que se le emite el comprobante.
type Customer struct {
	ID             string
	Name           string
	DocumentNumber string // DNI o RUC
	CreatedAt      time.Time
}
