package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price representa un precio de venta de un producto. Solo uno puede estar activo por producto.
type Price struct {
	ID             string
	ProductID      string
	UnitPrice      decimal.Decimal // precio unitario con IGV incluido
	WholesalePrice decimal.Decimal // precio por mayor (informativo)
	NetCost        decimal.Decimal // costo neto, se copia a la línea del pedido
	BaseCost       decimal.Decimal
	MinimumUnit    int
	PurchaseUnit   int
	BonusUnit      int
	Discount1      decimal.Decimal // porcentajes guardados; no se aplican en la venta
	Discount2      decimal.Decimal
	Discount3      decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Margin devuelve el margen porcentual (precio - costo neto) / precio * 100.
func (p *Price) Margin() decimal.Decimal {
	if !p.UnitPrice.IsPositive() {
		return decimal.Zero
	}
	return p.UnitPrice.Sub(p.NetCost).Div(p.UnitPrice).Mul(decimal.NewFromInt(100)).Round(2)
}
