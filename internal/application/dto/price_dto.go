package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRequest body para crear o actualizar un precio.
type PriceRequest struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	NetCost        decimal.Decimal `json:"net_cost"`
	BaseCost       decimal.Decimal `json:"base_cost"`
	MinimumUnit    int             `json:"minimum_unit"`
	PurchaseUnit   int             `json:"purchase_unit"`
	BonusUnit      int             `json:"bonus_unit"`
	Discount1      decimal.Decimal `json:"discount1"`
	Discount2      decimal.Decimal `json:"discount2"`
	Discount3      decimal.Decimal `json:"discount3"`
	IsActive       bool            `json:"is_active"`
}

// PriceResponse precio en respuestas.
type PriceResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	NetCost        decimal.Decimal `json:"net_cost"`
	BaseCost       decimal.Decimal `json:"base_cost"`
	MinimumUnit    int             `json:"minimum_unit"`
	PurchaseUnit   int             `json:"purchase_unit"`
	BonusUnit      int             `json:"bonus_unit"`
	Discount1      decimal.Decimal `json:"discount1"`
	Discount2      decimal.Decimal `json:"discount2"`
	Discount3      decimal.Decimal `json:"discount3"`
	Margin         decimal.Decimal `json:"margin"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}
