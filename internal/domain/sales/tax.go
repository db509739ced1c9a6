package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// TaxDivisor factor del IGV (18%) incluido en los precios de venta.
var TaxDivisor = decimal.RequireFromString("1.18")

// SplitTax separa un monto con IGV incluido en base imponible e impuesto.
// La base se redondea a céntimos y el impuesto es la diferencia, así base + impuesto == total.
func SplitTax(total decimal.Decimal) (base, tax decimal.Decimal) {
	base = total.Div(TaxDivisor).Round(2)
	return base, total.Sub(base)
}

// Totals montos calculados de un pedido.
type Totals struct {
	Subtotal  decimal.Decimal // base sin IGV
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CostTotal decimal.Decimal
}

// ComputeTotals suma las líneas, resta el descuento del pedido y extrae el IGV.
func ComputeTotals(lines []*entity.OrderLine, discount decimal.Decimal) Totals {
	gross := decimal.Zero
	cost := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(l.Subtotal)
		cost = cost.Add(l.Cost())
	}
	total := gross.Sub(discount)
	base, tax := SplitTax(total)
	return Totals{
		Subtotal:  base,
		Discount:  discount,
		Tax:       tax,
		Total:     total,
		CostTotal: cost,
	}
}

// ApplyTotals copia los montos calculados en la cabecera del pedido.
func ApplyTotals(o *entity.Order, t Totals) {
	o.Subtotal = t.Subtotal
	o.DiscountTotal = t.Discount
	o.Tax = t.Tax
	o.Total = t.Total
	o.CostTotal = t.CostTotal
}
