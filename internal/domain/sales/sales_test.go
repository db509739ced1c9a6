package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSplitTax(t *testing.T) {
	base, tax := sales.SplitTax(dec("24.00"))
	assert.True(t, base.Equal(dec("20.34")), "base: %s", base)
	assert.True(t, tax.Equal(dec("3.66")), "igv: %s", tax)

	base, tax = sales.SplitTax(dec("118"))
	assert.True(t, base.Equal(dec("100")))
	assert.True(t, tax.Equal(dec("18")))
}

func TestSplitTax_Idempotente(t *testing.T) {
	for _, s := range []string{"0", "0.01", "7.5", "24", "99.99", "1234.56"} {
		total := dec(s)
		base1, tax1 := sales.SplitTax(total)
		base2, tax2 := sales.SplitTax(total)
		assert.True(t, tax1.Equal(tax2))
		assert.True(t, base1.Add(tax1).Equal(total), "base + igv debe ser el total para %s", s)
		assert.True(t, base1.Equal(base2))
	}
}

func TestComputeTotals(t *testing.T) {
	l1 := &entity.OrderLine{Quantity: 3, UnitPrice: dec("5.00"), UnitCost: dec("3.20")}
	l1.CalculateSubtotal()
	l2 := &entity.OrderLine{Quantity: 1, UnitPrice: dec("12.50"), Discount: dec("0.50"), UnitCost: dec("9")}
	l2.CalculateSubtotal()

	got := sales.ComputeTotals([]*entity.OrderLine{l1, l2}, dec("2"))

	assert.True(t, got.Total.Equal(dec("25")), "total: %s", got.Total)
	assert.True(t, got.Subtotal.Add(got.Tax).Equal(got.Total))
	assert.True(t, got.CostTotal.Equal(dec("18.6")), "costo: %s", got.CostTotal)
	assert.True(t, got.Discount.Equal(dec("2")))

	o := &entity.Order{}
	sales.ApplyTotals(o, got)
	assert.True(t, o.Profit().Equal(dec("6.4")))
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "B001-0000001", sales.FormatOrderNumber(entity.DocumentReceipt, 1))
	assert.Equal(t, "F001-0000043", sales.FormatOrderNumber(entity.DocumentInvoice, 43))
	assert.Equal(t, "T001-1234567", sales.FormatOrderNumber(entity.DocumentTicket, 1234567))
}

func TestParseOrderSequence(t *testing.T) {
	n, ok := sales.ParseOrderSequence("F001-0000042")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = sales.ParseOrderSequence("sin-numero")
	assert.False(t, ok)
	_, ok = sales.ParseOrderSequence("B001-")
	assert.False(t, ok)
}

func TestMaxSequence(t *testing.T) {
	assert.Equal(t, 0, sales.MaxSequence(nil))
	assert.Equal(t, 42, sales.MaxSequence([]string{"F001-0000007", "F001-0000042", "basura", "F001-0000003"}))
}
