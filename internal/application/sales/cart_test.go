package sales_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/testutil"
)

func TestCart_AddCalculaTotales(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "12.50", "9.00", 10)
	cart := sales.NewCart(env.Lookup)

	line, err := cart.Add(context.Background(), p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.True(t, snap.Subtotal.Equal(testutil.Dec("37.50")))
	assert.True(t, snap.Total.Equal(snap.Subtotal))
	assert.True(t, snap.Tax.Equal(testutil.Dec("5.72")), "igv: %s", snap.Tax)
	assert.True(t, snap.TaxBase.Add(snap.Tax).Equal(snap.Total))
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, entity.DocumentReceipt, snap.DocumentType)
}

func TestCart_AddMismoProductoSumaEnLaLinea(t *testing.T) {
	env := testutil.NewEnv()
	a := env.Product(t, "5.00", "", 10)
	b := env.Product(t, "7.00", "", 10)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	_, err := cart.Add(ctx, a.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, b.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, a.ID, 2)
	require.NoError(t, err)

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, a.ID, snap.Lines[0].Product.ID, "se conserva el orden de inserción")
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	assert.Equal(t, b.ID, snap.Lines[1].Product.ID)
	assert.Equal(t, 4, snap.ItemCount)
}

func TestCart_AddRechazaCantidadCombinadaSinStock(t *testing.T) {
	env := testutil.NewEnv()
	a := env.Product(t, "5.00", "", 2)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	_, err := cart.Add(ctx, a.ID, 2)
	require.NoError(t, err)

	_, err = cart.Add(ctx, a.ID, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	available, ok := domain.AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 2, available)

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity, "la línea no cambia")
}

func TestCart_AddCantidadEnormeNoDesborda(t *testing.T) {
	env := testutil.NewEnv()
	a := env.Product(t, "11.00", "", 10)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	_, err := cart.Add(ctx, a.ID, 1)
	require.NoError(t, err)

	_, err = cart.Add(ctx, a.ID, math.MaxInt)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	snap := cart.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 1, snap.Lines[0].Quantity)
	assert.Equal(t, 1, snap.ItemCount)
	assert.True(t, snap.Total.IsPositive())
}

func TestCart_AddSinPrecioActivo(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "", "", 10)
	cart := sales.NewCart(env.Lookup)

	_, err := cart.Add(context.Background(), p.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNoActivePrice)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddValidaEntrada(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "1.00", "", 10)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	_, err := cart.Add(ctx, p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = cart.Add(ctx, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = cart.Add(ctx, p.ID, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCart_SetQuantity(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "2.00", "", 5)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	line, err := cart.Add(ctx, p.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cart.SetQuantity(ctx, line.ID, 5))
	assert.Equal(t, 5, cart.Snapshot().Lines[0].Quantity)

	err = cart.SetQuantity(ctx, line.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, cart.Snapshot().Lines[0].Quantity)

	require.NoError(t, cart.SetQuantity(ctx, line.ID, 0))
	assert.True(t, cart.IsEmpty(), "cantidad 0 elimina la línea")

	assert.ErrorIs(t, cart.SetQuantity(ctx, "otra", 1), domain.ErrNotFound)
}

func TestCart_IncrementDecrement(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "2.00", "", 2)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	line, err := cart.Add(ctx, p.ID, 1)
	require.NoError(t, err)
	require.NoError(t, cart.Increment(ctx, line.ID))
	assert.ErrorIs(t, cart.Increment(ctx, line.ID), domain.ErrInsufficientStock)
	require.NoError(t, cart.Decrement(ctx, line.ID))
	require.NoError(t, cart.Decrement(ctx, line.ID))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveYClear(t *testing.T) {
	env := testutil.NewEnv()
	a := env.Product(t, "2.00", "", 5)
	b := env.Product(t, "3.00", "", 5)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	la, err := cart.Add(ctx, a.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, b.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cart.Remove(la.ID))
	assert.ErrorIs(t, cart.Remove(la.ID), domain.ErrNotFound)
	assert.Len(t, cart.Snapshot().Lines, 1)

	cart.SetCustomer(&entity.Customer{ID: "c1", Name: "Ana"})
	require.NotNil(t, cart.Snapshot().Customer)

	cart.Clear()
	snap := cart.Snapshot()
	assert.Empty(t, snap.Lines)
	assert.Nil(t, snap.Customer, "limpiar quita el cliente")
	assert.True(t, snap.Total.IsZero())
}

func TestCart_SetDocumentType(t *testing.T) {
	cart := sales.NewCart(testutil.NewEnv().Lookup)
	require.NoError(t, cart.SetDocumentType(entity.DocumentInvoice))
	assert.Equal(t, entity.DocumentInvoice, cart.Snapshot().DocumentType)
	assert.ErrorIs(t, cart.SetDocumentType("nota"), domain.ErrInvalidInput)
}

func TestCart_PrecioCapturadoAlAgregar(t *testing.T) {
	env := testutil.NewEnv()
	p := env.Product(t, "10.00", "", 5)
	cart := sales.NewCart(env.Lookup)
	ctx := context.Background()

	_, err := cart.Add(ctx, p.ID, 1)
	require.NoError(t, err)

	_, err = env.Prices.Create(ctx, p.ID, testutil.PriceRequest("12.00", "", true))
	require.NoError(t, err)

	assert.True(t, cart.Snapshot().Lines[0].Price.UnitPrice.Equal(testutil.Dec("10.00")))
}

func TestCartRegistry_UnCarritoPorSesion(t *testing.T) {
	reg := sales.NewCartRegistry(testutil.NewEnv().Lookup)
	a := reg.Get("u1")
	assert.Same(t, a, reg.Get("u1"))
	assert.NotSame(t, a, reg.Get("u2"))
	reg.Drop("u1")
	assert.NotSame(t, a, reg.Get("u1"))
}
