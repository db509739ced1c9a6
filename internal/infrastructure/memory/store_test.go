package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/memory"
)

func TestRun_ErrorDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		st, err := stockRepo.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		st.Quantity = 10
		require.NoError(t, stockRepo.Upsert(ctx, st))
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Kind: entity.MovementIN, Quantity: 10}))

		// dentro de la tx se ve lo pendiente
		again, err := stockRepo.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 10, again.Quantity)
		return boom
	})
	require.ErrorIs(t, err, boom)

	st, err := store.Stocks().Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Quantity)
	assert.Equal(t, entity.DefaultMinimumStock, st.Minimum)
	movs, err := store.Movements().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_CommitPublicaYNumeraKardex(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	for i := 0; i < 2; i++ {
		err := store.Run(ctx, func(movRepo repository.StockMovementRepository, _ repository.StockRepository) error {
			return movRepo.Create(ctx, &entity.StockMovement{ProductID: "p1", Kind: entity.MovementIN, Quantity: 1})
		})
		require.NoError(t, err)
	}
	movs, err := store.Movements().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, int64(1), movs[0].Seq)
	assert.Equal(t, int64(2), movs[1].Seq)
}

func TestGetForUpdate_SerializaTransacciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Run(ctx, func(_ repository.StockMovementRepository, stockRepo repository.StockRepository) error {
				st, err := stockRepo.GetForUpdate(ctx, "p1")
				if err != nil {
					return err
				}
				st.Quantity++
				return stockRepo.Upsert(ctx, st)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := store.Stocks().Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 50, st.Quantity, "ningún incremento se pierde")
}

func TestLock_RespetaCancelacionDelContexto(t *testing.T) {
	store := memory.NewStore()
	holding := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = store.Run(context.Background(), func(_ repository.StockMovementRepository, stockRepo repository.StockRepository) error {
			_, err := stockRepo.GetForUpdate(context.Background(), "p1")
			close(holding)
			<-done
			return err
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := store.Run(ctx, func(_ repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		_, err := stockRepo.GetForUpdate(ctx, "p1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)
}

func TestPrices_DeleteDentroDeTx(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Prices().Create(ctx, &entity.Price{ID: "a", ProductID: "p1", IsActive: true}))

	err := store.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		list, err := priceRepo.ListByProductForUpdate(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NoError(t, priceRepo.Delete(ctx, "a"))
		got, err := priceRepo.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Nil(t, got)
		return nil
	})
	require.NoError(t, err)

	active, err := store.Prices().GetActiveByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestProducts_DeleteArrastraPreciosYStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Code: "PROD-001", Description: "A", Active: true, CreatedAt: now}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Code: "PROD-002", Description: "B", Active: true, CreatedAt: now}))
	require.NoError(t, store.RunPricing(ctx, func(priceRepo repository.PriceRepository) error {
		return priceRepo.Create(ctx, &entity.Price{ID: "pr1", ProductID: "p1", IsActive: true, CreatedAt: now})
	}))
	require.NoError(t, store.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		st, err := stockRepo.GetForUpdate(ctx, "p2")
		require.NoError(t, err)
		st.Quantity = 3
		require.NoError(t, stockRepo.Upsert(ctx, st))
		return movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p2", Kind: entity.MovementIN, Quantity: 3, QuantityAfter: 3, CreatedAt: now})
	}))

	require.NoError(t, store.Products().Delete(ctx, "p1"))
	got, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
	price, err := store.Prices().GetByID(ctx, "pr1")
	require.NoError(t, err)
	assert.Nil(t, price)

	assert.ErrorIs(t, store.Products().Delete(ctx, "p2"), domain.ErrConflict, "con kardex no se borra")
	assert.ErrorIs(t, store.Products().Delete(ctx, "p1"), domain.ErrNotFound)
}

func TestOrders_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	orders := store.Orders()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "1", Number: "B001-0000001", DocumentType: entity.DocumentReceipt, Date: now.Add(-48 * time.Hour), CustomerName: "Ana Torres"}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "2", Number: "B001-0000002", DocumentType: entity.DocumentReceipt, Date: now}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "3", Number: "F001-0000009", DocumentType: entity.DocumentInvoice, Date: now.Add(-time.Hour)}))

	all, err := orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[0].ID)
	assert.Equal(t, "1", all[2].ID)

	from := now.Add(-24 * time.Hour)
	recent, err := orders.List(ctx, repository.OrderFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	byName, err := orders.List(ctx, repository.OrderFilter{Search: "ana"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	seq, err := orders.MaxSequence(ctx, entity.DocumentReceipt)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
	seq, err = orders.MaxSequence(ctx, entity.DocumentTicket)
	require.NoError(t, err)
	assert.Equal(t, 0, seq)
}

func TestUsers_EmailUnico(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Email: "caja@tienda.pe"}))
	err := store.Users().Create(ctx, &entity.User{ID: "u2", Email: "CAJA@tienda.pe"})
	assert.Error(t, err)

	u, err := store.Users().FindByEmail(ctx, "caja@tienda.pe")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}
