package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrder(email string, at time.Time) *model.Order {
	order := &model.Order{BuyerEmail: email, OrderTime: at}
	order.AddItem(&model.OrderItem{ProductID: 1, ProductName: "Widget", Price: decimal.NewFromInt(10), Quantity: 2})
	order.RecomputeTotal()
	return order
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	order := newOrder("a@b.com", base)

	require.NoError(t, store.CreateOrder(ctx, order))
	require.Equal(t, uint64(1), order.OrderID)
	require.Equal(t, uint64(1), order.OrderItems[0].ItemID)
	require.Equal(t, order.OrderID, order.OrderItems[0].OrderID)

	// 修改呼叫端的物件不影響 store
	order.OrderItems[0].ProductName = "changed"

	found, err := store.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, "Widget", found.OrderItems[0].ProductName)

	_, err = store.GetOrderByID(ctx, 99)
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestStore_ExecTxRollback(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.ExecTx(ctx, func(q repository.IOrderRepository) error {
		require.NoError(t, q.CreateOrder(ctx, newOrder("a@b.com", base)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	orders, err := store.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestStore_DateRange(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	late := newOrder("late@b.com", base.Add(time.Hour))
	early := newOrder("early@b.com", base)
	outside := newOrder("outside@b.com", base.Add(-time.Second))
	for _, o := range []*model.Order{late, early, outside} {
		require.NoError(t, store.CreateOrder(ctx, o))
	}

	orders, err := store.GetOrdersByDateRange(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, early.OrderID, orders[0].OrderID)
	require.Equal(t, late.OrderID, orders[1].OrderID)
}

func TestStore_DeleteOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	order := newOrder("a@b.com", base)
	require.NoError(t, store.CreateOrder(ctx, order))

	require.NoError(t, store.DeleteOrder(ctx, order.OrderID))
	require.ErrorIs(t, store.DeleteOrder(ctx, order.OrderID), repository.ErrOrderNotFound)
}

func TestStore_ConcurrentCreate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.CreateOrder(ctx, newOrder("a@b.com", base))
		}()
	}
	wg.Wait()

	orders, err := store.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 50)
	require.Equal(t, uint64(50), orders[49].OrderID)
}
