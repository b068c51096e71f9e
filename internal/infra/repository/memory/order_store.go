package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
)

type orderState struct {
	orders      map[uint64]*model.Order
	nextOrderID uint64
	nextItemID  uint64
}

// clone 複製索引，訂單本身寫入後不再修改所以可共用
func (st *orderState) clone() *orderState {
	c := &orderState{
		orders:      make(map[uint64]*model.Order, len(st.orders)),
		nextOrderID: st.nextOrderID,
		nextItemID:  st.nextItemID,
	}
	for id, o := range st.orders {
		c.orders[id] = o
	}
	return c
}

// orderRepo 直接操作 state，不處理鎖
type orderRepo struct {
	st *orderState
}

func (r *orderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.st.nextOrderID++
	order.OrderID = r.st.nextOrderID
	for _, item := range order.OrderItems {
		r.st.nextItemID++
		item.ItemID = r.st.nextItemID
		item.OrderID = order.OrderID
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	r.st.orders[order.OrderID] = order.Clone()
	return nil
}

func (r *orderRepo) GetOrderByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	order, ok := r.st.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (r *orderRepo) collect(keep func(*model.Order) bool) []model.Order {
	orders := make([]model.Order, 0)
	for _, o := range r.st.orders {
		if keep(o) {
			orders = append(orders, *o.Clone())
		}
	}
	return orders
}

func (r *orderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orders := r.collect(func(*model.Order) bool { return true })
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

func (r *orderRepo) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orders := r.collect(func(o *model.Order) bool {
		return !o.OrderTime.Before(start) && !o.OrderTime.After(end)
	})
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].OrderTime.Equal(orders[j].OrderTime) {
			return orders[i].OrderID < orders[j].OrderID
		}
		return orders[i].OrderTime.Before(orders[j].OrderTime)
	})
	return orders, nil
}

// DeleteOrder 明細存放在訂單內，一起移除
func (r *orderRepo) DeleteOrder(ctx context.Context, orderID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.st.orders[orderID]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.st.orders, orderID)
	return nil
}

// Store 記憶體版訂單儲存
// 交易在鎖內對複本操作，成功才替換，失敗時讀者看不到任何部分寫入
type Store struct {
	mu sync.RWMutex
	st *orderState
}

func NewStore() *Store {
	return &Store{st: &orderState{orders: make(map[uint64]*model.Order)}}
}

func (s *Store) ExecTx(ctx context.Context, fn func(repository.IOrderRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	if err := fn(&orderRepo{st: staged}); err != nil {
		return err
	}
	s.st = staged
	return nil
}

func (s *Store) reader() *orderRepo {
	return &orderRepo{st: s.st}
}

func (s *Store) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.ExecTx(ctx, func(q repository.IOrderRepository) error {
		return q.CreateOrder(ctx, order)
	})
}

func (s *Store) GetOrderByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reader().GetOrderByID(ctx, orderID)
}

func (s *Store) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reader().GetAllOrders(ctx)
}

func (s *Store) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reader().GetOrdersByDateRange(ctx, start, end)
}

func (s *Store) DeleteOrder(ctx context.Context, orderID uint64) error {
	return s.ExecTx(ctx, func(q repository.IOrderRepository) error {
		return q.DeleteOrder(ctx, orderID)
	})
}

var _ repository.IStore = (*Store)(nil)
