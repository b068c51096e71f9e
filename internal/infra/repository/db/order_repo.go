package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// 明細依建立順序讀出
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id")
	})
}

// Create - 創建訂單，明細一併寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	var order model.Order
	err := preloadItems(s.db.WithContext(ctx)).First(&order, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := preloadItems(s.db.WithContext(ctx)).Order("order_id").Find(&orders).Error
	return orders, err
}

// Read - 根據日期範圍查詢訂單
func (s *OrderRepo) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := preloadItems(s.db.WithContext(ctx)).
		Where("order_time BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("order_time").
		Order("order_id").
		Find(&orders).Error
	return orders, err
}

// Delete - 刪除訂單，明細先刪
// 呼叫端需在交易內執行才能保證原子性，見 Store.DeleteOrder
func (s *OrderRepo) DeleteOrder(ctx context.Context, orderID uint64) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	result := tx.Delete(&model.Order{}, "order_id = ?", orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}
	return nil
}

var _ repository.IOrderRepository = (*OrderRepo)(nil)
