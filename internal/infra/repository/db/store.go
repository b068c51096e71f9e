package db

import (
	"context"

	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"gorm.io/gorm"
)

// Store 管理訂單資料與交易
type Store struct {
	*OrderRepo
	db *DbDao
}

func NewStore(db *DbDao) *Store {
	return &Store{
		OrderRepo: NewOrderRepo(db),
		db:        db,
	}
}

// ExecTx 執行一個交易，fn 回傳錯誤時整批回滾
func (s *Store) ExecTx(ctx context.Context, fn func(repository.IOrderRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOrderRepo(NewDbDao(tx)))
	})
}

// DeleteOrder 在同一個交易內刪除訂單與明細
func (s *Store) DeleteOrder(ctx context.Context, orderID uint64) error {
	return s.ExecTx(ctx, func(q repository.IOrderRepository) error {
		return q.DeleteOrder(ctx, orderID)
	})
}

var _ repository.IStore = (*Store)(nil)
