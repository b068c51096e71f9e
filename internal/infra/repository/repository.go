//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock_repository

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint64) (*model.Product, error)
	ExistsProduct(ctx context.Context, productID uint64) (bool, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint64) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID uint64) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	// GetOrdersByDateRange 回傳 start <= order_time <= end 的訂單，依 order_time 由舊到新
	GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error)
	// DeleteOrder 刪除訂單與其明細
	DeleteOrder(ctx context.Context, orderID uint64) error
}

// IStore 訂單儲存，ExecTx 內的操作共用同一個 commit/rollback 邊界
type IStore interface {
	IOrderRepository
	ExecTx(ctx context.Context, fn func(IOrderRepository) error) error
}
