package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// IProductRedisRepository 商品快取
type IProductRedisRepository interface {
	// GetProduct 取得快取的商品，不存在時回傳 ErrCacheMiss
	GetProduct(ctx context.Context, productID uint64) (*model.Product, error)
	// SetProduct 寫入商品快取
	SetProduct(ctx context.Context, product *model.Product) error
	// DeleteProduct 移除商品快取
	DeleteProduct(ctx context.Context, productID uint64) error
}

var ErrCacheMiss = errors.New("product cache miss")

/*
redis 快取商品目前的名稱與價格
結構:

	product:{id}: {
		name: "Widget",
		price: "10.00",
	}
*/
type ProductRedisRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductRedisRepo(productCache *redis.Client, ttl time.Duration) *ProductRedisRepo {
	return &ProductRedisRepo{productCache: productCache, ttl: ttl}
}

func generateProductKey(productID uint64) string {
	return fmt.Sprintf("product:%d", productID)
}

// 錯誤:
//   - ErrCacheMiss: 快取不存在
//   - err: 其他錯誤
func (s *ProductRedisRepo) GetProduct(ctx context.Context, productID uint64) (*model.Product, error) {
	fields, err := s.productCache.HGetAll(ctx, generateProductKey(productID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrCacheMiss
	}

	return convertRedisMapToProduct(productID, fields)
}

func (s *ProductRedisRepo) SetProduct(ctx context.Context, product *model.Product) error {
	redisKey := generateProductKey(product.ProductID)
	_, err := s.productCache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey,
			"name", product.Name,
			"price", product.Price.String(),
			"created_at", product.CreatedAt.UnixNano(),
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, redisKey, s.ttl)
		}
		return nil
	})
	return err
}

func (s *ProductRedisRepo) DeleteProduct(ctx context.Context, productID uint64) error {
	return s.productCache.Del(ctx, generateProductKey(productID)).Err()
}

// convertRedisMapToProduct 將 Redis 的 map[string]string 轉換為 model.Product
func convertRedisMapToProduct(productID uint64, fields map[string]string) (*model.Product, error) {
	price, err := decimal.NewFromString(fields["price"])
	if err != nil {
		return nil, fmt.Errorf("parse cached price of product %d: %w", productID, err)
	}

	product := &model.Product{
		ProductID: productID,
		Name:      fields["name"],
		Price:     price,
	}
	if raw, ok := fields["created_at"]; ok {
		if nanos, err := strconv.ParseInt(raw, 10, 64); err == nil && nanos > 0 {
			product.CreatedAt = time.Unix(0, nanos).UTC()
		}
	}
	return product, nil
}

var _ IProductRedisRepository = (*ProductRedisRepo)(nil)
