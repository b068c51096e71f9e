package redis_decorator

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

const defaultInvalidateDelay = 500 * time.Millisecond

/*
讀取商品時優先查 redis，miss 時回源 db 並寫回快取
更新與刪除先寫 db 再移除快取，延遲後再刪一次 (delayed double delete)
並行讀取可能在更新前讀到 db 舊值、在刪除後才寫回快取，第二次刪除會清掉這筆舊值
快取故障不影響主要流程，只記錄 log
*/
type CacheAsideProductRepo struct {
	repository.IProductRepository
	redis           redis_repo.IProductRedisRepository
	invalidateDelay time.Duration
}

type Option func(*CacheAsideProductRepo)

// WithInvalidateDelay 第二次刪除快取前的等待時間, 需大於一次 db 讀取加回填的時間
func WithInvalidateDelay(d time.Duration) Option {
	return func(p *CacheAsideProductRepo) {
		p.invalidateDelay = d
	}
}

func NewCacheAsideProductRepo(db repository.IProductRepository, redis redis_repo.IProductRedisRepository, opts ...Option) *CacheAsideProductRepo {
	p := &CacheAsideProductRepo{
		IProductRepository: db,
		redis:              redis,
		invalidateDelay:    defaultInvalidateDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CacheAsideProductRepo) GetProductByID(ctx context.Context, productID uint64) (*model.Product, error) {
	product, err := p.redis.GetProduct(ctx, productID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, redis_repo.ErrCacheMiss) {
		log.Warn().Err(err).Uint64("product_id", productID).Msg("read product cache failed, fallback to db")
	}

	product, err = p.IProductRepository.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.redis.SetProduct(ctx, product); err != nil {
		log.Warn().Err(err).Uint64("product_id", productID).Msg("write product cache failed")
	}
	return product, nil
}

func (p *CacheAsideProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := p.IProductRepository.UpdateProduct(ctx, product); err != nil {
		return err
	}
	p.invalidate(product.ProductID)
	return nil
}

func (p *CacheAsideProductRepo) DeleteProduct(ctx context.Context, productID uint64) error {
	if err := p.IProductRepository.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	p.invalidate(productID)
	return nil
}

// invalidate 立即移除快取，延遲後再移除一次，兩次都失敗則等 TTL 過期
func (p *CacheAsideProductRepo) invalidate(productID uint64) {
	if err := p.redis.DeleteProduct(context.Background(), productID); err != nil {
		log.Error().Err(err).Uint64("product_id", productID).Msg("invalidate product cache failed")
	}
	go func() {
		time.Sleep(p.invalidateDelay)
		if err := p.redis.DeleteProduct(context.Background(), productID); err != nil {
			log.Error().Err(err).Uint64("product_id", productID).Msg("delayed invalidate product cache failed")
		}
	}()
}

var _ repository.IProductRepository = (*CacheAsideProductRepo)(nil)
