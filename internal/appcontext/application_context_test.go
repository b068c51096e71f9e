package appcontext

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/redis_decorator"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cf, err := config.LoadConfig("")
	require.NoError(t, err)
	return cf
}

func TestNewApplicationContext_Memory(t *testing.T) {
	cf := testConfig(t)

	app, err := NewApplicationContext(context.Background(), cf, zerolog.Nop())
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	require.Nil(t, app.GormDB)
	require.Nil(t, app.Limiter)
	require.IsType(t, producer.NoopOrderPublisher{}, app.OrderPublisher)

	ctx := context.Background()
	product, err := app.ProductService.CreateProduct(ctx, dto.ProductParam{Name: "Widget", Price: decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	order, err := app.OrderService.PlaceOrder(ctx, dto.PlaceOrderParam{
		BuyerEmail: "a@b.com",
		Items:      []dto.PlaceOrderItemParam{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.True(t, order.TotalValue.Equal(decimal.RequireFromString("20")))
}

func TestNewApplicationContext_SqliteWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cf := testConfig(t)
	cf.StoreDriver = "sqlite"
	cf.SqlitePath = filepath.Join(t.TempDir(), "ordercenter.db")
	cf.RedisAddr = mr.Addr()
	cf.RateLimitCapacity = 10
	cf.RateLimitRPS = 5

	app, err := NewApplicationContext(context.Background(), cf, zerolog.Nop())
	require.NoError(t, err)

	require.NotNil(t, app.GormDB)
	require.NotNil(t, app.Limiter)
	require.IsType(t, &redis_decorator.CacheAsideProductRepo{}, app.ProductRepo)

	ctx := context.Background()
	product, err := app.ProductService.CreateProduct(ctx, dto.ProductParam{Name: "Widget", Price: decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	_, err = app.ProductService.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 1)

	// 快取仍是舊價格時，下單必須取 db 當下的價格
	require.NoError(t, app.GormDB.Model(&model.Product{}).
		Where("product_id = ?", product.ID).
		Update("price", decimal.RequireFromString("15.00")).Error)
	cached, err := app.ProductService.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, cached.Price.Equal(decimal.RequireFromString("10.00")))

	order, err := app.OrderService.PlaceOrder(ctx, dto.PlaceOrderParam{
		BuyerEmail: "a@b.com",
		Items:      []dto.PlaceOrderItemParam{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("15.00")))
	require.True(t, order.TotalValue.Equal(decimal.RequireFromString("30.00")))

	require.NoError(t, app.Shutdown(context.Background()))
}

func TestNewApplicationContext_RedisUnavailable(t *testing.T) {
	cf := testConfig(t)
	cf.RedisAddr = "127.0.0.1:1"

	_, err := NewApplicationContext(context.Background(), cf, zerolog.Nop())
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cf := testConfig(t)
	cf.LogLevel = "warn"

	logger := NewLogger(cf, &buf)
	defer SetLogLevel("info")

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"service":"ordercenter"`)
}
