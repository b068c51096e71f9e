package appcontext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/RoyceAzure/lab/ordercenter/internal/constants"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/redis_client"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/memory"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/ordercenter/internal/metrics"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/ordercenter/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

type ApplicationContext struct {
	Cf      *config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Registry

	GormDB *gorm.DB
	// ProductDBRepo 直接讀寫 store，下單取價格用，不經過快取
	ProductDBRepo  repository.IProductRepository
	ProductRepo    repository.IProductRepository
	Store          repository.IStore
	RedisClient    *redis.Client
	OrderProducer  producer.Producer
	OrderPublisher producer.IOrderEventPublisher
	Limiter        *ratelimit.TokenBucket

	ProductService service.IProductService
	OrderService   service.IOrderService

	closers []func() error
}

func NewApplicationContext(ctx context.Context, cf *config.Config, logger zerolog.Logger) (*ApplicationContext, error) {
	app := &ApplicationContext{
		Cf:      cf,
		Logger:  logger,
		Metrics: metrics.NewRegistry(),
	}
	if err := app.Init(ctx); err != nil {
		// 已建立的連線一併關閉
		_ = app.Shutdown(context.Background())
		return nil, err
	}
	return app, nil
}

func (app *ApplicationContext) Init(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"store", app.setUpStore},
		{"product cache", app.setUpProductCache},
		{"order producer", app.setUpOrderProducer},
		{"rate limiter", app.setUpLimiter},
		{"services", app.setUpServices},
	}
	for _, step := range steps {
		app.Logger.Info().Str("step", step.name).Msg("start setup")
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
	}
	return nil
}

// OpenDatabase 依 STORE_DRIVER 建立 gorm 連線，memory 時回傳 nil
func OpenDatabase(ctx context.Context, cf *config.Config, logger zerolog.Logger) (*gorm.DB, func(), error) {
	gormLogger := db.NewZeroGormLogger(logger, slowQueryThreshold)
	switch constants.StoreDriver(cf.StoreDriver) {
	case constants.StoreDriverPostgres:
		return db.GetDbConn(ctx, cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas, gormLogger)
	case constants.StoreDriverSqlite:
		return db.GetSqliteConn(cf.SqlitePath, gormLogger)
	case constants.StoreDriverMemory:
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cf.StoreDriver)
	}
}

func (app *ApplicationContext) setUpStore(ctx context.Context) error {
	conn, closeFn, err := OpenDatabase(ctx, app.Cf, app.Logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, func() error { closeFn(); return nil })

	if conn == nil {
		app.ProductDBRepo = memory.NewProductRepo()
		app.ProductRepo = app.ProductDBRepo
		app.Store = memory.NewStore()
		return nil
	}

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		return err
	}
	app.GormDB = conn
	app.ProductDBRepo = db.NewProductDBRepo(dao)
	app.ProductRepo = app.ProductDBRepo
	app.Store = db.NewStore(dao)
	return nil
}

func (app *ApplicationContext) setUpProductCache(ctx context.Context) error {
	if app.Cf.RedisAddr == "" {
		app.Logger.Info().Msg("REDIS_ADDR not set, product cache disabled")
		return nil
	}

	client, err := redis_client.NewRedisClient(ctx, app.Cf.RedisAddr,
		redis_client.WithPassword(app.Cf.RedisPassword),
		redis_client.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return err
	}
	app.RedisClient = client
	app.closers = append(app.closers, client.Close)

	app.ProductRepo = redis_decorator.NewCacheAsideProductRepo(
		app.ProductRepo,
		redis_repo.NewProductRedisRepo(client, app.Cf.ProductCacheTTL),
	)
	return nil
}

func (app *ApplicationContext) setUpOrderProducer(context.Context) error {
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		app.Logger.Info().Msg("KAFKA_BROKERS not set, order events disabled")
		app.OrderPublisher = producer.NoopOrderPublisher{}
		return nil
	}

	cfg := producer.DefaultConfig()
	cfg.Brokers = brokers
	cfg.Topic = app.Cf.KafkaOrderTopic
	p, err := producer.New(cfg)
	if err != nil {
		return err
	}
	app.OrderProducer = p
	app.OrderPublisher = producer.NewOrderProducer(p)
	app.closers = append(app.closers, p.Close)
	return nil
}

func (app *ApplicationContext) setUpLimiter(context.Context) error {
	if app.Cf.RateLimitCapacity <= 0 {
		return nil
	}
	app.Limiter = ratelimit.NewTokenBucket(&ratelimit.Config{
		Capacity:   app.Cf.RateLimitCapacity,
		RatePS:     app.Cf.RateLimitRPS,
		RefillRate: 100 * time.Millisecond,
	})
	app.closers = append(app.closers, func() error { app.Limiter.Stop(); return nil })
	return nil
}

func (app *ApplicationContext) setUpServices(context.Context) error {
	validator := service.NewValidator()
	app.ProductService = service.NewProductService(app.ProductRepo, validator)
	orderService := service.NewOrderService(app.Store, app.ProductDBRepo,
		service.WithValidator(validator),
		service.WithPublisher(app.OrderPublisher),
		service.WithMetrics(app.Metrics),
		service.WithLogger(app.Logger.With().Str("component", "order_service").Logger()),
	)
	app.OrderService = orderService
	// 先於 producer 關閉，等待背景事件送出
	app.closers = append(app.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cf.ShutdownTimeout)
		defer cancel()
		return orderService.Close(ctx)
	})
	return nil
}

// Shutdown 依建立的相反順序關閉資源
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(app.closers) - 1; i >= 0; i-- {
			if err := app.closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		app.closers = nil
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
