package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/RoyceAzure/lab/ordercenter/internal/metrics"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

const (
	orderResource         = "order"
	defaultPublishTimeout = 10 * time.Second
)

type IOrderService interface {
	// PlaceOrder 建立訂單，明細為下單當下的商品快照
	// 錯誤:
	//   - apperr.InvalidArgumentCode 400: email 格式錯誤、無明細、productID 或數量不為正數
	//   - apperr.NotFoundCode 404: 任一商品不存在，遇到第一個就停止
	//   - apperr.InternalErrorCode 500: 寫入失敗，訂單與明細皆不會存在
	PlaceOrder(ctx context.Context, arg dto.PlaceOrderParam) (*dto.OrderDTO, error)
	GetAllOrders(ctx context.Context) ([]dto.OrderDTO, error)
	// GetOrderByID
	// 錯誤:
	//   - apperr.NotFoundCode 404: 訂單不存在
	GetOrderByID(ctx context.Context, orderID uint64) (*dto.OrderDTO, error)
	// GetOrdersByDateRange 回傳 start <= order_time <= end 的訂單，依時間排序
	// start 晚於 end 時回傳空結果
	GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]dto.OrderDTO, error)
}

type OrderService struct {
	store       repository.IStore
	productRepo repository.IProductRepository
	publisher   producer.IOrderEventPublisher
	validator   *Validator
	metrics     *metrics.Registry
	now         func() time.Time
	logger      zerolog.Logger

	publishTimeout time.Duration
	publishWG      sync.WaitGroup
}

type OrderServiceOption func(*OrderService)

// WithClock 注入時間來源
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) {
		s.now = now
	}
}

func WithMetrics(m *metrics.Registry) OrderServiceOption {
	return func(s *OrderService) {
		s.metrics = m
	}
}

func WithPublisher(p producer.IOrderEventPublisher) OrderServiceOption {
	return func(s *OrderService) {
		s.publisher = p
	}
}

func WithLogger(l zerolog.Logger) OrderServiceOption {
	return func(s *OrderService) {
		s.logger = l
	}
}

// WithPublishTimeout 背景發送 order.placed 事件的時限
func WithPublishTimeout(d time.Duration) OrderServiceOption {
	return func(s *OrderService) {
		s.publishTimeout = d
	}
}

func WithValidator(v *Validator) OrderServiceOption {
	return func(s *OrderService) {
		s.validator = v
	}
}

func NewOrderService(store repository.IStore, productRepo repository.IProductRepository, opts ...OrderServiceOption) *OrderService {
	if store == nil {
		panic("order service missing required dependency store")
	}
	if productRepo == nil {
		panic("order service missing required dependency product repository")
	}

	s := &OrderService{
		store:          store,
		productRepo:    productRepo,
		publisher:      producer.NoopOrderPublisher{},
		now:            time.Now,
		logger:         zerolog.Nop(),
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	return s
}

func (s *OrderService) PlaceOrder(ctx context.Context, arg dto.PlaceOrderParam) (*dto.OrderDTO, error) {
	start := time.Now()
	order, err := s.placeOrder(ctx, arg)
	if s.metrics != nil {
		s.metrics.ObservePlacement(int(codeOrZero(err)), time.Since(start))
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("buyer_email", arg.BuyerEmail).Msg("place order failed")
		return nil, err
	}

	s.logger.Info().
		Uint64("order_id", order.OrderID).
		Str("total_value", order.TotalValue.String()).
		Int("items", len(order.OrderItems)).
		Msg("order placed")

	res := dto.ConvertOrderToDTO(order)
	s.publishOrderPlaced(ctx, order)
	return &res, nil
}

// publishOrderPlaced 訂單已 commit，事件在背景發送，不延遲回應也不受 client 斷線影響
func (s *OrderService) publishOrderPlaced(ctx context.Context, order *model.Order) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	s.publishWG.Add(1)
	go func() {
		defer s.publishWG.Done()
		defer cancel()
		if err := s.publisher.PublishOrderPlaced(pubCtx, order); err != nil {
			if s.metrics != nil {
				s.metrics.OrderEventsFailed.Inc()
			}
			s.logger.Error().Err(err).Uint64("order_id", order.OrderID).Msg("publish order placed event failed")
		}
	}()
}

// Close 等待背景中的事件發送完成
func (s *OrderService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.publishWG.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OrderService) placeOrder(ctx context.Context, arg dto.PlaceOrderParam) (*model.Order, error) {
	if err := s.validator.Struct(arg); err != nil {
		return nil, err
	}

	order := &model.Order{BuyerEmail: arg.BuyerEmail}
	for _, item := range arg.Items {
		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, translateProductErr(err, item.ProductID, "get product failed")
		}
		order.AddItem(model.NewOrderItemSnapshot(product, item.Quantity))
	}

	order.OrderTime = s.now().UTC()
	order.RecomputeTotal()

	err := s.store.ExecTx(ctx, func(q repository.IOrderRepository) error {
		return q.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to place order", err)
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]dto.OrderDTO, error) {
	orders, err := s.store.GetAllOrders(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "get orders failed", err)
	}
	return dto.ConvertOrdersToDTO(orders), nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID uint64) (*dto.OrderDTO, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperr.NotFound(orderResource, orderID)
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "get order failed", err)
	}
	res := dto.ConvertOrderToDTO(order)
	return &res, nil
}

func (s *OrderService) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]dto.OrderDTO, error) {
	if start.After(end) {
		return []dto.OrderDTO{}, nil
	}

	orders, err := s.store.GetOrdersByDateRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "get orders by date range failed", err)
	}
	return dto.ConvertOrdersToDTO(orders), nil
}

func codeOrZero(err error) apperr.Code {
	if err == nil {
		return 0
	}
	return apperr.CodeOf(err)
}

var _ IOrderService = (*OrderService)(nil)
