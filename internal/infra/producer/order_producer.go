package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	EventTypeHeader      = "event_type"
	OrderPlacedEventType = "order.placed"
)

// IOrderEventPublisher 發布訂單事件
type IOrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
}

type OrderPlacedItem struct {
	ProductID   uint64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderPlacedEvent struct {
	OrderID    uint64            `json:"order_id"`
	BuyerEmail string            `json:"buyer_email"`
	OrderTime  time.Time         `json:"order_time"`
	TotalValue decimal.Decimal   `json:"total_value"`
	Items      []OrderPlacedItem `json:"items"`
}

func NewOrderPlacedEvent(order *model.Order) OrderPlacedEvent {
	items := make([]OrderPlacedItem, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, OrderPlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return OrderPlacedEvent{
		OrderID:    order.OrderID,
		BuyerEmail: order.BuyerEmail,
		OrderTime:  order.OrderTime,
		TotalValue: order.TotalValue,
		Items:      items,
	}
}

// OrderProducer 以 order id 作為 key，同一訂單的事件保持順序
type OrderProducer struct {
	producer Producer
}

func NewOrderProducer(producer Producer) *OrderProducer {
	return &OrderProducer{producer: producer}
}

func (o *OrderProducer) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	msg, err := o.convertToMessage(OrderPlacedEventType, order.OrderID, NewOrderPlacedEvent(order))
	if err != nil {
		return err
	}
	return o.producer.Produce(ctx, []kafka.Message{msg})
}

func (o *OrderProducer) convertToMessage(eventType string, orderID uint64, event any) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(orderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   EventTypeHeader,
				Value: []byte(eventType),
			},
		},
	}, nil
}

// NoopOrderPublisher 未設定 kafka broker 時使用
type NoopOrderPublisher struct{}

func (NoopOrderPublisher) PublishOrderPlaced(context.Context, *model.Order) error {
	return nil
}

var (
	_ IOrderEventPublisher = (*OrderProducer)(nil)
	_ IOrderEventPublisher = NoopOrderPublisher{}
)
