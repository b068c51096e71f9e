package dto

import (
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
)

type PlaceOrderItemParam struct {
	ProductID uint64 `json:"productId" validate:"gt=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderParam 下單參數
type PlaceOrderParam struct {
	BuyerEmail string                `json:"buyerEmail" validate:"required,email"`
	Items      []PlaceOrderItemParam `json:"items" validate:"required,min=1,dive"`
}

type OrderItemDTO struct {
	ID          uint64 `json:"id"`
	ProductID   uint64 `json:"productId"`
	ProductName string `json:"productName"`
	Price       Money  `json:"price"`
	Quantity    int    `json:"quantity"`
}

type OrderDTO struct {
	ID         uint64         `json:"id"`
	BuyerEmail string         `json:"buyerEmail"`
	OrderTime  time.Time      `json:"orderTime"`
	TotalValue Money          `json:"totalValue"`
	Items      []OrderItemDTO `json:"items"`
}

func ConvertOrderToDTO(order *model.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, OrderItemDTO{
			ID:          item.ItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       NewMoney(item.Price),
			Quantity:    item.Quantity,
		})
	}
	return OrderDTO{
		ID:         order.OrderID,
		BuyerEmail: order.BuyerEmail,
		OrderTime:  order.OrderTime.UTC(),
		TotalValue: NewMoney(order.TotalValue),
		Items:      items,
	}
}

func ConvertOrdersToDTO(orders []model.Order) []OrderDTO {
	res := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		res = append(res, ConvertOrderToDTO(&orders[i]))
	}
	return res
}
