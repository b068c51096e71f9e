package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 訂單聚合
// OrderItems 由 Order 擁有，刪除訂單時級聯刪除
type Order struct {
	OrderID    uint64          `gorm:"primaryKey;autoIncrement"`
	BuyerEmail string          `gorm:"not null;type:varchar(255)"`
	OrderTime  time.Time       `gorm:"not null;index"`
	TotalValue decimal.Decimal `gorm:"not null;type:decimal(14,2)"`
	OrderItems []*OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}

// OrderItem 訂單明細
// ProductName 與 Price 為下單當下的商品快照，之後商品異動不影響已成立的訂單
type OrderItem struct {
	ItemID      uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID     uint64          `gorm:"not null;index"` // 外鍵，關聯到 Order
	ProductID   uint64          `gorm:"not null"`
	ProductName string          `gorm:"not null;type:varchar(100)"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Quantity    int             `gorm:"not null"`
}

// NewOrderItemSnapshot 以商品當下的名稱與單價建立訂單明細
func NewOrderItemSnapshot(product *Product, quantity int) *OrderItem {
	return &OrderItem{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
	}
}

// LineTotal = 單價 * 數量
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddItem appends item and points it at this order. The total is not touched,
// callers run RecomputeTotal after mutating items.
func (o *Order) AddItem(item *OrderItem) {
	item.OrderID = o.OrderID
	o.OrderItems = append(o.OrderItems, item)
}

// RemoveItem removes item (matched by identity) and clears its back-reference.
// Reports whether the item belonged to the order.
func (o *Order) RemoveItem(item *OrderItem) bool {
	for i, it := range o.OrderItems {
		if it != item {
			continue
		}
		o.OrderItems = append(o.OrderItems[:i], o.OrderItems[i+1:]...)
		item.OrderID = 0
		return true
	}
	return false
}

/*
計算訂單總金額
total = sum(price * quantity)
*/
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(item.LineTotal())
	}
	o.TotalValue = total
}

// Clone 深拷貝訂單與明細
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.OrderItems = make([]*OrderItem, len(o.OrderItems))
	for i, item := range o.OrderItems {
		it := *item
		c.OrderItems[i] = &it
	}
	return &c
}
