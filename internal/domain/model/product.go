package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID uint64          `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"not null;type:varchar(100)"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	BaseModel
}

// Clone 回傳獨立副本，避免呼叫端修改到store內部資料
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
