package dto

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MoneyScale 金額固定兩位小數, 與資料庫 decimal(10,2) 一致
const MoneyScale = 2

// Money 輸出時保留兩位小數, 例如 "10.00"
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(MoneyScale))), nil
}

func (m Money) String() string {
	return m.StringFixed(MoneyScale)
}
