package util

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateOrderID 每次結帳產生一個全新的訂單識別
func GenerateOrderID() string {
	return uuid.New().String()
}

// LineAmount 單條明細金額 price * quantity
func LineAmount(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
