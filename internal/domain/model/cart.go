package model

import (
	"github.com/shopspring/decimal"
)

// CartItem 一個使用者對一個商品的購買數量，等待結帳
// (user_id, product_id) 為複合主鍵; quantity 恆為正整數，0 等同刪除
type CartItem struct {
	UserID    int    `gorm:"primaryKey" json:"user_id"`                      // 外鍵，關聯到 User
	ProductID string `gorm:"primaryKey;type:varchar(255)" json:"product_id"` // 外鍵，關聯到 Product
	Quantity  int    `gorm:"not null" json:"quantity"`
	BaseModel
}

func (CartItem) TableName() string {
	return "user_cart"
}

// CartLine 購物車顯示用 view，join products 取得當前價格與庫存，不落地
type CartLine struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Price             decimal.Decimal `json:"price"`
	Unit              string          `json:"unit"`
	AvailableQuantity int             `json:"available_quantity"`
	Quantity          int             `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartView struct {
	UserID int             `json:"user_id"`
	Lines  []CartLine      `json:"lines"`
	Total  decimal.Decimal `json:"total"`
}
