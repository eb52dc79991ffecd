package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine 購買歷史，append-only
// 同一次結帳的所有 line 共用一個 order_id 與 purchase_date
// 寫入後不可更新或刪除，repository 不提供 update/delete
type OrderLine struct {
	OrderID      string    `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	ProductID    string    `gorm:"primaryKey;type:varchar(255)" json:"product_id"` // 外鍵，關聯到 Product
	UserID       int       `gorm:"not null;index" json:"user_id"`                  // 外鍵，關聯到 User
	Quantity     int       `gorm:"not null" json:"quantity"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OrderLine) TableName() string {
	return "shopping_history"
}

// HistoryLine 歷史查詢用 view，join products 取得目前的名稱/價格/單位
// 注意: 金額用的是查詢當下的價格，不是購買當下的價格
type HistoryLine struct {
	OrderID      string          `json:"order_id"`
	PurchaseDate time.Time       `json:"purchase_date"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
}

type HistoryOrder struct {
	OrderID      string          `json:"order_id"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Lines        []HistoryLine   `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}
