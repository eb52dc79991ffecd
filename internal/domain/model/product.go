package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Section struct {
	SectionID uint      `gorm:"primaryKey" json:"section_id"`
	Name      string    `gorm:"not null;type:varchar(100);unique" json:"name"`
	Image     string    `gorm:"type:varchar(255)" json:"image"`
	Products  []Product `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"products,omitempty"` // 一對多，級聯刪除
	BaseModel
}

func (Section) TableName() string {
	return "sections"
}

// AvailableQuantity 只允許由結帳扣庫存與管理端補貨異動
// 不變量: 永遠 >= 0，由 CheckoutService 在交易內把關
type Product struct {
	ProductID         string          `gorm:"primaryKey;type:varchar(255)" json:"product_id"`
	Name              string          `gorm:"not null;type:varchar(100);unique" json:"name"`
	Price             decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Unit              string          `gorm:"not null;type:varchar(20)" json:"unit"`
	AvailableQuantity int             `gorm:"not null;default:0" json:"available_quantity"`
	SectionID         uint            `gorm:"not null;index" json:"section_id"` // 外鍵，關聯到 Section
	ManufactureDate   *time.Time      `gorm:"null" json:"manufacture_date,omitempty"`
	ExpiryDate        *time.Time      `gorm:"null" json:"expiry_date,omitempty"`
	Image             string          `gorm:"type:varchar(255)" json:"image"`
	BaseModel
}

func (Product) TableName() string {
	return "products"
}

// ProductSales 熱銷統計 view，join shopping_history 結果，不落地
type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}
