package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"gorm.io/gorm"
)

// ErrEmptyOrder 不允許寫入沒有任何明細的訂單
var ErrEmptyOrder = errors.New("order has no lines")

// IOrderRepository 購買歷史操作介面
// append-only: 沒有 update 也沒有 delete
type IOrderRepository interface {
	AppendOrder(ctx context.Context, lines []model.OrderLine) error
	GetHistoryByUserID(ctx context.Context, userID int) ([]model.HistoryLine, error)
	GetLinesByOrderID(ctx context.Context, orderID string) ([]model.OrderLine, error)
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

func (s *OrderRepo) WithTx(tx *gorm.DB) *OrderRepo {
	return &OrderRepo{db: NewDbDao(tx)}
}

// AppendOrder 寫入一批同order_id的購買歷史
// 結帳保證至少一筆被接受的明細才會呼叫到這裡
func (s *OrderRepo) AppendOrder(ctx context.Context, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	return s.db.WithContext(ctx).Create(&lines).Error
}

// GetHistoryByUserID 查詢使用者全部購買歷史
// join products 帶出目前的名稱/價格/單位 — 金額是查詢當下的價格
func (s *OrderRepo) GetHistoryByUserID(ctx context.Context, userID int) ([]model.HistoryLine, error) {
	var lines []model.HistoryLine
	err := s.db.WithContext(ctx).Model(&model.OrderLine{}).
		Select("shopping_history.order_id, shopping_history.purchase_date, shopping_history.product_id, products.name AS product_name, shopping_history.quantity, products.price, products.unit").
		Joins("JOIN products ON products.product_id = shopping_history.product_id").
		Where("shopping_history.user_id = ?", userID).
		Order("shopping_history.purchase_date DESC, shopping_history.order_id").
		Scan(&lines).Error
	return lines, err
}

func (s *OrderRepo) GetLinesByOrderID(ctx context.Context, orderID string) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&lines).Error
	return lines, err
}

var _ IOrderRepository = (*OrderRepo)(nil)
