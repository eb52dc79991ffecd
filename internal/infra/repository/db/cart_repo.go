package db

import (
	"context"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	UpsertItem(ctx context.Context, userID int, productID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID int, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID int, productID string) error
	GetCartItems(ctx context.Context, userID int) ([]model.CartItem, error)
	GetCartView(ctx context.Context, userID int) (*model.CartView, error)
	ClearCart(ctx context.Context, userID int) error
}

// 購物車是可變狀態，結帳前的唯一真相來源就是 user_cart 資料表
// 所有讀取都直接打DB，不走快取
type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// WithTx 回傳綁定在指定交易上的 repo，讓呼叫端把多個repo操作包進同一筆交易
func (r *CartRepo) WithTx(tx *gorm.DB) *CartRepo {
	return &CartRepo{db: NewDbDao(tx)}
}

// UpsertItem 寫入購物車項目
// 已存在時「覆蓋」數量，不是累加 — 對應使用者把該商品數量設為N的語意
func (r *CartRepo) UpsertItem(ctx context.Context, userID int, productID string, quantity int) error {
	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&item).Error
}

// UpdateItemQuantity 覆蓋既有項目的數量，項目不存在時不做事
func (r *CartRepo) UpdateItemQuantity(ctx context.Context, userID int, productID string, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).Error
}

// RemoveItem 刪除購物車項目，項目不存在不算錯誤
func (r *CartRepo) RemoveItem(ctx context.Context, userID int, productID string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *CartRepo) GetCartItems(ctx context.Context, userID int) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// GetCartView 購物車顯示用 view，join products 帶出目前價格/單位/庫存
func (r *CartRepo) GetCartView(ctx context.Context, userID int) (*model.CartView, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Select("user_cart.product_id, products.name AS product_name, products.price, products.unit, products.available_quantity, user_cart.quantity").
		Joins("JOIN products ON products.product_id = user_cart.product_id").
		Where("user_cart.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	view := &model.CartView{
		UserID: userID,
		Lines:  lines,
	}
	for _, line := range lines {
		view.Total = view.Total.Add(line.Subtotal())
	}
	return view, nil
}

// ClearCart 清空使用者購物車，結帳成功後在同一筆交易內呼叫
func (r *CartRepo) ClearCart(ctx context.Context, userID int) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

var _ ICartRepository = (*CartRepo)(nil)
