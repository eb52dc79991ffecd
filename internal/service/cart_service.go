package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
)

var (
	// ErrInvalidQuantity 購物車數量不合法(負數或非正整數)
	ErrInvalidQuantity = errors.New("invalid quantity")
)

type ICartService interface {
	AddOrSetItem(ctx context.Context, userID int, productID string, quantity int) error
	UpdateItem(ctx context.Context, userID int, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID int, productID string) error
	GetCart(ctx context.Context, userID int) (*model.CartView, error)
}

// 購物車階段不檢查庫存，放進購物車的數量可以超過現有庫存，結帳時才驗證
type CartService struct {
	cartRepo db.ICartRepository
}

func NewCartService(cartRepo db.ICartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// AddOrSetItem 把商品放進購物車
// 已存在時覆蓋數量(set-to-N)，不是累加
// 錯誤:
//   - ErrInvalidQuantity: quantity <= 0
func (s *CartService) AddOrSetItem(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.UpsertItem(ctx, userID, productID, quantity)
}

// UpdateItem 調整購物車內商品數量
// quantity == 0 等同刪除該項目
// 錯誤:
//   - ErrInvalidQuantity: quantity < 0
func (s *CartService) UpdateItem(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.cartRepo.RemoveItem(ctx, userID, productID)
	}
	return s.cartRepo.UpdateItemQuantity(ctx, userID, productID, quantity)
}

// RemoveItem 移除購物車項目，項目不存在不算錯誤
func (s *CartService) RemoveItem(ctx context.Context, userID int, productID string) error {
	return s.cartRepo.RemoveItem(ctx, userID, productID)
}

// GetCart 取購物車顯示資料，join當前商品價格/單位/庫存與總額
func (s *CartService) GetCart(ctx context.Context, userID int) (*model.CartView, error) {
	return s.cartRepo.GetCartView(ctx, userID)
}

var _ ICartService = (*CartService)(nil)
