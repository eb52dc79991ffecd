package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product not in cache")

// IProductCacheRepository 商品顯示快取介面
// 只服務dashboard/搜尋這類顯示路徑，結帳永遠直接讀DB鎖列
type IProductCacheRepository interface {
	SetProductView(ctx context.Context, product *model.Product) error
	GetProductView(ctx context.Context, productID string) (*model.CartLine, error)
	DeleteProductView(ctx context.Context, productID string) error
}

/*	redis 專注商品顯示資料
	結構:
	product:{id}:view {
		name, price, unit, available_quantity
	}*/
type ProductCacheRepo struct {
	productCache *redis.Client
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache}
}

func generateProductViewKey(productID string) string {
	return fmt.Sprintf("product:%s:view", productID)
}

func (s *ProductCacheRepo) SetProductView(ctx context.Context, product *model.Product) error {
	redisKey := generateProductViewKey(product.ProductID)
	err := s.productCache.HSet(ctx, redisKey,
		"name", product.Name,
		"price", product.Price.String(),
		"unit", product.Unit,
		"available_quantity", product.AvailableQuantity,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set product view: %w", err)
	}
	return nil
}

// GetProductView 取得顯示用商品資料
// 錯誤:
//   - ErrCacheMiss: 快取沒有該商品
//   - err: 其他錯誤
func (s *ProductCacheRepo) GetProductView(ctx context.Context, productID string) (*model.CartLine, error) {
	redisKey := generateProductViewKey(productID)
	fields, err := s.productCache.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get product view: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrCacheMiss
	}

	price, err := decimal.NewFromString(fields["price"])
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", productID, err)
	}
	quantity, err := strconv.Atoi(fields["available_quantity"])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
	}

	return &model.CartLine{
		ProductID:         productID,
		ProductName:       fields["name"],
		Price:             price,
		Unit:              fields["unit"],
		AvailableQuantity: quantity,
	}, nil
}

// DeleteProductView 讓快取失效，庫存異動後呼叫
func (s *ProductCacheRepo) DeleteProductView(ctx context.Context, productID string) error {
	redisKey := generateProductViewKey(productID)
	err := s.productCache.Del(ctx, redisKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete product view: %w", err)
	}
	return nil
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
