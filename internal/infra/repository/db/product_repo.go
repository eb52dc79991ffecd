package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// IProductRepository Product 相關操作介面
// 讀取路徑給 catalog 查詢用; SetAvailableQuantity 是結帳扣庫存的唯一入口
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetProductByName(ctx context.Context, name string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error)
	SearchProductsByName(ctx context.Context, query string) ([]model.Product, error)
	SearchProductsByMinPrice(ctx context.Context, minPrice float64) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	SetAvailableQuantity(ctx context.Context, productID string, quantity int) error
	AddAvailableQuantity(ctx context.Context, productID string, quantity int) (int, error)
	GetLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error)
	GetTopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error)
	HardDeleteProduct(ctx context.Context, productID string) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) WithTx(tx *gorm.DB) *ProductRepo {
	return &ProductRepo{db: NewDbDao(tx)}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductForUpdate 在呼叫端的交易內鎖定商品列 (SELECT ... FOR UPDATE)
// 結帳驗證庫存前必須先鎖列，兩個搶最後一件庫存的結帳才會在這裡串行化
func (s *ProductRepo) GetProductForUpdate(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetProductByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("section_id = ?", sectionID).Find(&products).Error
	return products, err
}

func (s *ProductRepo) SearchProductsByName(ctx context.Context, query string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("name LIKE ?", "%"+query+"%").Find(&products).Error
	return products, err
}

func (s *ProductRepo) SearchProductsByMinPrice(ctx context.Context, minPrice float64) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("price >= ?", minPrice).Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// SetAvailableQuantity 無條件覆蓋庫存數量
// 不做負數檢查 — 呼叫端(CheckoutService)必須已經在鎖列交易內算好 quantity >= 0
func (s *ProductRepo) SetAvailableQuantity(ctx context.Context, productID string, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("available_quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AddAvailableQuantity 管理端補貨，鎖列後累加
func (s *ProductRepo) AddAvailableQuantity(ctx context.Context, productID string, quantity int) (int, error) {
	var currentStock int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ?", productID).
			Update("available_quantity", gorm.Expr("available_quantity + ?", quantity)).Error; err != nil {
			return err
		}

		currentStock = product.AvailableQuantity + quantity
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// Read - 查詢低庫存商品，insights 用
func (s *ProductRepo) GetLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("available_quantity <= ?", threshold).Find(&products).Error
	return products, err
}

// 取得熱門商品（根據購買歷史統計）
func (s *ProductRepo) GetTopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	var sales []model.ProductSales
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Select("products.product_id, products.name, SUM(shopping_history.quantity) AS total_sold").
		Joins("JOIN shopping_history ON products.product_id = shopping_history.product_id").
		Group("products.product_id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&sales).Error
	return sales, err
}

// Delete - 硬刪除商品
func (s *ProductRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("product_id = ?", productID).
		Delete(&model.Product{}).Error
}

var _ IProductRepository = (*ProductRepo)(nil)
