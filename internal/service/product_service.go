package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
)

var (
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrSectionAlreadyExists = errors.New("section already exists")
)

type IProductService interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	Restock(ctx context.Context, productID string, quantity int) (int, error)
	ListSections(ctx context.Context) ([]model.Section, error)
	CreateSection(ctx context.Context, section *model.Section) error
}

// Catalog讀寫的門面，結帳不經過這裡
type ProductService struct {
	productRepo db.IProductRepository
	sectionRepo db.ISectionRepository
}

func NewProductService(productRepo db.IProductRepository, sectionRepo db.ISectionRepository) *ProductService {
	return &ProductService{productRepo: productRepo, sectionRepo: sectionRepo}
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.GetAllProducts(ctx)
}

func (s *ProductService) ListProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error) {
	return s.productRepo.GetProductsBySection(ctx, sectionID)
}

// SearchProducts 查詢字串可以是數字也可以是名稱
// 數字 => 最低價格查詢; 其他 => 名稱模糊查詢 (沿用原本搜尋頁行為)
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	if minPrice, err := strconv.ParseFloat(query, 64); err == nil {
		return s.productRepo.SearchProductsByMinPrice(ctx, minPrice)
	}
	return s.productRepo.SearchProductsByName(ctx, query)
}

// CreateProduct 建立商品，名稱需唯一
// 錯誤:
//   - ErrProductAlreadyExists: 已有同名商品
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) error {
	existing, err := s.productRepo.GetProductByName(ctx, product.Name)
	if err != nil && !errors.Is(err, db.ErrProductNotFound) {
		return err
	}
	if existing != nil {
		return ErrProductAlreadyExists
	}
	return s.productRepo.CreateProduct(ctx, product)
}

// Restock 管理端補貨，回傳補貨後庫存
func (s *ProductService) Restock(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return s.productRepo.AddAvailableQuantity(ctx, productID, quantity)
}

func (s *ProductService) ListSections(ctx context.Context) ([]model.Section, error) {
	return s.sectionRepo.GetAllSections(ctx)
}

// CreateSection 建立分類，名稱需唯一
func (s *ProductService) CreateSection(ctx context.Context, section *model.Section) error {
	existing, err := s.sectionRepo.GetSectionByName(ctx, section.Name)
	if err != nil && !errors.Is(err, db.ErrSectionNotFound) {
		return err
	}
	if existing != nil {
		return ErrSectionAlreadyExists
	}
	return s.sectionRepo.CreateSection(ctx, section)
}

var _ IProductService = (*ProductService)(nil)
