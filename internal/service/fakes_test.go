package service

import (
	"context"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
)

// 記憶體版repo，service層單元測試共用
type fakeProductRepo struct {
	products   map[string]*model.Product
	topSelling []model.ProductSales
	lowStock   []model.Product

	lastNameQuery  string
	lastPriceQuery float64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	if product, ok := f.products[productID]; ok {
		return product, nil
	}
	return nil, db.ErrProductNotFound
}

func (f *fakeProductRepo) GetProductByName(ctx context.Context, name string) (*model.Product, error) {
	for _, product := range f.products {
		if product.Name == name {
			return product, nil
		}
	}
	return nil, db.ErrProductNotFound
}

func (f *fakeProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	for _, product := range f.products {
		products = append(products, *product)
	}
	return products, nil
}

func (f *fakeProductRepo) GetProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error) {
	var products []model.Product
	for _, product := range f.products {
		if product.SectionID == sectionID {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) SearchProductsByName(ctx context.Context, query string) ([]model.Product, error) {
	f.lastNameQuery = query
	return nil, nil
}

func (f *fakeProductRepo) SearchProductsByMinPrice(ctx context.Context, minPrice float64) ([]model.Product, error) {
	f.lastPriceQuery = minPrice
	return nil, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductRepo) SetAvailableQuantity(ctx context.Context, productID string, quantity int) error {
	product, ok := f.products[productID]
	if !ok {
		return db.ErrProductNotFound
	}
	product.AvailableQuantity = quantity
	return nil
}

func (f *fakeProductRepo) AddAvailableQuantity(ctx context.Context, productID string, quantity int) (int, error) {
	product, ok := f.products[productID]
	if !ok {
		return 0, db.ErrProductNotFound
	}
	product.AvailableQuantity += quantity
	return product.AvailableQuantity, nil
}

func (f *fakeProductRepo) GetLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	return f.lowStock, nil
}

func (f *fakeProductRepo) GetTopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	return f.topSelling, nil
}

func (f *fakeProductRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	delete(f.products, productID)
	return nil
}

var _ db.IProductRepository = (*fakeProductRepo)(nil)

type fakeSectionRepo struct {
	sections map[string]*model.Section
	nextID   uint
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[string]*model.Section), nextID: 1}
}

func (f *fakeSectionRepo) CreateSection(ctx context.Context, section *model.Section) error {
	section.SectionID = f.nextID
	f.nextID++
	f.sections[section.Name] = section
	return nil
}

func (f *fakeSectionRepo) GetSectionByID(ctx context.Context, id uint) (*model.Section, error) {
	for _, section := range f.sections {
		if section.SectionID == id {
			return section, nil
		}
	}
	return nil, db.ErrSectionNotFound
}

func (f *fakeSectionRepo) GetSectionByName(ctx context.Context, name string) (*model.Section, error) {
	if section, ok := f.sections[name]; ok {
		return section, nil
	}
	return nil, db.ErrSectionNotFound
}

func (f *fakeSectionRepo) GetAllSections(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	for _, section := range f.sections {
		sections = append(sections, *section)
	}
	return sections, nil
}

func (f *fakeSectionRepo) UpdateSection(ctx context.Context, section *model.Section) error {
	return nil
}

func (f *fakeSectionRepo) HardDeleteSection(ctx context.Context, id uint) error {
	return nil
}

var _ db.ISectionRepository = (*fakeSectionRepo)(nil)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	user.UserID = f.nextID
	f.nextID++
	f.users[user.UserName] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	for _, user := range f.users {
		if user.UserID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) GetUserByCredentials(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	user, ok := f.users[username]
	if !ok || user.Password != password || user.IsAdmin != isAdmin {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) CountRegisteredUsers(ctx context.Context) (int64, error) {
	var count int64
	for _, user := range f.users {
		if !user.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int) error {
	for name, user := range f.users {
		if user.UserID == id {
			delete(f.users, name)
		}
	}
	return nil
}

var _ db.IUserRepository = (*fakeUserRepo)(nil)
