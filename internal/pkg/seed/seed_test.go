package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYaml = `sections:
  - name: Fruits
    products:
      - id: PROD-1
        name: Apple
        price: "35.5"
        unit: kg
        available_quantity: 20
      - id: PROD-2
        name: Banana
        price: "12"
        unit: kg
        available_quantity: 50
  - name: Dairy
    products:
      - id: PROD-3
        name: Milk
        price: "68"
        unit: bottle
        available_quantity: 30
`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalogSeed(t *testing.T) {
	catalog, err := LoadCatalogSeed(writeCatalogFile(t, catalogYaml))
	require.NoError(t, err)
	require.Len(t, catalog.Sections, 2)
	assert.Equal(t, "Fruits", catalog.Sections[0].Name)
	require.Len(t, catalog.Sections[0].Products, 2)
	assert.Equal(t, "PROD-1", catalog.Sections[0].Products[0].ID)
	assert.Equal(t, "35.5", catalog.Sections[0].Products[0].Price)
}

func TestLoadCatalogSeedFileMissing(t *testing.T) {
	_, err := LoadCatalogSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalogSeedBadYaml(t *testing.T) {
	_, err := LoadCatalogSeed(writeCatalogFile(t, "sections: [unclosed"))
	assert.Error(t, err)
}

// 記憶體版repo，只記錄已存在/被建立的資料來驗證冪等行為
type fakeSectionRepo struct {
	sections map[string]*model.Section
	nextID   uint
	created  int
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[string]*model.Section), nextID: 1}
}

func (f *fakeSectionRepo) CreateSection(ctx context.Context, section *model.Section) error {
	section.SectionID = f.nextID
	f.nextID++
	f.created++
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
	return nil, nil
}

func (f *fakeSectionRepo) UpdateSection(ctx context.Context, section *model.Section) error {
	return nil
}

func (f *fakeSectionRepo) HardDeleteSection(ctx context.Context, id uint) error {
	return nil
}

type fakeSeedProductRepo struct {
	products map[string]*model.Product
	created  int
}

func newFakeSeedProductRepo() *fakeSeedProductRepo {
	return &fakeSeedProductRepo{products: make(map[string]*model.Product)}
}

func (f *fakeSeedProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	f.created++
	return nil
}

func (f *fakeSeedProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	if product, ok := f.products[productID]; ok {
		return product, nil
	}
	return nil, db.ErrProductNotFound
}

func (f *fakeSeedProductRepo) GetProductByName(ctx context.Context, name string) (*model.Product, error) {
	return nil, db.ErrProductNotFound
}

func (f *fakeSeedProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) GetProductsBySection(ctx context.Context, sectionID uint) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) SearchProductsByName(ctx context.Context, query string) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) SearchProductsByMinPrice(ctx context.Context, minPrice float64) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (f *fakeSeedProductRepo) SetAvailableQuantity(ctx context.Context, productID string, quantity int) error {
	return nil
}

func (f *fakeSeedProductRepo) AddAvailableQuantity(ctx context.Context, productID string, quantity int) (int, error) {
	return 0, nil
}

func (f *fakeSeedProductRepo) GetLowStockProducts(ctx context.Context, threshold int) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) GetTopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	return nil, nil
}

func (f *fakeSeedProductRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	return nil
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	catalog, err := LoadCatalogSeed(writeCatalogFile(t, catalogYaml))
	require.NoError(t, err)

	sectionRepo := newFakeSectionRepo()
	productRepo := newFakeSeedProductRepo()

	require.NoError(t, Apply(ctx, catalog, sectionRepo, productRepo))
	assert.Equal(t, 2, sectionRepo.created)
	assert.Equal(t, 3, productRepo.created)
	assert.Equal(t, "Milk", productRepo.products["PROD-3"].Name)

	// 再跑一次不會重複建立
	require.NoError(t, Apply(ctx, catalog, sectionRepo, productRepo))
	assert.Equal(t, 2, sectionRepo.created)
	assert.Equal(t, 3, productRepo.created)
}

func TestApplyRejectsBadPrice(t *testing.T) {
	catalog := &CatalogSeed{Sections: []SeedSection{{
		Name:     "Fruits",
		Products: []SeedProduct{{ID: "PROD-1", Name: "Apple", Price: "not-a-number"}},
	}}}
	err := Apply(context.Background(), catalog, newFakeSectionRepo(), newFakeSeedProductRepo())
	assert.Error(t, err)
}
