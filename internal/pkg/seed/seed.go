package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type SeedProduct struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Price             string `yaml:"price"`
	Unit              string `yaml:"unit"`
	AvailableQuantity int    `yaml:"available_quantity"`
}

type SeedSection struct {
	Name     string        `yaml:"name"`
	Products []SeedProduct `yaml:"products"`
}

type CatalogSeed struct {
	Sections []SeedSection `yaml:"sections"`
}

func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	catalog := &CatalogSeed{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Apply 把seed檔灌進catalog
// 冪等性: 已存在的分類/商品跳過不動
func Apply(ctx context.Context, catalog *CatalogSeed, sectionRepo db.ISectionRepository, productRepo db.IProductRepository) error {
	for _, seedSection := range catalog.Sections {
		section, err := sectionRepo.GetSectionByName(ctx, seedSection.Name)
		if errors.Is(err, db.ErrSectionNotFound) {
			section = &model.Section{Name: seedSection.Name}
			if err := sectionRepo.CreateSection(ctx, section); err != nil {
				return fmt.Errorf("create section %s: %w", seedSection.Name, err)
			}
		} else if err != nil {
			return err
		}

		for _, seedProduct := range seedSection.Products {
			_, err := productRepo.GetProductByID(ctx, seedProduct.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, db.ErrProductNotFound) {
				return err
			}

			price, err := decimal.NewFromString(seedProduct.Price)
			if err != nil {
				return fmt.Errorf("invalid price for product %s: %w", seedProduct.ID, err)
			}
			product := &model.Product{
				ProductID:         seedProduct.ID,
				Name:              seedProduct.Name,
				Price:             price,
				Unit:              seedProduct.Unit,
				AvailableQuantity: seedProduct.AvailableQuantity,
				SectionID:         section.SectionID,
			}
			if err := productRepo.CreateProduct(ctx, product); err != nil {
				return fmt.Errorf("create product %s: %w", seedProduct.ID, err)
			}
		}
	}
	return nil
}
