package service

import (
	"context"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"golang.org/x/sync/errgroup"
)

const (
	topSellingLimit   = 5
	lowStockThreshold = 10
)

// InsightsOverview 營運概況，後台insights頁的資料來源(圖表由展示層處理)
type InsightsOverview struct {
	TopSelling      []model.ProductSales `json:"top_selling"`
	RegisteredUsers int64                `json:"registered_users"`
	LowStock        []model.Product      `json:"low_stock"`
}

type InsightsService struct {
	productRepo db.IProductRepository
	userRepo    db.IUserRepository
}

func NewInsightsService(productRepo db.IProductRepository, userRepo db.IUserRepository) *InsightsService {
	return &InsightsService{productRepo: productRepo, userRepo: userRepo}
}

// Overview 三個統計互相獨立，併發撈
func (s *InsightsService) Overview(ctx context.Context) (*InsightsOverview, error) {
	var overview InsightsOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sales, err := s.productRepo.GetTopSellingProducts(gctx, topSellingLimit)
		if err != nil {
			return err
		}
		overview.TopSelling = sales
		return nil
	})
	g.Go(func() error {
		count, err := s.userRepo.CountRegisteredUsers(gctx)
		if err != nil {
			return err
		}
		overview.RegisteredUsers = count
		return nil
	})
	g.Go(func() error {
		products, err := s.productRepo.GetLowStockProducts(gctx, lowStockThreshold)
		if err != nil {
			return err
		}
		overview.LowStock = products
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}
