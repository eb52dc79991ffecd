package redis_decorator

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

/*
redis 只放商品顯示資料，所以只有商品寫入路徑需要連動redis
快取失效失敗不會讓DB寫入跟著失敗，延遲重試一次後交給log
*/
type CacheAsideProductRepo struct {
	db.IProductRepository
	cache redis_repo.IProductCacheRepository
}

func NewCacheAsideProductRepo(dbRepo db.IProductRepository, cache redis_repo.IProductCacheRepository) db.IProductRepository {
	return &CacheAsideProductRepo{IProductRepository: dbRepo, cache: cache}
}

func (p *CacheAsideProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	err := p.IProductRepository.CreateProduct(ctx, product)
	if err != nil {
		return err
	}
	if err := p.cache.SetProductView(ctx, product); err != nil {
		p.retryInvalidate(product.ProductID)
	}
	return nil
}

func (p *CacheAsideProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	err := p.IProductRepository.UpdateProduct(ctx, product)
	if err != nil {
		return err
	}
	if err := p.cache.SetProductView(ctx, product); err != nil {
		p.retryInvalidate(product.ProductID)
	}
	return nil
}

func (p *CacheAsideProductRepo) SetAvailableQuantity(ctx context.Context, productID string, quantity int) error {
	err := p.IProductRepository.SetAvailableQuantity(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if err := p.cache.DeleteProductView(ctx, productID); err != nil {
		p.retryInvalidate(productID)
	}
	return nil
}

func (p *CacheAsideProductRepo) AddAvailableQuantity(ctx context.Context, productID string, quantity int) (int, error) {
	stock, err := p.IProductRepository.AddAvailableQuantity(ctx, productID, quantity)
	if err != nil {
		return 0, err
	}
	if err := p.cache.DeleteProductView(ctx, productID); err != nil {
		p.retryInvalidate(productID)
	}
	return stock, nil
}

func (p *CacheAsideProductRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	err := p.IProductRepository.HardDeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := p.cache.DeleteProductView(ctx, productID); err != nil {
		p.retryInvalidate(productID)
	}
	return nil
}

func (p *CacheAsideProductRepo) retryInvalidate(productID string) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := p.cache.DeleteProductView(context.Background(), productID); err != nil {
			log.Warn().Err(err).Str("product_id", productID).Msg("product cache invalidate failed")
		}
	}()
}
