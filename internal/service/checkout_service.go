package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/producer"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/grocery/internal/pkg/util"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrStockUnavailable 結帳時某商品數量超過庫存或庫存為0
	ErrStockUnavailable = errors.New("stock unavailable")
)

// CheckoutOutcome 結帳結果，呼叫端據此決定導向
type CheckoutOutcome int

const (
	// CheckoutSucceeded 全部明細成立，導向thanks
	CheckoutSucceeded CheckoutOutcome = iota
	// CheckoutRejected 有明細被拒，該購物車項目已剪掉，導回購物車
	CheckoutRejected
	// CheckoutEmptyCart 購物車是空的，什麼都沒發生
	CheckoutEmptyCart
)

type CheckoutResult struct {
	Outcome           CheckoutOutcome
	OrderID           string
	PurchaseDate      time.Time
	Lines             []model.OrderLine
	RejectedProductID string
}

type stockChange struct {
	productID string
	remaining int
}

/*
CheckoutService 把一台購物車轉成 庫存扣減 + 購買歷史 + 清空購物車

驗證/扣庫存/寫歷史/清購物車包在同一筆DB交易內，商品列用 SELECT ... FOR UPDATE
鎖住再驗證，兩個同時搶最後一件庫存的結帳只會有一個成立，另一個會看到0被拒
*/
type CheckoutService struct {
	dao         *db.DbDao
	cartRepo    *db.CartRepo
	productRepo *db.ProductRepo
	orderRepo   *db.OrderRepo
	reporter    producer.IStockReporter           // optional
	cache       redis_repo.IProductCacheRepository // optional
}

func NewCheckoutService(dao *db.DbDao, cartRepo *db.CartRepo, productRepo *db.ProductRepo, orderRepo *db.OrderRepo) *CheckoutService {
	return &CheckoutService{dao: dao, cartRepo: cartRepo, productRepo: productRepo, orderRepo: orderRepo}
}

// WithStockReporter 結帳commit後把庫存異動發到kafka
func (s *CheckoutService) WithStockReporter(reporter producer.IStockReporter) *CheckoutService {
	s.reporter = reporter
	return s
}

// WithProductCache 結帳commit後讓商品顯示快取失效
func (s *CheckoutService) WithProductCache(cache redis_repo.IProductCacheRepository) *CheckoutService {
	s.cache = cache
	return s
}

// Checkout 對單一使用者執行一次結帳
//
// all-or-nothing: 只要其中一條明細驗證失敗，整筆交易rollback，
// 唯一會留下的副作用是把失敗的那個購物車項目剪掉，重試結帳才不會又卡在同一筆
// 回傳的error只代表基礎設施故障; 被拒/空車都是正常結果，走Outcome
func (s *CheckoutService) Checkout(ctx context.Context, userID int) (*CheckoutResult, error) {
	result := &CheckoutResult{Outcome: CheckoutEmptyCart}
	var changes []stockChange

	txErr := s.dao.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		items, err := cartRepo.GetCartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			result.Outcome = CheckoutEmptyCart
			return nil
		}

		// 固定鎖列順序，兩台重疊的購物車才不會互相死鎖
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		orderID := util.GenerateOrderID()
		purchaseDate := time.Now().UTC().Truncate(time.Second)
		lines := make([]model.OrderLine, 0, len(items))

		for _, item := range items {
			product, err := productRepo.GetProductForUpdate(ctx, item.ProductID)
			if errors.Is(err, db.ErrProductNotFound) {
				// 商品已下架的過期項目，跟缺貨走同一條剪掉的路
				result.RejectedProductID = item.ProductID
				result.Outcome = CheckoutRejected
				return ErrStockUnavailable
			}
			if err != nil {
				return err
			}

			// 庫存歸零時就算要求數量也是0，一樣整筆拒絕
			if item.Quantity > product.AvailableQuantity || product.AvailableQuantity == 0 {
				result.RejectedProductID = item.ProductID
				result.Outcome = CheckoutRejected
				return ErrStockUnavailable
			}

			remaining := product.AvailableQuantity - item.Quantity
			if err := productRepo.SetAvailableQuantity(ctx, item.ProductID, remaining); err != nil {
				return err
			}
			changes = append(changes, stockChange{productID: item.ProductID, remaining: remaining})

			lines = append(lines, model.OrderLine{
				OrderID:      orderID,
				UserID:       userID,
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				PurchaseDate: purchaseDate,
			})
		}

		if err := orderRepo.AppendOrder(ctx, lines); err != nil {
			return err
		}
		if err := cartRepo.ClearCart(ctx, userID); err != nil {
			return err
		}

		result.Outcome = CheckoutSucceeded
		result.OrderID = orderID
		result.PurchaseDate = purchaseDate
		result.Lines = lines
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrStockUnavailable) {
			// 交易已rollback，這裡單獨commit剪掉過期項目
			if err := s.cartRepo.RemoveItem(ctx, userID, result.RejectedProductID); err != nil {
				return nil, fmt.Errorf("prune stale cart item: %w", err)
			}
			return result, nil
		}
		return nil, txErr
	}

	if result.Outcome == CheckoutSucceeded {
		s.afterCommit(ctx, changes)
	}
	return result, nil
}

// afterCommit 只做盡力而為的通知，失敗交給log
func (s *CheckoutService) afterCommit(ctx context.Context, changes []stockChange) {
	for _, change := range changes {
		if s.reporter != nil {
			if err := s.reporter.ReportStockChanged(ctx, producer.StockMutationCheckout, change.productID, change.remaining); err != nil {
				log.Warn().Err(err).Str("product_id", change.productID).Msg("report stock mutation failed")
			}
		}
		if s.cache != nil {
			if err := s.cache.DeleteProductView(ctx, change.productID); err != nil {
				log.Warn().Err(err).Str("product_id", change.productID).Msg("product cache invalidate failed")
			}
		}
	}
}
