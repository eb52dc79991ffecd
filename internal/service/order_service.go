package service

import (
	"context"
	"errors"
	"sort"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/grocery/internal/pkg/util"
)

var (
	ErrOrderNotExist = errors.New("order is not exist")
)

type IOrderService interface {
	GetUserHistory(ctx context.Context, userID int) ([]model.HistoryOrder, error)
	GetOrderLines(ctx context.Context, orderID string) ([]model.OrderLine, error)
}

type OrderService struct {
	orderRepo db.IOrderRepository
}

func NewOrderService(orderRepo db.IOrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

/*
GetUserHistory 使用者購買歷史，依order_id分組並計算各訂單總額

金額用的是查詢當下的catalog價格，不是購買當下的價格，
所以改價後歷史總額會跟著漂移 — 對齊原本的對外行為，詳見DESIGN.md
*/
func (o *OrderService) GetUserHistory(ctx context.Context, userID int) ([]model.HistoryOrder, error) {
	lines, err := o.orderRepo.GetHistoryByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*model.HistoryOrder)
	for _, line := range lines {
		order, ok := grouped[line.OrderID]
		if !ok {
			order = &model.HistoryOrder{
				OrderID:      line.OrderID,
				PurchaseDate: line.PurchaseDate,
			}
			grouped[line.OrderID] = order
		}
		order.Lines = append(order.Lines, line)
		order.Total = order.Total.Add(util.LineAmount(line.Price, line.Quantity))
	}

	orders := make([]model.HistoryOrder, 0, len(grouped))
	for _, order := range grouped {
		orders = append(orders, *order)
	}
	// 新的在前，時間相同時用order_id讓結果可重現
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].PurchaseDate.Equal(orders[j].PurchaseDate) {
			return orders[i].PurchaseDate.After(orders[j].PurchaseDate)
		}
		return orders[i].OrderID < orders[j].OrderID
	})
	return orders, nil
}

func (o *OrderService) GetOrderLines(ctx context.Context, orderID string) ([]model.OrderLine, error) {
	lines, err := o.orderRepo.GetLinesByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrOrderNotExist
	}
	return lines, nil
}

var _ IOrderService = (*OrderService)(nil)
