package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// StockMutation 庫存異動種類
type StockMutation string

var (
	StockMutationCheckout StockMutation = "checkout"
	StockMutationRestock  StockMutation = "restock"
	StockMutationAdjust   StockMutation = "adjust"
)

// IStockReporter 對外回報庫存異動
// 結帳交易commit後才呼叫，失敗只記log，不影響已commit的結果
type IStockReporter interface {
	ReportStockChanged(ctx context.Context, mutation StockMutation, productID string, quantity int) error
	Close() error
}

type stockChangedPayload struct {
	ProductID         string    `json:"product_id"`
	AvailableQuantity int       `json:"available_quantity"`
	Mutation          string    `json:"mutation"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type StockProducer struct {
	w *kafka.Writer
}

func NewStockProducer(brokers []string, topic string) *StockProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// 設置較短的超時時間以快速發現問題
		WriteTimeout: 5 * time.Second,
		// 設置重試
		MaxAttempts: 3,
	}
	return &StockProducer{w: w}
}

func (p *StockProducer) ReportStockChanged(ctx context.Context, mutation StockMutation, productID string, quantity int) error {
	value, err := json.Marshal(stockChangedPayload{
		ProductID:         productID,
		AvailableQuantity: quantity,
		Mutation:          string(mutation),
		OccurredAt:        time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(productID), // 同商品落同分區，消費端才能依序看到庫存變化
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "mutation_type",
				Value: []byte(mutation),
			},
		},
	})
}

func (p *StockProducer) Close() error {
	return p.w.Close()
}

var _ IStockReporter = (*StockProducer)(nil)
