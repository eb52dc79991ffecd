package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsOverview(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.topSelling = []model.ProductSales{
		{ProductID: "PROD-1", Name: "Apple", TotalSold: 42},
	}
	productRepo.lowStock = []model.Product{
		{ProductID: "PROD-2", Name: "Banana", AvailableQuantity: 3},
	}
	userRepo := newFakeUserRepo()
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := userRepo.CreateUser(context.Background(), &model.User{UserName: name})
		require.NoError(t, err)
	}

	overview, err := NewInsightsService(productRepo, userRepo).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.RegisteredUsers)
	require.Len(t, overview.TopSelling, 1)
	assert.Equal(t, 42, overview.TopSelling[0].TotalSold)
	require.Len(t, overview.LowStock, 1)
	assert.Equal(t, "PROD-2", overview.LowStock[0].ProductID)
}
