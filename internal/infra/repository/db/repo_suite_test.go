package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testDbName = "lab_grocery"
	testDbHost = "localhost"
	testDbPort = "5432"
	testDbUser = "royce"
	testDbPas  = "password"
)

func setupTestDB(t *testing.T) *gorm.DB {
	conn, err := GetDbConn(testDbName, testDbHost, testDbPort, testDbUser, testDbPas)
	require.NoError(t, err)
	require.NoError(t, NewDbDao(conn).InitMigrate())
	return conn
}

func cleanTables(db *gorm.DB) {
	// 清空資料表
	db.Exec("DELETE FROM shopping_history")
	db.Exec("DELETE FROM user_cart")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM sections")
	db.Exec("DELETE FROM users")
}

// 創建測試用的分類
func createTestSection(t *testing.T, repo *SectionRepo) *model.Section {
	section := &model.Section{Name: "Test Section"}
	require.NoError(t, repo.CreateSection(context.Background(), section))
	return section
}

// 創建測試用的商品
func createTestProducts(t *testing.T, repo *ProductRepo, sectionID uint, count int) []*model.Product {
	products := make([]*model.Product, count)
	for i := 0; i < count; i++ {
		products[i] = &model.Product{
			ProductID:         fmt.Sprintf("PROD-%d", i+1),
			Name:              fmt.Sprintf("Test Product %d", i+1),
			Price:             decimal.NewFromInt(int64((i + 1) * 100)),
			Unit:              "kg",
			AvailableQuantity: 10,
			SectionID:         sectionID,
		}
		require.NoError(t, repo.CreateProduct(context.Background(), products[i]))
	}
	return products
}

// 創建測試用的用戶
func createTestUser(t *testing.T, repo *UserRepo, username string) *model.User {
	user, err := repo.CreateUser(context.Background(), &model.User{
		UserName: username,
		Password: "password",
	})
	require.NoError(t, err)
	return user
}
