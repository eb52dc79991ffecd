package main

import (
	"context"
	"flag"
	"os"

	"github.com/RoyceAzure/lab/grocery/internal/config"
	"github.com/RoyceAzure/lab/grocery/internal/infra/producer"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/grocery/internal/pkg/seed"
	"github.com/RoyceAzure/lab/grocery/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// 管理端bootstrap工具: 建schema、灌seed catalog、預熱商品快取
// 購物車/結帳本身由外部展示層以request/response方式呼叫service層
func main() {
	migrate := flag.Bool("migrate", false, "run schema migration")
	applySeed := flag.Bool("seed", false, "apply catalog seed file")
	warmCache := flag.Bool("warm-cache", false, "warm product display cache")
	restockID := flag.String("restock", "", "product id to restock")
	restockQty := flag.Int("qty", 0, "restock quantity")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cf := config.GetConfig()
	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	dao := db.NewDbDao(conn)
	ctx := context.Background()

	if *migrate {
		if err := dao.InitMigrate(); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
		log.Info().Msg("schema migrated")
	}

	if *applySeed {
		catalog, err := seed.LoadCatalogSeed(cf.SeedPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cf.SeedPath).Msg("load seed failed")
		}
		sectionRepo := db.NewSectionRepo(dao)
		productRepo := db.NewProductRepo(dao)
		if err := seed.Apply(ctx, catalog, sectionRepo, productRepo); err != nil {
			log.Fatal().Err(err).Msg("apply seed failed")
		}
		log.Info().Int("sections", len(catalog.Sections)).Msg("catalog seeded")
	}

	if *warmCache {
		cache := newProductCache(cf)
		productRepo := db.NewProductRepo(dao)
		products, err := productRepo.GetAllProducts(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("load products failed")
		}
		for i := range products {
			if err := cache.SetProductView(ctx, &products[i]); err != nil {
				log.Warn().Err(err).Str("product_id", products[i].ProductID).Msg("warm cache failed")
			}
		}
		log.Info().Int("products", len(products)).Msg("product cache warmed")
	}

	if *restockID != "" {
		// 補貨走cache-aside repo，庫存寫入會連動清掉顯示快取
		productRepo := redis_decorator.NewCacheAsideProductRepo(db.NewProductRepo(dao), newProductCache(cf))
		productSvc := service.NewProductService(productRepo, db.NewSectionRepo(dao))
		remaining, err := productSvc.Restock(ctx, *restockID, *restockQty)
		if err != nil {
			log.Fatal().Err(err).Str("product_id", *restockID).Msg("restock failed")
		}

		if brokers := cf.Brokers(); len(brokers) > 0 {
			reporter := producer.NewStockProducer(brokers, cf.KafkaTopic)
			defer reporter.Close()
			if err := reporter.ReportStockChanged(ctx, producer.StockMutationRestock, *restockID, remaining); err != nil {
				log.Warn().Err(err).Str("product_id", *restockID).Msg("report stock mutation failed")
			}
		}
		log.Info().Str("product_id", *restockID).Int("available_quantity", remaining).Msg("product restocked")
	}
}

func newProductCache(cf *config.Config) redis_repo.IProductCacheRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPassword,
	})
	return redis_repo.NewProductCacheRepo(rdb)
}
