package main

import (
	"context"
	"flag"
	"log"

	"go-warehouse-ledger/internal/config"
	"go-warehouse-ledger/internal/repository"
	"go-warehouse-ledger/internal/service"
	"go-warehouse-ledger/internal/storage"
	"go-warehouse-ledger/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// reset-store wipes the products and transactions records of the configured
// store and, unless -seed=false, writes the demo catalog back.
func main() {
	seed := flag.Bool("seed", true, "re-seed the demo catalog after clearing")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadEnv()

	zl, err := logger.New(logger.Config{Development: true, Level: cfg.Logger.Level, Encoding: "console"})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	// 2. Setup Store
	store, closeStore, err := storage.Open(ctx, cfg.Store, zl)
	if err != nil {
		zl.Fatal("open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	productRepo := repository.NewProductRepo(store)
	txRepo := repository.NewTransactionRepo(store)

	// 3. Clear both records
	if err := txRepo.Clear(ctx); err != nil {
		zl.Fatal("clear transactions", zap.Error(err))
	}
	if err := productRepo.Clear(ctx); err != nil {
		zl.Fatal("clear products", zap.Error(err))
	}
	zl.Info("ledger cleared", zap.String("driver", cfg.Store.Driver))

	if !*seed {
		return
	}

	// 4. Seed
	invService := service.NewInventoryService(productRepo, txRepo, zl)
	if _, err := invService.SeedDemoCatalog(ctx); err != nil {
		zl.Fatal("seed demo catalog", zap.Error(err))
	}
	zl.Info("demo catalog seeded")
}
