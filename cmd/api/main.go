package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go-warehouse-ledger/internal/assistant"
	"go-warehouse-ledger/internal/config"
	"go-warehouse-ledger/internal/handler"
	"go-warehouse-ledger/internal/middleware"
	"go-warehouse-ledger/internal/repository"
	"go-warehouse-ledger/internal/service"
	"go-warehouse-ledger/internal/storage"
	"go-warehouse-ledger/internal/ws"
	"go-warehouse-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadEnv()

	zl, err := logger.New(logger.Config{
		Development: cfg.Server.AppEnv != "production",
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Store
	store, closeStore, err := storage.Open(ctx, cfg.Store, zl)
	if err != nil {
		zl.Fatal("open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			zl.Warn("close store", zap.Error(err))
		}
	}()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zl.Named("ws"))
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(store)
	txRepo := repository.NewTransactionRepo(store)

	invService := service.NewInventoryService(productRepo, txRepo, zl.Named("ledger"), service.WithPublisher(wsHub))
	dashService := service.NewDashboardService(invService, txRepo)

	if cfg.Store.SeedDemo {
		seeded, err := invService.SeedDemoCatalog(ctx)
		if err != nil {
			zl.Fatal("seed demo catalog", zap.Error(err))
		}
		if seeded {
			zl.Info("demo catalog seeded")
		}
	}

	var generator assistant.Generator
	if cfg.Assistant.APIKey != "" {
		generator = assistant.NewGeminiClient(cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.BaseURL)
	} else {
		zl.Warn("no Gemini API key configured, assistant will answer with a fallback message")
	}
	bridge := assistant.NewBridge(invService, generator, cfg.Assistant.Timeout, zl.Named("assistant"))
	if cfg.Assistant.RateLimit <= 0 {
		zl.Info("assistant rate limit disabled")
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Ledger v1.0",
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(zl.Named("http")))
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api, handler.Handlers{
		Inventory:  handler.NewInventoryHandler(invService, zl),
		Dashboard:  handler.NewDashboardHandler(dashService, zl),
		Assistant:  handler.NewAssistantHandler(bridge),
		AskLimiter: handler.NewAskLimiter(cfg.Assistant.RateLimit),
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		addr := ":" + cfg.Server.Port
		zl.Info("server listening", zap.String("addr", addr), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(addr); err != nil {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zl.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exited")
}
