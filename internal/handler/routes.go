package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
	Assistant *AssistantHandler
	// AskLimiter guards the assistant route. Nil means unlimited.
	AskLimiter fiber.Handler
}

func RegisterRoutes(api fiber.Router, h Handlers) {
	// Products
	api.Get("/products", h.Inventory.GetProducts)
	api.Get("/products/:id", h.Inventory.GetProduct)
	api.Get("/products/:id/transactions", h.Inventory.GetProductHistory)
	api.Post("/products", h.Inventory.ReceiveNewProduct)
	api.Post("/products/:id/receive", h.Inventory.ReceiveExistingStock)
	api.Post("/products/:id/issue", h.Inventory.IssueStock)

	// Ledger queries
	api.Get("/transactions", h.Inventory.GetTransactions)
	api.Get("/alerts", h.Inventory.GetAlerts)
	api.Get("/inventory/value", h.Inventory.GetInventoryValue)
	api.Get("/inventory/reconcile", h.Inventory.Reconcile)

	// Dashboard & reports
	api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)
	api.Get("/reports/stock-summary", h.Dashboard.GetStockSummary)
	api.Get("/reports/stock-summary.csv", h.Dashboard.ExportStockSummaryCSV)
	api.Get("/reports/financial", h.Dashboard.GetFinancialStats)

	// Assistant
	if h.AskLimiter != nil {
		api.Post("/assistant/ask", h.AskLimiter, h.Assistant.Ask)
	} else {
		api.Post("/assistant/ask", h.Assistant.Ask)
	}
}

// NewAskLimiter allows perMinute assistant requests per client IP. A
// non-positive perMinute disables limiting and returns nil.
func NewAskLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many assistant requests"})
		},
	})
}
