package handler

import (
	"bytes"
	"strconv"
	"time"

	"go-warehouse-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service service.DashboardService
	logger  *zap.Logger
	now     func() time.Time
}

func NewDashboardHandler(s service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, logger: log, now: time.Now}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (positive, default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid days"})
	}

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		h.logger.Error("stock movement failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

func (h *DashboardHandler) GetStockSummary(c *fiber.Ctx) error {
	rows, err := h.service.GetStockSummary(c.UserContext())
	if err != nil {
		h.logger.Error("stock summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build stock summary"})
	}
	return c.JSON(rows)
}

func (h *DashboardHandler) ExportStockSummaryCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.WriteStockSummaryCSV(c.UserContext(), &buf); err != nil {
		h.logger.Error("stock summary export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export stock summary"})
	}

	c.Attachment("stock-summary.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// financialRangeStart resolves the range query param. Unknown values fall
// back to 7d.
func financialRangeStart(rangeParam string, now time.Time) time.Time {
	switch rangeParam {
	case "1m":
		return now.AddDate(0, -1, 0)
	case "3m":
		return now.AddDate(0, -3, 0)
	case "6m":
		return now.AddDate(0, -6, 0)
	case "12m":
		return now.AddDate(0, -12, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// GetFinancialStats sums import and export value over a window.
// Query params: range (7d|1m|3m|6m|12m, default 7d)
func (h *DashboardHandler) GetFinancialStats(c *fiber.Ctx) error {
	now := h.now()
	stats, err := h.service.GetFinancialStats(c.UserContext(), financialRangeStart(c.Query("range", "7d"), now), now)
	if err != nil {
		h.logger.Error("financial stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch financial stats"})
	}

	return c.JSON(stats)
}
