package handler

import (
	"errors"
	"strconv"

	"go-warehouse-ledger/internal/model"
	"go-warehouse-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	service service.InventoryService
	logger  *zap.Logger
}

func NewInventoryHandler(s service.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, logger: log}
}

type receiveNewRequest struct {
	model.ProductInput
	Quantity int `json:"quantity"`
}

type receiveRequest struct {
	Quantity int `json:"quantity"`
}

type issueRequest struct {
	Quantity int    `json:"quantity"`
	Partner  string `json:"partner"`
	Notes    string `json:"notes"`
}

// respondError maps ledger errors onto HTTP statuses.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// GetProducts lists the catalog. Query params: search (optional)
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	var (
		products []model.Product
		err      error
	)
	if term := c.Query("search"); term != "" {
		products, err = h.service.SearchProducts(c.UserContext(), term)
	} else {
		products, err = h.service.ListProducts(c.UserContext())
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) GetProductHistory(c *fiber.Ctx) error {
	history, err := h.service.ProductHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(history)
}

func (h *InventoryHandler) ReceiveNewProduct(c *fiber.Ctx) error {
	var req receiveNewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.ReceiveNewProduct(c.UserContext(), req.ProductInput, req.Quantity)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product received", "data": result})
}

func (h *InventoryHandler) ReceiveExistingStock(c *fiber.Ctx) error {
	var req receiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.ReceiveExistingStock(c.UserContext(), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock received", "data": result})
}

func (h *InventoryHandler) IssueStock(c *fiber.Ctx) error {
	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.IssueStock(c.UserContext(), c.Params("id"), req.Quantity, req.Partner, req.Notes)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock issued", "data": result})
}

// GetTransactions returns the log newest first. Query params: limit (optional, 0 = all)
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid limit"})
	}

	var transactions []model.Transaction
	if limit > 0 {
		transactions, err = h.service.RecentTransactions(c.UserContext(), limit)
	} else {
		transactions, err = h.service.ListTransactions(c.UserContext())
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.ComputeAlerts(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(alerts)
}

func (h *InventoryHandler) GetInventoryValue(c *fiber.Ctx) error {
	total, err := h.service.TotalInventoryValue(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"totalValue": total})
}

func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	discrepancies, err := h.service.Reconcile(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"consistent":    len(discrepancies) == 0,
		"discrepancies": discrepancies,
	})
}
