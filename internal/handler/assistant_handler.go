package handler

import (
	"strings"

	"go-warehouse-ledger/internal/assistant"

	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	bridge *assistant.Bridge
}

func NewAssistantHandler(b *assistant.Bridge) *AssistantHandler {
	return &AssistantHandler{bridge: b}
}

type askRequest struct {
	Query string `json:"query"`
}

// Ask always answers 200 with text; assistant failures come back as a
// fallback message rather than an error status.
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}

	return c.JSON(fiber.Map{"answer": h.bridge.Ask(c.UserContext(), query)})
}
