package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/middleware"
	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/internal/service"
)

type ChannelHandler struct {
	svc *service.CatalogService
}

func NewChannelHandler(svc *service.CatalogService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(c fiber.Ctx) error {
	var req model.CreateChannelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	ch, err := h.svc.CreateChannel(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "Failed to persist channel")
	}

	return c.JSON(fiber.Map{"channel": ch})
}
